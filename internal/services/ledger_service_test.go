package services

import (
	"math"
	"testing"

	"wholesale-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateEntryRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateLedgerEntryRequest
		wantErr bool
	}{
		{"valid bill", models.CreateLedgerEntryRequest{Type: models.LedgerTypeBill, Amount: 100}, false},
		{"valid payment", models.CreateLedgerEntryRequest{Type: models.LedgerTypePayment, Amount: 50}, false},
		{"valid negative adjustment", models.CreateLedgerEntryRequest{Type: models.LedgerTypeAdjustment, Amount: -25}, false},
		{"zero adjustment allowed", models.CreateLedgerEntryRequest{Type: models.LedgerTypeAdjustment, Amount: 0}, false},
		{"zero bill rejected", models.CreateLedgerEntryRequest{Type: models.LedgerTypeBill, Amount: 0}, true},
		{"zero payment rejected", models.CreateLedgerEntryRequest{Type: models.LedgerTypePayment, Amount: 0}, true},
		{"unknown type", models.CreateLedgerEntryRequest{Type: "refund", Amount: 100}, true},
		{"NaN amount", models.CreateLedgerEntryRequest{Type: models.LedgerTypeBill, Amount: math.NaN()}, true},
		{"infinite amount", models.CreateLedgerEntryRequest{Type: models.LedgerTypePayment, Amount: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEntryRequest(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIndexOfTxn(t *testing.T) {
	entries := []models.LedgerEntry{
		{TxnID: "TXN-1"},
		{TxnID: "TXN-2"},
		{TxnID: "TXN-3"},
	}

	assert.Equal(t, 0, indexOfTxn(entries, "TXN-1"))
	assert.Equal(t, 2, indexOfTxn(entries, "TXN-3"))
	assert.Equal(t, -1, indexOfTxn(entries, "TXN-9"))
	assert.Equal(t, -1, indexOfTxn(nil, "TXN-1"))
}
