package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name  string
		entry LedgerEntry
		want  float64
	}{
		{"bill adds magnitude", LedgerEntry{Type: LedgerTypeBill, Amount: 500}, 500},
		{"negative bill still adds", LedgerEntry{Type: LedgerTypeBill, Amount: -500}, 500},
		{"payment subtracts magnitude", LedgerEntry{Type: LedgerTypePayment, Amount: 200}, -200},
		{"negative payment still subtracts", LedgerEntry{Type: LedgerTypePayment, Amount: -200}, -200},
		{"positive adjustment as given", LedgerEntry{Type: LedgerTypeAdjustment, Amount: 50}, 50},
		{"negative adjustment as given", LedgerEntry{Type: LedgerTypeAdjustment, Amount: -50}, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Delta())
		})
	}
}

func journal() []LedgerEntry {
	entries := []LedgerEntry{
		{TxnID: "TXN-1", Type: LedgerTypeBill, Amount: 1000},
		{TxnID: "TXN-2", Type: LedgerTypePayment, Amount: 400},
		{TxnID: "TXN-3", Type: LedgerTypeBill, Amount: 600},
		{TxnID: "TXN-4", Type: LedgerTypeAdjustment, Amount: -100},
		{TxnID: "TXN-5", Type: LedgerTypePayment, Amount: 300},
	}
	RecomputeBalances(entries, 0)
	return entries
}

func TestRecomputeBalancesFromHead(t *testing.T) {
	entries := journal()

	want := []float64{1000, 600, 1200, 1100, 800}
	for i, e := range entries {
		assert.InDelta(t, want[i], e.Balance, 0.001, "entry %d", i)
	}
}

func TestRecomputeBalancesSuffix(t *testing.T) {
	entries := journal()

	// Edit the middle entry; only it and the entries after it refold
	entries[2].Amount = 1600
	RecomputeBalances(entries, 2)

	assert.InDelta(t, 1000.0, entries[0].Balance, 0.001)
	assert.InDelta(t, 600.0, entries[1].Balance, 0.001)
	assert.InDelta(t, 2200.0, entries[2].Balance, 0.001)
	assert.InDelta(t, 2100.0, entries[3].Balance, 0.001)
	assert.InDelta(t, 1800.0, entries[4].Balance, 0.001)
}

func TestRecomputeBalancesAfterDelete(t *testing.T) {
	entries := journal()

	// Remove the first payment and refold everything
	survivors := append(entries[:1:1], entries[2:]...)
	RecomputeBalances(survivors, 0)

	want := []float64{1000, 1600, 1500, 1200}
	require.Len(t, survivors, 4)
	for i, e := range survivors {
		assert.InDelta(t, want[i], e.Balance, 0.001, "entry %d", i)
	}
}

func TestRecomputeBalancesBoundaries(t *testing.T) {
	entries := journal()
	before := make([]float64, len(entries))
	for i, e := range entries {
		before[i] = e.Balance
	}

	// A negative start clamps to the head, out-of-range leaves all untouched
	RecomputeBalances(entries, -3)
	for i, e := range entries {
		assert.InDelta(t, before[i], e.Balance, 0.001)
	}

	RecomputeBalances(entries, len(entries))
	for i, e := range entries {
		assert.InDelta(t, before[i], e.Balance, 0.001)
	}

	RecomputeBalances(nil, 0)
}

func TestSummarize(t *testing.T) {
	s := Summarize(journal())

	assert.InDelta(t, 1600.0, s.TotalBilled, 0.001)
	assert.InDelta(t, 700.0, s.TotalPaid, 0.001)
	assert.InDelta(t, -100.0, s.Adjustments, 0.001)
	assert.InDelta(t, 800.0, s.PendingBalance, 0.001)
}

func TestSummarizeClampsPending(t *testing.T) {
	s := Summarize([]LedgerEntry{
		{Type: LedgerTypeBill, Amount: 100},
		{Type: LedgerTypePayment, Amount: 500},
	})

	assert.Zero(t, s.PendingBalance)
	assert.InDelta(t, 500.0, s.TotalPaid, 0.001)
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(0))
	assert.True(t, ValidAmount(-250.75))
	assert.True(t, ValidAmount(1e12))
	assert.False(t, ValidAmount(math.NaN()))
	assert.False(t, ValidAmount(math.Inf(1)))
	assert.False(t, ValidAmount(math.Inf(-1)))
}

func TestValidLedgerType(t *testing.T) {
	assert.True(t, ValidLedgerType(LedgerTypeBill))
	assert.True(t, ValidLedgerType(LedgerTypePayment))
	assert.True(t, ValidLedgerType(LedgerTypeAdjustment))
	assert.False(t, ValidLedgerType("refund"))
	assert.False(t, ValidLedgerType(""))
}
