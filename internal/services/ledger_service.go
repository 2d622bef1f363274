package services

import (
	"context"
	"fmt"

	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/events"
	"wholesale-backend/internal/feed"
	"wholesale-backend/internal/metrics"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
	"wholesale-backend/internal/timeutil"
)

// LedgerService owns the payment journal. Appends are O(1) against the
// last stored balance; editing an entry refolds the balances of everything
// after it, and deleting one refolds the whole journal. The stored Balance
// column is always consistent with the entry sequence.
type LedgerService struct {
	Repo      *repositories.LedgerRepository
	Publisher *events.Publisher
	Feed      *feed.Hub
}

func NewLedgerService(repo *repositories.LedgerRepository, publisher *events.Publisher, hub *feed.Hub) *LedgerService {
	return &LedgerService{Repo: repo, Publisher: publisher, Feed: hub}
}

// List returns the full journal in journal order, oldest first
func (s *LedgerService) List(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.Repo.GetAll(ctx)
}

// EntriesForOrder returns one order's journal entries, oldest first
func (s *LedgerService) EntriesForOrder(ctx context.Context, orderID string) ([]models.LedgerEntry, error) {
	return s.Repo.GetByOrder(ctx, orderID)
}

// Summary returns the billed/paid/adjustment rollup over the whole journal
func (s *LedgerService) Summary(ctx context.Context) (models.LedgerSummary, error) {
	entries, err := s.Repo.GetAll(ctx)
	if err != nil {
		return models.LedgerSummary{}, err
	}
	return models.Summarize(entries), nil
}

// Append adds a new entry at the end of the journal. The balance is the
// previous running balance plus this entry's delta; no other row moves.
func (s *LedgerService) Append(ctx context.Context, req *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	if err := validateEntryRequest(req); err != nil {
		return nil, err
	}

	lastBalance, err := s.Repo.LastBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last balance: %w", err)
	}

	now := timeutil.Now()
	date := req.Date
	if date == "" {
		date = timeutil.FormatIST(now, timeutil.DateLayout)
	}

	entry := &models.LedgerEntry{
		TxnID:       fmt.Sprintf("TXN-%d", now.UnixMilli()),
		Date:        date,
		Type:        req.Type,
		OrderID:     req.OrderID,
		Description: req.Description,
		Amount:      req.Amount,
		Method:      req.Method,
		Notes:       req.Notes,
		CreatedAt:   now,
	}
	entry.Balance = lastBalance + entry.Delta()

	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	cache.InvalidateLedgerCaches(ctx)
	if entry.Type == models.LedgerTypePayment {
		metrics.PaymentsRecordedTotal.Inc()
		s.Publisher.PublishPaymentRecorded(ctx, entry)
		if s.Feed != nil {
			s.Feed.Notify("payment", fmt.Sprintf("Payment of %.2f against %s", entry.Amount, entry.OrderID), entry)
		}
	}

	logger.Info().Str("txn_id", entry.TxnID).Str("type", string(entry.Type)).
		Float64("amount", entry.Amount).Float64("balance", entry.Balance).Msg("ledger entry appended")
	return entry, nil
}

// Update edits an entry in place and refolds the running balances of the
// entry and everything after it. Earlier entries keep their balances.
func (s *LedgerService) Update(ctx context.Context, txnID string, req *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	if err := validateEntryRequest(req); err != nil {
		return nil, err
	}

	entries, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfTxn(entries, txnID)
	if idx < 0 {
		return nil, models.ErrNotFound
	}

	e := &entries[idx]
	e.Type = req.Type
	e.OrderID = req.OrderID
	e.Description = req.Description
	e.Amount = req.Amount
	e.Method = req.Method
	e.Notes = req.Notes
	if req.Date != "" {
		e.Date = req.Date
	}

	models.RecomputeBalances(entries, idx)
	metrics.LedgerRecalculationsTotal.WithLabelValues("edit").Inc()

	if err := s.Repo.ReplaceFrom(ctx, entries[idx:], e); err != nil {
		return nil, err
	}

	cache.InvalidateLedgerCaches(ctx)
	logger.Info().Str("txn_id", txnID).Int("refolded", len(entries)-idx).Msg("ledger entry edited")

	updated := entries[idx]
	return &updated, nil
}

// Delete removes an entry and refolds the entire journal from the start,
// so every surviving balance reflects the new sequence.
func (s *LedgerService) Delete(ctx context.Context, txnID string) error {
	entries, err := s.Repo.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := indexOfTxn(entries, txnID)
	if idx < 0 {
		return models.ErrNotFound
	}
	removedID := entries[idx].ID

	survivors := append(entries[:idx:idx], entries[idx+1:]...)
	models.RecomputeBalances(survivors, 0)
	metrics.LedgerRecalculationsTotal.WithLabelValues("delete").Inc()

	if err := s.Repo.DeleteAndRefold(ctx, removedID, survivors); err != nil {
		return err
	}

	cache.InvalidateLedgerCaches(ctx)
	logger.Info().Str("txn_id", txnID).Int("survivors", len(survivors)).Msg("ledger entry deleted")
	return nil
}

func validateEntryRequest(req *models.CreateLedgerEntryRequest) error {
	if !models.ValidLedgerType(req.Type) {
		return fmt.Errorf("unknown ledger entry type %q", req.Type)
	}
	if !models.ValidAmount(req.Amount) {
		return fmt.Errorf("amount must be a finite number")
	}
	if req.Amount == 0 && req.Type != models.LedgerTypeAdjustment {
		return fmt.Errorf("%s amount must be non-zero", req.Type)
	}
	return nil
}

func indexOfTxn(entries []models.LedgerEntry, txnID string) int {
	for i := range entries {
		if entries[i].TxnID == txnID {
			return i
		}
	}
	return -1
}
