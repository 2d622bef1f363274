package repositories

import (
	"context"
	"fmt"

	"wholesale-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository persists the payment journal. The serial id column is
// the journal position; every read that feeds a balance refold loads rows
// in id order.
type LedgerRepository struct {
	DB *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

const ledgerColumns = `id, txn_id, entry_date, entry_type, COALESCE(order_id, '') as order_id,
	COALESCE(description, '') as description, amount, balance,
	COALESCE(payment_method, '') as payment_method, COALESCE(notes, '') as notes, created_at`

// Create appends one entry with its precomputed balance
func (r *LedgerRepository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (txn_id, entry_date, entry_type, order_id,
			description, amount, balance, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.DB.QueryRow(ctx, query,
		entry.TxnID, entry.Date, entry.Type, entry.OrderID,
		entry.Description, entry.Amount, entry.Balance,
		entry.Method, entry.Notes, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// GetAll returns the full journal in journal order (oldest first)
func (r *LedgerRepository) GetAll(ctx context.Context) ([]models.LedgerEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM ledger_entries ORDER BY id", ledgerColumns)

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// GetByTxnID returns one entry by its public transaction id
func (r *LedgerRepository) GetByTxnID(ctx context.Context, txnID string) (*models.LedgerEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM ledger_entries WHERE txn_id = $1", ledgerColumns)

	var e models.LedgerEntry
	err := r.DB.QueryRow(ctx, query, txnID).Scan(
		&e.ID, &e.TxnID, &e.Date, &e.Type, &e.OrderID,
		&e.Description, &e.Amount, &e.Balance, &e.Method, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByOrder returns the journal entries for one order, oldest first
func (r *LedgerRepository) GetByOrder(ctx context.Context, orderID string) ([]models.LedgerEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM ledger_entries WHERE order_id = $1 ORDER BY id", ledgerColumns)

	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// ReplaceFrom rewrites one edited entry and the balances of everything after
// it in a single transaction. entries must already carry refolded balances;
// edited is the row whose fields changed, nil when only balances moved.
func (r *LedgerRepository) ReplaceFrom(ctx context.Context, entries []models.LedgerEntry, edited *models.LedgerEntry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin refold: %w", err)
	}
	defer tx.Rollback(ctx)

	if edited != nil {
		_, err = tx.Exec(ctx, `
			UPDATE ledger_entries
			SET entry_date = $1, entry_type = $2, order_id = $3, description = $4,
				amount = $5, payment_method = $6, notes = $7
			WHERE id = $8
		`, edited.Date, edited.Type, edited.OrderID, edited.Description,
			edited.Amount, edited.Method, edited.Notes, edited.ID)
		if err != nil {
			return fmt.Errorf("failed to update ledger entry: %w", err)
		}
	}

	for i := range entries {
		_, err = tx.Exec(ctx,
			"UPDATE ledger_entries SET balance = $1 WHERE id = $2",
			entries[i].Balance, entries[i].ID)
		if err != nil {
			return fmt.Errorf("failed to write refolded balance: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteAndRefold removes one entry and rewrites the balances of the
// surviving entries in a single transaction.
func (r *LedgerRepository) DeleteAndRefold(ctx context.Context, id int, survivors []models.LedgerEntry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin refold: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM ledger_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	for i := range survivors {
		_, err = tx.Exec(ctx,
			"UPDATE ledger_entries SET balance = $1 WHERE id = $2",
			survivors[i].Balance, survivors[i].ID)
		if err != nil {
			return fmt.Errorf("failed to write refolded balance: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LastBalance returns the running balance after the newest entry, zero when
// the journal is empty.
func (r *LedgerRepository) LastBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := r.DB.QueryRow(ctx,
		"SELECT balance FROM ledger_entries ORDER BY id DESC LIMIT 1").Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

func scanLedgerEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		err := rows.Scan(
			&e.ID, &e.TxnID, &e.Date, &e.Type, &e.OrderID,
			&e.Description, &e.Amount, &e.Balance, &e.Method, &e.Notes, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
