package repositories

import (
	"context"

	"wholesale-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

// SaveSecret stores a freshly generated secret, unconfirmed until the user
// verifies a first code
func (r *TOTPRepository) SaveSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO totp_secrets (user_id, secret, confirmed)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (user_id) DO UPDATE SET secret = EXCLUDED.secret, confirmed = FALSE
	`, userID, secret)
	return err
}

// GetSecret returns the stored secret and whether setup was confirmed
func (r *TOTPRepository) GetSecret(ctx context.Context, userID int) (string, bool, error) {
	var secret string
	var confirmed bool
	err := r.DB.QueryRow(ctx,
		"SELECT secret, confirmed FROM totp_secrets WHERE user_id = $1", userID).
		Scan(&secret, &confirmed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, models.ErrNotFound
		}
		return "", false, err
	}
	return secret, confirmed, nil
}

// Confirm marks the secret as verified; 2FA is enforced from here on
func (r *TOTPRepository) Confirm(ctx context.Context, userID int) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE totp_secrets SET confirmed = TRUE WHERE user_id = $1", userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes the secret when 2FA is disabled
func (r *TOTPRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM totp_secrets WHERE user_id = $1", userID)
	return err
}
