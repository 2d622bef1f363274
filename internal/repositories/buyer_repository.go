package repositories

import (
	"context"
	"fmt"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BuyerRepository struct {
	DB *pgxpool.Pool
}

func NewBuyerRepository(db *pgxpool.Pool) *BuyerRepository {
	return &BuyerRepository{DB: db}
}

const buyerColumns = `id, shop_name, buyer_name, mobile, COALESCE(city, '') as city,
	COALESCE(business_type, '') as business_type, COALESCE(gst, '') as gst,
	status, registered_date`

// Create registers a new buyer in the given initial status
func (r *BuyerRepository) Create(ctx context.Context, req *models.RegisterBuyerRequest, status models.BuyerStatus) (*models.Buyer, error) {
	now := timeutil.Now()

	var id int
	err := r.DB.QueryRow(ctx, `
		INSERT INTO buyers (shop_name, buyer_name, mobile, city, business_type, gst, status, registered_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, req.ShopName, req.BuyerName, req.Mobile, req.City, req.BusinessType, req.GST, status, now).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to register buyer: %w", err)
	}

	return &models.Buyer{
		ID: id, ShopName: req.ShopName, BuyerName: req.BuyerName,
		Mobile: req.Mobile, City: req.City, BusinessType: req.BusinessType,
		GST: req.GST, Status: status, RegisteredDate: now,
	}, nil
}

// GetByID returns a single buyer
func (r *BuyerRepository) GetByID(ctx context.Context, id int) (*models.Buyer, error) {
	query := fmt.Sprintf("SELECT %s FROM buyers WHERE id = $1", buyerColumns)

	var b models.Buyer
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ShopName, &b.BuyerName, &b.Mobile, &b.City,
		&b.BusinessType, &b.GST, &b.Status, &b.RegisteredDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByMobile looks a buyer up by registered mobile number
func (r *BuyerRepository) GetByMobile(ctx context.Context, mobile string) (*models.Buyer, error) {
	query := fmt.Sprintf("SELECT %s FROM buyers WHERE mobile = $1", buyerColumns)

	var b models.Buyer
	err := r.DB.QueryRow(ctx, query, mobile).Scan(
		&b.ID, &b.ShopName, &b.BuyerName, &b.Mobile, &b.City,
		&b.BusinessType, &b.GST, &b.Status, &b.RegisteredDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetAll returns buyers newest first, optionally filtered by status
func (r *BuyerRepository) GetAll(ctx context.Context, status models.BuyerStatus) ([]models.Buyer, error) {
	query := fmt.Sprintf("SELECT %s FROM buyers", buyerColumns)
	var args []interface{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY registered_date DESC, id DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buyers []models.Buyer
	for rows.Next() {
		var b models.Buyer
		err := rows.Scan(
			&b.ID, &b.ShopName, &b.BuyerName, &b.Mobile, &b.City,
			&b.BusinessType, &b.GST, &b.Status, &b.RegisteredDate,
		)
		if err != nil {
			return nil, err
		}
		buyers = append(buyers, b)
	}
	return buyers, rows.Err()
}

// UpdateStatus moves a buyer through the approval lifecycle
func (r *BuyerRepository) UpdateStatus(ctx context.Context, id int, status models.BuyerStatus) error {
	tag, err := r.DB.Exec(ctx, "UPDATE buyers SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
