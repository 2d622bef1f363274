package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wholesale-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, order_date, status, items, total, COALESCE(notes, '') as notes,
	COALESCE(buyer_id, 0) as buyer_id, COALESCE(buyer_name, '') as buyer_name,
	COALESCE(buyer_mobile, '') as buyer_mobile, timeline, created_at`

// Create inserts a fully-built order
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	timeline, err := json.Marshal(order.Timeline)
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	var buyerID interface{}
	if order.BuyerID > 0 {
		buyerID = order.BuyerID
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO orders (id, order_date, status, items, total, notes,
			buyer_id, buyer_name, buyer_mobile, timeline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, order.ID, order.Date, order.Status, items, order.Total, order.Notes,
		buyerID, order.BuyerName, order.BuyerMobile, timeline, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID returns a single order
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	row := r.DB.QueryRow(ctx, query, id)
	o, err := scanOrder(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// GetAll returns orders newest first, optionally filtered by status
func (r *OrderRepository) GetAll(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, status)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	if limit <= 0 {
		limit = 200
	}

	query := fmt.Sprintf(`
		SELECT %s FROM orders
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, whereClause, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// GetByBuyer returns a buyer's orders newest first
func (r *OrderRepository) GetByBuyer(ctx context.Context, buyerID int) ([]models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC, id DESC
	`, orderColumns)

	rows, err := r.DB.Query(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// Update persists status, items and timeline after a mutation
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	timeline, err := json.Marshal(order.Timeline)
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	tag, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET status = $1, items = $2, timeline = $3, notes = $4
		WHERE id = $5
	`, order.Status, items, timeline, order.Notes, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountByStatus returns order counts grouped by status for the admin dashboard
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int, error) {
	rows, err := r.DB.Query(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.OrderStatus]int)
	for rows.Next() {
		var status models.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var items, timeline []byte

	err := row.Scan(
		&o.ID, &o.Date, &o.Status, &items, &o.Total, &o.Notes,
		&o.BuyerID, &o.BuyerName, &o.BuyerMobile, &timeline, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	if err := json.Unmarshal(timeline, &o.Timeline); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}
	return &o, nil
}
