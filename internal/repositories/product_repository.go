package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, name, code, COALESCE(category, '') as category,
	COALESCE(sub_category, '') as sub_category, price, moq, stock,
	colors, color_image_map, COALESCE(image, '') as image, images, updated_at`

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	colors, err := json.Marshal(req.Colors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	colorImages, err := json.Marshal(req.ColorImageMap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode color image map: %w", err)
	}
	images, err := json.Marshal(req.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		INSERT INTO products (name, code, category, sub_category, price, moq, stock,
			colors, color_image_map, image, images, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := timeutil.Now()
	stock := req.Stock
	if stock == "" {
		stock = models.StockAvailable
	}

	var id int
	err = r.DB.QueryRow(ctx, query,
		req.Name, req.Code, req.Category, req.SubCategory,
		req.Price, req.MOQ, stock,
		colors, colorImages, req.Image, images, now,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns a single product
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	row := r.DB.QueryRow(ctx, query, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetAll returns products matching the filter, newest first
func (r *ProductRepository) GetAll(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argNum))
		args = append(args, filter.Category)
		argNum++
	}
	if filter.SubCategory != "" {
		conditions = append(conditions, fmt.Sprintf("sub_category = $%d", argNum))
		args = append(args, filter.SubCategory)
		argNum++
	}
	if filter.Stock != "" {
		conditions = append(conditions, fmt.Sprintf("stock = $%d", argNum))
		args = append(args, filter.Stock)
		argNum++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", argNum, argNum))
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		%s
		ORDER BY updated_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argNum, argNum+1)

	args = append(args, limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Update replaces a product's fields
func (r *ProductRepository) Update(ctx context.Context, id int, req *models.CreateProductRequest) (*models.Product, error) {
	colors, err := json.Marshal(req.Colors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	colorImages, err := json.Marshal(req.ColorImageMap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode color image map: %w", err)
	}
	images, err := json.Marshal(req.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		UPDATE products
		SET name = $1, code = $2, category = $3, sub_category = $4,
			price = $5, moq = $6, stock = $7, colors = $8,
			color_image_map = $9, image = $10, images = $11, updated_at = $12
		WHERE id = $13
	`

	tag, err := r.DB.Exec(ctx, query,
		req.Name, req.Code, req.Category, req.SubCategory,
		req.Price, req.MOQ, req.Stock, colors,
		colorImages, req.Image, images, timeutil.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateStock changes only the stock level
func (r *ProductRepository) UpdateStock(ctx context.Context, id int, stock models.StockLevel) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3",
		stock, timeutil.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Categories returns the distinct category names in use
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		"SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	var colors, colorImages, images []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.Category, &p.SubCategory,
		&p.Price, &p.MOQ, &p.Stock,
		&colors, &colorImages, &p.Image, &images, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}
	if err := json.Unmarshal(colorImages, &p.ColorImageMap); err != nil {
		return nil, fmt.Errorf("failed to decode color image map: %w", err)
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	return &p, nil
}
