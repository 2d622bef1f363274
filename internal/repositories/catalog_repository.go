package repositories

import (
	"context"
	"fmt"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository covers the home page furniture: collections,
// fabric categories and hero banners.
type CatalogRepository struct {
	DB *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ============================================
// Collections
// ============================================

// GetCollections returns collections in display order. When enabledOnly is
// set, disabled tiles are filtered out for the storefront.
func (r *CatalogRepository) GetCollections(ctx context.Context, enabledOnly bool) ([]models.Collection, error) {
	query := `
		SELECT id, name, slug, COALESCE(image, '') as image, enabled, sort_order
		FROM collections
	`
	if enabledOnly {
		query += " WHERE enabled = TRUE"
	}
	query += " ORDER BY sort_order, id"

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Enabled, &c.Order); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// CreateCollection inserts a new collection tile
func (r *CatalogRepository) CreateCollection(ctx context.Context, req *models.CreateCollectionRequest) (*models.Collection, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	var id int
	err := r.DB.QueryRow(ctx, `
		INSERT INTO collections (name, slug, image, enabled, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, req.Name, req.Slug, req.Image, enabled, req.Order).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &models.Collection{
		ID: id, Name: req.Name, Slug: req.Slug,
		Image: req.Image, Enabled: enabled, Order: req.Order,
	}, nil
}

// UpdateCollection replaces a collection's fields
func (r *CatalogRepository) UpdateCollection(ctx context.Context, id int, req *models.CreateCollectionRequest) error {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	tag, err := r.DB.Exec(ctx, `
		UPDATE collections
		SET name = $1, slug = $2, image = $3, enabled = $4, sort_order = $5
		WHERE id = $6
	`, req.Name, req.Slug, req.Image, enabled, req.Order, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteCollection removes a collection tile
func (r *CatalogRepository) DeleteCollection(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM collections WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ============================================
// Fabric categories
// ============================================

// GetFabricCategories returns fabric tiles in display order
func (r *CatalogRepository) GetFabricCategories(ctx context.Context, enabledOnly bool) ([]models.FabricCategory, error) {
	query := `
		SELECT id, name, slug, COALESCE(image, '') as image,
			COALESCE(search_term, '') as search_term, enabled, sort_order
		FROM fabric_categories
	`
	if enabledOnly {
		query += " WHERE enabled = TRUE"
	}
	query += " ORDER BY sort_order, id"

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fabrics []models.FabricCategory
	for rows.Next() {
		var f models.FabricCategory
		if err := rows.Scan(&f.ID, &f.Name, &f.Slug, &f.Image, &f.SearchTerm, &f.Enabled, &f.Order); err != nil {
			return nil, err
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, rows.Err()
}

// UpsertFabricCategory inserts or updates a fabric tile by slug
func (r *CatalogRepository) UpsertFabricCategory(ctx context.Context, f *models.FabricCategory) (*models.FabricCategory, error) {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO fabric_categories (name, slug, image, search_term, enabled, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, image = EXCLUDED.image,
			search_term = EXCLUDED.search_term, enabled = EXCLUDED.enabled,
			sort_order = EXCLUDED.sort_order
		RETURNING id
	`, f.Name, f.Slug, f.Image, f.SearchTerm, f.Enabled, f.Order).Scan(&f.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert fabric category: %w", err)
	}
	return f, nil
}

// DeleteFabricCategory removes a fabric tile
func (r *CatalogRepository) DeleteFabricCategory(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM fabric_categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ============================================
// Banners
// ============================================

// GetBanners returns hero banners in display order
func (r *CatalogRepository) GetBanners(ctx context.Context, enabledOnly bool) ([]models.Banner, error) {
	query := `
		SELECT id, COALESCE(title, '') as title, COALESCE(subtitle, '') as subtitle,
			image, COALESCE(link, '') as link, enabled, sort_order, updated_at
		FROM banners
	`
	if enabledOnly {
		query += " WHERE enabled = TRUE"
	}
	query += " ORDER BY sort_order, id"

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []models.Banner
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.Image, &b.Link, &b.Enabled, &b.Order, &b.UpdatedAt); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

// GetBanner returns a single banner
func (r *CatalogRepository) GetBanner(ctx context.Context, id int) (*models.Banner, error) {
	var b models.Banner
	err := r.DB.QueryRow(ctx, `
		SELECT id, COALESCE(title, '') as title, COALESCE(subtitle, '') as subtitle,
			image, COALESCE(link, '') as link, enabled, sort_order, updated_at
		FROM banners WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.Subtitle, &b.Image, &b.Link, &b.Enabled, &b.Order, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// CreateBanner inserts a new hero banner
func (r *CatalogRepository) CreateBanner(ctx context.Context, req *models.CreateBannerRequest) (*models.Banner, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	now := timeutil.Now()
	var id int
	err := r.DB.QueryRow(ctx, `
		INSERT INTO banners (title, subtitle, image, link, enabled, sort_order, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, req.Title, req.Subtitle, req.Image, req.Link, enabled, req.Order, now).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	return &models.Banner{
		ID: id, Title: req.Title, Subtitle: req.Subtitle, Image: req.Image,
		Link: req.Link, Enabled: enabled, Order: req.Order, UpdatedAt: now,
	}, nil
}

// UpdateBanner replaces a banner's fields
func (r *CatalogRepository) UpdateBanner(ctx context.Context, id int, req *models.CreateBannerRequest) error {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	tag, err := r.DB.Exec(ctx, `
		UPDATE banners
		SET title = $1, subtitle = $2, image = $3, link = $4,
			enabled = $5, sort_order = $6, updated_at = $7
		WHERE id = $8
	`, req.Title, req.Subtitle, req.Image, req.Link, enabled, req.Order, timeutil.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteBanner removes a banner
func (r *CatalogRepository) DeleteBanner(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM banners WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
