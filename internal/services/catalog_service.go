package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
)

const (
	productListTTL = 5 * time.Minute
	homePageTTL    = 10 * time.Minute
)

// CatalogService serves the storefront browse surface: products,
// collections, fabric tiles and banners, with Redis in front of the
// hot listing queries.
type CatalogService struct {
	ProductRepo *repositories.ProductRepository
	CatalogRepo *repositories.CatalogRepository
}

func NewCatalogService(productRepo *repositories.ProductRepository, catalogRepo *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{ProductRepo: productRepo, CatalogRepo: catalogRepo}
}

// HomePage is the single payload behind the storefront landing screen
type HomePage struct {
	Banners     []models.Banner         `json:"banners"`
	Collections []models.Collection     `json:"collections"`
	Fabrics     []models.FabricCategory `json:"fabrics"`
	NewArrivals []models.Product        `json:"new_arrivals"`
}

// Home assembles the landing payload, cached as one blob
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	if data, ok := cache.GetCached(ctx, "catalog:home"); ok {
		var page HomePage
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
	}

	banners, err := s.CatalogRepo.GetBanners(ctx, true)
	if err != nil {
		return nil, err
	}
	collections, err := s.CatalogRepo.GetCollections(ctx, true)
	if err != nil {
		return nil, err
	}
	fabrics, err := s.CatalogRepo.GetFabricCategories(ctx, true)
	if err != nil {
		return nil, err
	}
	arrivals, err := s.ProductRepo.GetAll(ctx, &models.ProductFilter{Limit: 12})
	if err != nil {
		return nil, err
	}

	page := &HomePage{
		Banners:     banners,
		Collections: collections,
		Fabrics:     fabrics,
		NewArrivals: arrivals,
	}

	if data, err := json.Marshal(page); err == nil {
		cache.SetCached(ctx, "catalog:home", data, homePageTTL)
	}
	return page, nil
}

// Products returns a filtered product listing, cached per filter
func (s *CatalogService) Products(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	key := fmt.Sprintf("products:%s:%s:%s:%s:%d:%d",
		filter.Category, filter.SubCategory, filter.Stock, filter.Search, filter.Limit, filter.Offset)

	if data, ok := cache.GetCached(ctx, key); ok {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.ProductRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		cache.SetCached(ctx, key, data, productListTTL)
	}
	return products, nil
}

// Product returns one product by id
func (s *CatalogService) Product(ctx context.Context, id int) (*models.Product, error) {
	return s.ProductRepo.GetByID(ctx, id)
}

// CreateProduct adds a product and busts listing caches
func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product, err := s.ProductRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProductCaches(ctx)
	logger.Info().Str("code", product.Code).Int("moq", product.MOQ).Msg("product created")
	return product, nil
}

// UpdateProduct replaces a product and busts listing caches
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req *models.CreateProductRequest) (*models.Product, error) {
	product, err := s.ProductRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProductCaches(ctx)
	return product, nil
}

// UpdateStock flips only the stock level, the frequent admin action
func (s *CatalogService) UpdateStock(ctx context.Context, id int, stock models.StockLevel) error {
	switch stock {
	case models.StockAvailable, models.StockLimited, models.StockOutOfStock:
	default:
		return fmt.Errorf("unknown stock level %q", stock)
	}
	if err := s.ProductRepo.UpdateStock(ctx, id, stock); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}

// DeleteProduct removes a product and busts listing caches
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.ProductRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}

// Categories lists the distinct product categories
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.ProductRepo.Categories(ctx)
}

// ============================================
// Collections, fabrics, banners (admin)
// ============================================

func (s *CatalogService) Collections(ctx context.Context, enabledOnly bool) ([]models.Collection, error) {
	return s.CatalogRepo.GetCollections(ctx, enabledOnly)
}

func (s *CatalogService) CreateCollection(ctx context.Context, req *models.CreateCollectionRequest) (*models.Collection, error) {
	c, err := s.CatalogRepo.CreateCollection(ctx, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCatalogCaches(ctx)
	return c, nil
}

func (s *CatalogService) UpdateCollection(ctx context.Context, id int, req *models.CreateCollectionRequest) error {
	if err := s.CatalogRepo.UpdateCollection(ctx, id, req); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

func (s *CatalogService) DeleteCollection(ctx context.Context, id int) error {
	if err := s.CatalogRepo.DeleteCollection(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

func (s *CatalogService) FabricCategories(ctx context.Context, enabledOnly bool) ([]models.FabricCategory, error) {
	return s.CatalogRepo.GetFabricCategories(ctx, enabledOnly)
}

func (s *CatalogService) UpsertFabricCategory(ctx context.Context, f *models.FabricCategory) (*models.FabricCategory, error) {
	out, err := s.CatalogRepo.UpsertFabricCategory(ctx, f)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCatalogCaches(ctx)
	return out, nil
}

func (s *CatalogService) DeleteFabricCategory(ctx context.Context, id int) error {
	if err := s.CatalogRepo.DeleteFabricCategory(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

func (s *CatalogService) Banners(ctx context.Context, enabledOnly bool) ([]models.Banner, error) {
	return s.CatalogRepo.GetBanners(ctx, enabledOnly)
}

func (s *CatalogService) CreateBanner(ctx context.Context, req *models.CreateBannerRequest) (*models.Banner, error) {
	b, err := s.CatalogRepo.CreateBanner(ctx, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCatalogCaches(ctx)
	return b, nil
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id int, req *models.CreateBannerRequest) error {
	if err := s.CatalogRepo.UpdateBanner(ctx, id, req); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id int) error {
	if err := s.CatalogRepo.DeleteBanner(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}
