package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// CatalogHandler serves the storefront browse surface and the admin
// catalog management endpoints
type CatalogHandler struct {
	Catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// Home handles GET /api/catalog/home
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.Catalog.Home(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

// ListProducts handles GET /api/products with optional filters
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.ProductFilter{
		Category:    q.Get("category"),
		SubCategory: q.Get("sub_category"),
		Stock:       models.StockLevel(q.Get("stock")),
		Search:      q.Get("search"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	products, err := h.Catalog.Products(r.Context(), filter)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.Catalog.Product(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

// Categories handles GET /api/products/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	utils.JSON(w, http.StatusOK, categories)
}

// CreateProduct handles POST /api/admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Catalog.CreateProduct(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Catalog.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

// UpdateStock handles PATCH /api/admin/products/{id}/stock
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Stock models.StockLevel `json:"stock" validate:"required,oneof=available limited out-of-stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Catalog.UpdateStock(r.Context(), id, req.Stock); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Stock updated"})
}

// DeleteProduct handles DELETE /api/admin/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.Catalog.DeleteProduct(r.Context(), id); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// ============================================
// Collections
// ============================================

// ListCollections handles GET /api/admin/collections (all, including disabled)
func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.Catalog.Collections(r.Context(), false)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if collections == nil {
		collections = []models.Collection{}
	}
	utils.JSON(w, http.StatusOK, collections)
}

// CreateCollection handles POST /api/admin/collections
func (h *CatalogHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	collection, err := h.Catalog.CreateCollection(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, collection)
}

// UpdateCollection handles PUT /api/admin/collections/{id}
func (h *CatalogHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	var req models.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Catalog.UpdateCollection(r.Context(), id, &req); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Collection updated"})
}

// DeleteCollection handles DELETE /api/admin/collections/{id}
func (h *CatalogHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	if err := h.Catalog.DeleteCollection(r.Context(), id); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Collection deleted"})
}

// ============================================
// Fabric categories
// ============================================

// ListFabricCategories handles GET /api/admin/fabrics
func (h *CatalogHandler) ListFabricCategories(w http.ResponseWriter, r *http.Request) {
	fabrics, err := h.Catalog.FabricCategories(r.Context(), false)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if fabrics == nil {
		fabrics = []models.FabricCategory{}
	}
	utils.JSON(w, http.StatusOK, fabrics)
}

// UpsertFabricCategory handles PUT /api/admin/fabrics
func (h *CatalogHandler) UpsertFabricCategory(w http.ResponseWriter, r *http.Request) {
	var fabric models.FabricCategory
	if err := json.NewDecoder(r.Body).Decode(&fabric); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fabric.Name == "" || fabric.Slug == "" {
		utils.Error(w, http.StatusBadRequest, "Name and slug are required")
		return
	}

	out, err := h.Catalog.UpsertFabricCategory(r.Context(), &fabric)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}

// DeleteFabricCategory handles DELETE /api/admin/fabrics/{id}
func (h *CatalogHandler) DeleteFabricCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid fabric category ID")
		return
	}

	if err := h.Catalog.DeleteFabricCategory(r.Context(), id); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Fabric category deleted"})
}

// ============================================
// Banners
// ============================================

// ListBanners handles GET /api/admin/banners
func (h *CatalogHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.Catalog.Banners(r.Context(), false)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	utils.JSON(w, http.StatusOK, banners)
}

// CreateBanner handles POST /api/admin/banners
func (h *CatalogHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	banner, err := h.Catalog.CreateBanner(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, banner)
}

// UpdateBanner handles PUT /api/admin/banners/{id}
func (h *CatalogHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	var req models.CreateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Catalog.UpdateBanner(r.Context(), id, &req); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Banner updated"})
}

// DeleteBanner handles DELETE /api/admin/banners/{id}
func (h *CatalogHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	if err := h.Catalog.DeleteBanner(r.Context(), id); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Banner deleted"})
}
