package models

import "time"

// StockLevel indicates availability shown on the storefront
type StockLevel string

const (
	StockAvailable  StockLevel = "available"
	StockLimited    StockLevel = "limited"
	StockOutOfStock StockLevel = "out-of-stock"
)

// Product represents a wholesale catalog item. Price is the per-piece rate in
// rupees; MOQ is the minimum purchasable count and the bulk increment.
type Product struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Code          string            `json:"code"` // unique SKU, e.g. BSCOTKO08
	Category      string            `json:"category"`
	SubCategory   string            `json:"sub_category"`
	Price         float64           `json:"price"`
	MOQ           int               `json:"moq"`
	Stock         StockLevel        `json:"stock"`
	Colors        []string          `json:"colors"`
	ColorImageMap map[string]string `json:"color_image_map"`
	Image         string            `json:"image"`
	Images        []string          `json:"images"` // curated gallery, max 3
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateProductRequest is used when creating or replacing a product
type CreateProductRequest struct {
	Name          string            `json:"name" validate:"required"`
	Code          string            `json:"code" validate:"required"`
	Category      string            `json:"category" validate:"required"`
	SubCategory   string            `json:"sub_category"`
	Price         float64           `json:"price" validate:"gt=0"`
	MOQ           int               `json:"moq" validate:"gt=0"`
	Stock         StockLevel        `json:"stock" validate:"omitempty,oneof=available limited out-of-stock"`
	Colors        []string          `json:"colors"`
	ColorImageMap map[string]string `json:"color_image_map"`
	Image         string            `json:"image"`
	Images        []string          `json:"images" validate:"max=3"`
}

// ProductFilter is used for catalog browsing
type ProductFilter struct {
	Category    string     `json:"category"`
	SubCategory string     `json:"sub_category"`
	Stock       StockLevel `json:"stock"`
	Search      string     `json:"search"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
}
