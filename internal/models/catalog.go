package models

import "time"

// Collection is a curated product grouping shown on the home page
type Collection struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Image   string `json:"image"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
}

// FabricCategory is a browse-by-fabric shortcut; SearchTerm feeds the
// catalog search when the tile is tapped.
type FabricCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Image      string `json:"image"`
	SearchTerm string `json:"search_term"`
	Enabled    bool   `json:"enabled"`
	Order      int    `json:"order"`
}

// Banner is a promotional slide in the storefront hero slider
type Banner struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Image     string    `json:"image"`
	Link      string    `json:"link"`
	Enabled   bool      `json:"enabled"`
	Order     int       `json:"order"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCollectionRequest covers both collections and reordering updates
type CreateCollectionRequest struct {
	Name    string `json:"name" validate:"required"`
	Slug    string `json:"slug" validate:"required"`
	Image   string `json:"image"`
	Enabled *bool  `json:"enabled"`
	Order   int    `json:"order"`
}

type CreateBannerRequest struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image" validate:"required"`
	Link     string `json:"link"`
	Enabled  *bool  `json:"enabled"`
	Order    int    `json:"order"`
}
