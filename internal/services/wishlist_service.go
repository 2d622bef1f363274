package services

import (
	"context"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
)

// WishlistService keeps a per-buyer set of saved product ids and resolves
// them to full products on read
type WishlistService struct {
	Repo        *repositories.WishlistRepository
	ProductRepo *repositories.ProductRepository
}

func NewWishlistService(repo *repositories.WishlistRepository, productRepo *repositories.ProductRepository) *WishlistService {
	return &WishlistService{Repo: repo, ProductRepo: productRepo}
}

// List returns the saved products. Ids whose product has since been deleted
// are silently dropped from the result.
func (s *WishlistService) List(ctx context.Context, buyerID int) ([]models.Product, error) {
	ids, err := s.Repo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.ProductRepo.GetByID(ctx, id)
		if err != nil {
			if err == models.ErrNotFound {
				continue
			}
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

// Add saves a product to the wishlist after confirming it exists
func (s *WishlistService) Add(ctx context.Context, buyerID, productID int) error {
	if _, err := s.ProductRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.Repo.Add(ctx, buyerID, productID)
}

// Remove takes a product off the wishlist
func (s *WishlistService) Remove(ctx context.Context, buyerID, productID int) error {
	return s.Repo.Remove(ctx, buyerID, productID)
}
