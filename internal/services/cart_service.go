package services

import (
	"context"
	"fmt"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"

	"github.com/google/uuid"
)

// CartService keeps buyer carts MOQ-aligned. Every quantity that enters a
// cart goes through models.RoundToMOQ, so a stored line can never sit below
// its product's minimum order quantity.
type CartService struct {
	CartRepo    *repositories.CartRepository
	ProductRepo *repositories.ProductRepository
}

func NewCartService(cartRepo *repositories.CartRepository, productRepo *repositories.ProductRepository) *CartService {
	return &CartService{CartRepo: cartRepo, ProductRepo: productRepo}
}

// Get returns the buyer's cart with its rollup
func (s *CartService) Get(ctx context.Context, buyerID int) ([]models.CartLine, float64, int, error) {
	lines, err := s.CartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, 0, 0, err
	}
	return lines, models.CartTotal(lines), models.CartItemCount(lines), nil
}

// Add puts a product into the cart. Quantity is rounded up to the product's
// MOQ; an existing line for the same product and color absorbs the addition
// instead of creating a duplicate row.
func (s *CartService) Add(ctx context.Context, buyerID int, req *models.AddToCartRequest) ([]models.CartLine, error) {
	product, err := s.ProductRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock == models.StockOutOfStock {
		return nil, fmt.Errorf("product %s is out of stock", product.Code)
	}

	lines, err := s.CartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	qty := models.RoundToMOQ(req.Quantity, product.MOQ)

	merged := false
	for i := range lines {
		if lines[i].ProductID == product.ID && lines[i].Color == req.Color {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}

	if !merged {
		image := product.Image
		if req.Color != "" {
			if colorImage, ok := product.ColorImageMap[req.Color]; ok && colorImage != "" {
				image = colorImage
			}
		}
		lines = append(lines, models.CartLine{
			CartID:    uuid.NewString(),
			ProductID: product.ID,
			Name:      product.Name,
			Code:      product.Code,
			Price:     product.Price,
			MOQ:       product.MOQ,
			Color:     req.Color,
			Image:     image,
			Quantity:  qty,
		})
	}

	if err := s.CartRepo.Save(ctx, buyerID, lines); err != nil {
		return nil, err
	}

	logger.Info().Int("buyer_id", buyerID).Str("code", product.Code).
		Int("requested", req.Quantity).Int("stored", qty).Msg("cart line added")
	return lines, nil
}

// UpdateQuantity sets an absolute quantity on a line, rounded up to the
// line's MOQ. The requested value replaces the stored one; it does not add.
func (s *CartService) UpdateQuantity(ctx context.Context, buyerID int, cartID string, requested int) ([]models.CartLine, error) {
	lines, err := s.CartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].CartID == cartID {
			lines[i].Quantity = models.RoundToMOQ(requested, lines[i].MOQ)
			found = true
			break
		}
	}
	if !found {
		return nil, models.ErrNotFound
	}

	if err := s.CartRepo.Save(ctx, buyerID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove deletes one line from the cart
func (s *CartService) Remove(ctx context.Context, buyerID int, cartID string) ([]models.CartLine, error) {
	lines, err := s.CartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	found := false
	for _, l := range lines {
		if l.CartID == cartID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, models.ErrNotFound
	}

	if err := s.CartRepo.Save(ctx, buyerID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, buyerID int) error {
	return s.CartRepo.Clear(ctx, buyerID)
}
