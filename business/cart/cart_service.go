package cart

import (
	"context"
	"errors"
	"fmt"

	"damaloy/domain"
	"damaloy/pkg/logger"
)

// CartRepository contract interface
type CartRepository interface {
	Create(ctx context.Context, item *domain.CartItem) error
	FindLine(ctx context.Context, userID, productID uint) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) (domain.CartItem, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.CartLine, error)
	Delete(ctx context.Context, id uint) error
	ClearByUser(ctx context.Context, userID uint) error
}

type CartService struct {
	cartRepo CartRepository
}

func NewCartService(cartRepo CartRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
	}
}

// Add upserts a cart line: a second add of the same product increments
// the existing quantity instead of creating a duplicate row. Returns
// created=true when a new line was inserted.
func (s *CartService) Add(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, bool, error) {
	if userID == 0 || productID == 0 {
		return domain.CartItem{}, false, fmt.Errorf("%w: user_id and product_id are required", domain.ErrValidation)
	}

	if quantity <= 0 {
		quantity = 1
	}

	existing, err := s.cartRepo.FindLine(ctx, userID, productID)
	if err == nil {
		updated, err := s.cartRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity)
		if err != nil {
			logger.Error("Failed to update cart quantity", "error", err)
			return domain.CartItem{}, false, err
		}
		return updated, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up cart line", "error", err)
		return domain.CartItem{}, false, err
	}

	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(ctx, &item); err != nil {
		logger.Error("Failed to add to cart", "error", err)
		return domain.CartItem{}, false, err
	}

	return item, true, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}

	return s.cartRepo.ListByUser(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, id uint, quantity int) (domain.CartItem, error) {
	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	return s.cartRepo.UpdateQuantity(ctx, id, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, id uint) error {
	return s.cartRepo.Delete(ctx, id)
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}

	return s.cartRepo.ClearByUser(ctx, userID)
}
