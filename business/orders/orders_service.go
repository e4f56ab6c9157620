package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"damaloy/domain"
	"damaloy/pkg/logger"
	"damaloy/pkg/metrics"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	PlaceOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.OrderView, error)
	ListAll(ctx context.Context) ([]domain.OrderView, error)
}

// CartRepository contract interface
type CartRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.CartLine, error)
}

// PaymentIntentClient is the external payment provider.
type PaymentIntentClient interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (domain.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, intentID string) error
}

type PlaceOrderInput struct {
	UserID          uint
	PaymentMethod   string
	ShippingAddress string
}

type OrdersService struct {
	ordersRepo OrdersRepository
	cartRepo   CartRepository
	payments   PaymentIntentClient
	currency   string
}

func NewOrdersService(ordersRepo OrdersRepository, cartRepo CartRepository, payments PaymentIntentClient, currency string) *OrdersService {
	return &OrdersService{
		ordersRepo: ordersRepo,
		cartRepo:   cartRepo,
		payments:   payments,
		currency:   currency,
	}
}

// PlaceOrder turns the user's cart into an order. Totals use the live
// product price, not the price at add-to-cart time. For card payments a
// payment intent is opened before anything is persisted; if persisting
// fails afterwards the intent is cancelled.
func (s *OrdersService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (domain.Order, string, error) {
	if in.UserID == 0 {
		return domain.Order{}, "", fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if in.PaymentMethod != domain.PaymentMethodStripe && in.PaymentMethod != domain.PaymentMethodCOD {
		return domain.Order{}, "", fmt.Errorf("%w: unsupported payment method %q", domain.ErrValidation, in.PaymentMethod)
	}
	if in.ShippingAddress == "" {
		return domain.Order{}, "", fmt.Errorf("%w: shipping address is required", domain.ErrValidation)
	}

	lines, err := s.cartRepo.ListByUser(ctx, in.UserID)
	if err != nil {
		logger.Error("Failed to load cart for checkout", "error", err)
		return domain.Order{}, "", err
	}

	if len(lines) == 0 {
		return domain.Order{}, "", domain.ErrEmptyCart
	}

	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}

	var intent domain.PaymentIntent
	clientSecret := ""

	if in.PaymentMethod == domain.PaymentMethodStripe {
		amount := int64(math.Round(total * 100))
		intent, err = s.payments.CreatePaymentIntent(ctx, amount, s.currency, map[string]string{
			"user_id": strconv.FormatUint(uint64(in.UserID), 10),
		})
		if err != nil {
			logger.Error("Failed to create payment intent", "user_id", in.UserID, "error", err)
			metrics.PaymentInitFailuresTotal.Inc()
			return domain.Order{}, "", fmt.Errorf("%w: %v", domain.ErrPaymentInitiation, err)
		}
		clientSecret = intent.ClientSecret
	}

	order := domain.Order{
		UserID:                in.UserID,
		TotalAmount:           total,
		PaymentMethod:         in.PaymentMethod,
		PaymentStatus:         domain.PaymentStatusPending,
		OrderStatus:           domain.OrderStatusPending,
		ShippingAddress:       in.ShippingAddress,
		StripePaymentIntentID: clientSecret,
		CreatedAt:             time.Now(),
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	if err := s.ordersRepo.PlaceOrder(ctx, &order, items); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockTotal.Inc()
		}
		s.voidIntent(intent)
		logger.Error("Failed to place order", "user_id", in.UserID, "error", err)
		return domain.Order{}, "", err
	}

	metrics.OrdersPlacedTotal.Inc()
	logger.Info("Order placed", "order_id", order.ID, "user_id", in.UserID, "total", total)

	return order, clientSecret, nil
}

// voidIntent cancels a payment intent whose order never persisted.
// Best effort: a cancel failure is logged, the checkout already failed.
func (s *OrdersService) voidIntent(intent domain.PaymentIntent) {
	if intent.ID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.payments.CancelPaymentIntent(ctx, intent.ID); err != nil {
		logger.Error("Failed to cancel orphaned payment intent", "intent_id", intent.ID, "error", err)
	}
}

func (s *OrdersService) GetUserOrders(ctx context.Context, userID uint) ([]domain.OrderView, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}

	return s.ordersRepo.ListByUser(ctx, userID)
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.OrderView, error) {
	return s.ordersRepo.ListAll(ctx)
}

// UpdateStatus applies an admin transition, rejecting moves the
// lifecycle does not allow.
func (s *OrdersService) UpdateStatus(ctx context.Context, id uint, status string) (domain.Order, error) {
	order, err := s.ordersRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	if !transitionAllowed(order.OrderStatus, status) {
		return domain.Order{}, fmt.Errorf("%w: cannot move order from %q to %q", domain.ErrValidation, order.OrderStatus, status)
	}

	return s.ordersRepo.UpdateStatus(ctx, id, status)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range domain.OrderStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}
