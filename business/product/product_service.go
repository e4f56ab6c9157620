package product

import (
	"context"
	"fmt"

	"damaloy/domain"
	"damaloy/internal/repository/redis"
	"damaloy/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.ProductDetail, error)
	FindRow(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductSummary, int64, error)
	FindTop(ctx context.Context, limit int) ([]domain.TopProduct, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

// PriceHistoryRepository contract interface
type PriceHistoryRepository interface {
	Append(ctx context.Context, productID uint, price float64) error
	ListByProduct(ctx context.Context, productID uint) ([]domain.PriceHistory, error)
	Latest(ctx context.Context, productID uint) (float64, bool, error)
}

const (
	defaultPageLimit = 12
	topProductsLimit = 8

	topProductsCacheKey = "products:top"
)

type ProductPage struct {
	Products      []domain.ProductSummary
	TotalProducts int64
	TotalPages    int
	CurrentPage   int
	Limit         int
}

type ProductService struct {
	productRepo ProductRepository
	historyRepo PriceHistoryRepository
	cache       *redis.Cache
}

func NewProductService(productRepo ProductRepository, historyRepo PriceHistoryRepository, cache *redis.Cache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		historyRepo: historyRepo,
		cache:       cache,
	}
}

// CreateProduct persists a product and records its opening price.
func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}

	if product.SellerID == 0 {
		return nil, fmt.Errorf("%w: seller_id is required", domain.ErrValidation)
	}

	if product.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than 0", domain.ErrValidation)
	}

	if product.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", domain.ErrValidation)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create product", "error", err)
		return nil, err
	}

	if err := s.historyRepo.Append(ctx, product.ID, product.Price); err != nil {
		logger.Warn("Failed to record initial price", "product_id", product.ID, "error", err)
	}

	s.invalidateTopProducts(ctx)

	logger.Info("Product created", "product_id", product.ID, "seller_id", product.SellerID)

	return product, nil
}

func (s *ProductService) GetAllProducts(ctx context.Context, filter domain.ProductFilter) (ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find products", "error", err)
		return ProductPage{}, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return ProductPage{
		Products:      products,
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   filter.Page,
		Limit:         filter.Limit,
	}, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id uint) (domain.ProductDetail, error) {
	if id == 0 {
		return domain.ProductDetail{}, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	return s.productRepo.FindByID(ctx, id)
}

// GetTopProducts serves the landing-page best sellers, cached briefly.
func (s *ProductService) GetTopProducts(ctx context.Context) ([]domain.TopProduct, error) {
	var cached []domain.TopProduct
	hit, err := s.cache.Get(ctx, topProductsCacheKey, &cached)
	if err != nil {
		logger.Warn("Failed to read top products cache", "error", err)
	}
	if hit {
		return cached, nil
	}

	top, err := s.productRepo.FindTop(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, topProductsCacheKey, top); err != nil {
		logger.Warn("Failed to write top products cache", "error", err)
	}

	return top, nil
}

// UpdateProduct updates the row and appends a price-history entry when
// the price actually changed.
func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) (domain.ProductDetail, error) {
	if product.ID == 0 {
		return domain.ProductDetail{}, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}

	if product.Name == "" {
		return domain.ProductDetail{}, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}

	if product.Price <= 0 {
		return domain.ProductDetail{}, fmt.Errorf("%w: price must be greater than 0", domain.ErrValidation)
	}

	if product.Quantity < 0 {
		return domain.ProductDetail{}, fmt.Errorf("%w: quantity cannot be negative", domain.ErrValidation)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("Failed to update product", "product_id", product.ID, "error", err)
		return domain.ProductDetail{}, err
	}

	lastPrice, ok, err := s.historyRepo.Latest(ctx, product.ID)
	if err != nil {
		logger.Warn("Failed to read last recorded price", "product_id", product.ID, "error", err)
	} else if !ok || lastPrice != product.Price {
		if err := s.historyRepo.Append(ctx, product.ID, product.Price); err != nil {
			logger.Warn("Failed to record price change", "product_id", product.ID, "error", err)
		}
	}

	s.invalidateTopProducts(ctx)

	return s.productRepo.FindByID(ctx, product.ID)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateTopProducts(ctx)

	return nil
}

func (s *ProductService) invalidateTopProducts(ctx context.Context) {
	if err := s.cache.Delete(ctx, topProductsCacheKey); err != nil {
		logger.Warn("Failed to invalidate top products cache", "error", err)
	}
}

func (s *ProductService) GetPriceHistory(ctx context.Context, productID uint) ([]domain.PriceHistory, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	return s.historyRepo.ListByProduct(ctx, productID)
}
