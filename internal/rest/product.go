package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"damaloy/business/product"
	"damaloy/domain"
	"damaloy/pkg/logger"
	"damaloy/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetAllProducts(ctx context.Context, filter domain.ProductFilter) (product.ProductPage, error)
	GetProductByID(ctx context.Context, id uint) (domain.ProductDetail, error)
	GetTopProducts(ctx context.Context) ([]domain.TopProduct, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (domain.ProductDetail, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetPriceHistory(ctx context.Context, productID uint) ([]domain.PriceHistory, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Unit        string  `json:"unit,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Discount    float64 `json:"discount,omitempty"`
	SellerID    uint    `json:"seller_id" validate:"required"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Unit        string  `json:"unit,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Discount    float64 `json:"discount,omitempty"`
}

// ProductPageResponse extends the envelope with the pagination block the
// catalog page consumes.
type ProductPageResponse struct {
	Success    bool                    `json:"success"`
	Data       []domain.ProductSummary `json:"data"`
	Pagination PaginationInfo          `json:"pagination"`
}

type PaginationInfo struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	Limit         int   `json:"limit"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, &domain.Product{
		Name:        req.Name,
		Image:       req.Image,
		Price:       req.Price,
		Unit:        req.Unit,
		Description: req.Description,
		Quantity:    req.Quantity,
		Discount:    req.Discount,
		SellerID:    req.SellerID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessMessage("Product created successfully!", created))
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	filter := domain.ProductFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	}

	if v := c.QueryParam("seller_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.Error("invalid seller_id"))
		}
		filter.SellerID = uint(id)
	}

	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.productService.GetAllProducts(ctx, filter)
	if err != nil {
		logger.Error("Failed to get products", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProductPageResponse{
		Success: true,
		Data:    page.Products,
		Pagination: PaginationInfo{
			TotalProducts: page.TotalProducts,
			TotalPages:    page.TotalPages,
			CurrentPage:   page.CurrentPage,
			Limit:         page.Limit,
		},
	})
}

func (h *ProductHandler) GetTopProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetTopProducts(ctx)
	if err != nil {
		logger.Error("Failed to get top products", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(products))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid product ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	detail, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(detail))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid product ID"))
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, &domain.Product{
		ID:          productID,
		Name:        req.Name,
		Image:       req.Image,
		Price:       req.Price,
		Unit:        req.Unit,
		Description: req.Description,
		Quantity:    req.Quantity,
		Discount:    req.Discount,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Product updated successfully", updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid product ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Message("Product deleted successfully"))
}

func (h *ProductHandler) GetPriceHistory(c echo.Context) error {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid product ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	history, err := h.productService.GetPriceHistory(ctx, productID)
	if err != nil {
		logger.Error("Failed to get price history", "product_id", productID, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(history))
}
