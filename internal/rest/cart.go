package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"damaloy/domain"
	"damaloy/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CartService interface {
	Add(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, bool, error)
	GetCart(ctx context.Context, userID uint) ([]domain.CartLine, error)
	UpdateItem(ctx context.Context, id uint, quantity int) (domain.CartItem, error)
	RemoveItem(ctx context.Context, id uint) error
	Clear(ctx context.Context, userID uint) error
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type AddCartItemRequest struct {
	UserID    uint `json:"user_id" validate:"required"`
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, created, err := h.cartService.Add(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	if created {
		return c.JSON(http.StatusCreated, response.SuccessMessage("Item added to cart", item))
	}
	return c.JSON(http.StatusOK, response.SuccessMessage("Cart item quantity updated", item))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("userId"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lines, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(lines))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var itemID uint
	if _, err := fmt.Sscan(c.Param("id"), &itemID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid cart item ID"))
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.UpdateItem(ctx, itemID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Cart item updated", item))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	var itemID uint
	if _, err := fmt.Sscan(c.Param("id"), &itemID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid cart item ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.RemoveItem(ctx, itemID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Message("Item removed from cart"))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("userId"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.Clear(ctx, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Message("Cart cleared"))
}
