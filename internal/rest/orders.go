package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"damaloy/business/orders"
	"damaloy/domain"
	"damaloy/pkg/logger"
	"damaloy/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type OrdersService interface {
	PlaceOrder(ctx context.Context, in orders.PlaceOrderInput) (domain.Order, string, error)
	GetUserOrders(ctx context.Context, userID uint) ([]domain.OrderView, error)
	GetAllOrders(ctx context.Context) ([]domain.OrderView, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Order, error)
}

type OrdersHandler struct {
	ordersService OrdersService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		validator:     validator.New(),
		timeout:       15 * time.Second,
	}
}

type PlaceOrderRequest struct {
	UserID          uint   `json:"user_id" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type placedOrderData struct {
	Order        domain.Order `json:"order"`
	ClientSecret string       `json:"clientSecret,omitempty"`
}

func (h *OrdersHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, clientSecret, err := h.ordersService.PlaceOrder(ctx, orders.PlaceOrderInput{
		UserID:          req.UserID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		logger.Error("Failed to place order", "user_id", req.UserID, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessMessage("Order placed successfully!", placedOrderData{
		Order:        order,
		ClientSecret: clientSecret,
	}))
}

func (h *OrdersHandler) GetUserOrders(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("userId"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	views, err := h.ordersService.GetUserOrders(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(views))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	views, err := h.ordersService.GetAllOrders(ctx)
	if err != nil {
		logger.Error("Failed to list orders", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(views))
}

func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	var orderID uint
	if _, err := fmt.Sscan(c.Param("id"), &orderID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid order ID"))
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Order status updated", order))
}
