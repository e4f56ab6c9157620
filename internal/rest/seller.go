package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"damaloy/domain"
	"damaloy/pkg/logger"
	"damaloy/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SellerService interface {
	Apply(ctx context.Context, application *domain.Seller) (domain.Seller, error)
	GetApplications(ctx context.Context, status, excludeStatus string) ([]domain.SellerApplication, error)
	GetByEmail(ctx context.Context, email string) (domain.Seller, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Seller, error)
	GetStats(ctx context.Context, id uint) (domain.SellerStats, error)
	Delete(ctx context.Context, id uint) error
}

type SellerHandler struct {
	sellerService SellerService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewSellerHandler(sellerService SellerService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type SellerApplicationRequest struct {
	UserID           uint   `json:"user_id" validate:"required"`
	SellerEmail      string `json:"seller_email" validate:"required,email"`
	StoreName        string `json:"store_name" validate:"required"`
	StoreCategory    string `json:"store_category" validate:"required"`
	StoreDescription string `json:"store_description,omitempty"`
	Location         string `json:"location,omitempty"`
	Phone            string `json:"phone,omitempty"`
}

type SellerStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *SellerHandler) CreateApplication(c echo.Context) error {
	var req SellerApplicationRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	seller, err := h.sellerService.Apply(ctx, &domain.Seller{
		UserID:           req.UserID,
		SellerEmail:      req.SellerEmail,
		StoreName:        req.StoreName,
		StoreCategory:    req.StoreCategory,
		StoreDescription: req.StoreDescription,
		Location:         req.Location,
		Phone:            req.Phone,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessMessage("Application submitted successfully!", seller))
}

func (h *SellerHandler) GetApplications(c echo.Context) error {
	status := c.QueryParam("status")
	excludeStatus := c.QueryParam("exclude_status")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	applications, err := h.sellerService.GetApplications(ctx, status, excludeStatus)
	if err != nil {
		logger.Error("Failed to get seller applications", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(applications))
}

func (h *SellerHandler) UpdateStatus(c echo.Context) error {
	var sellerID uint
	if _, err := fmt.Sscan(c.Param("id"), &sellerID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid seller ID"))
	}

	var req SellerStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	seller, err := h.sellerService.UpdateStatus(ctx, sellerID, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	message := fmt.Sprintf("Application %s successfully", req.Status)
	return c.JSON(http.StatusOK, response.SuccessMessage(message, seller))
}

func (h *SellerHandler) GetSellerByEmail(c echo.Context) error {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	seller, err := h.sellerService.GetByEmail(ctx, email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(seller))
}

func (h *SellerHandler) GetSellerStats(c echo.Context) error {
	var sellerID uint
	if _, err := fmt.Sscan(c.Param("id"), &sellerID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid seller ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.sellerService.GetStats(ctx, sellerID)
	if err != nil {
		logger.Error("Failed to get seller stats", "seller_id", sellerID, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(stats))
}

func (h *SellerHandler) DeleteSeller(c echo.Context) error {
	var sellerID uint
	if _, err := fmt.Sscan(c.Param("id"), &sellerID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid seller ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sellerService.Delete(ctx, sellerID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Message("Seller deleted successfully and user role reverted to 'user'"))
}
