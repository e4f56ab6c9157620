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

type ReviewService interface {
	AddReview(ctx context.Context, review *domain.Review) (domain.ReviewWithAuthor, error)
	GetProductReviews(ctx context.Context, productID uint) ([]domain.ReviewWithAuthor, error)
	UpdateReview(ctx context.Context, id, userID uint, rating int, comment string) (domain.ReviewWithAuthor, error)
	DeleteReview(ctx context.Context, id, userID uint) error
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type AddReviewRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	UserID    uint   `json:"user_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty"`
}

type UpdateReviewRequest struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

type DeleteReviewRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	var req AddReviewRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.reviewService.AddReview(ctx, &domain.Review{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessMessage("Review added successfully!", created))
}

func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	var productID uint
	if _, err := fmt.Sscan(c.Param("productId"), &productID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid product ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.GetProductReviews(ctx, productID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(reviews))
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	var reviewID uint
	if _, err := fmt.Sscan(c.Param("id"), &reviewID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid review ID"))
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.reviewService.UpdateReview(ctx, reviewID, req.UserID, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Review updated successfully", updated))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	var reviewID uint
	if _, err := fmt.Sscan(c.Param("id"), &reviewID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid review ID"))
	}

	var req DeleteReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.reviewService.DeleteReview(ctx, reviewID, req.UserID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Message("Review deleted successfully"))
}
