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

type UserService interface {
	CreateUser(ctx context.Context, user *domain.User) (domain.User, bool, error)
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error)
	UpdateAddress(ctx context.Context, id uint, address string) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) (domain.User, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photo_url,omitempty"`
	Role     string `json:"role,omitempty"`
}

type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	PhotoURL string `json:"photo_url,omitempty"`
	Role     string `json:"role,omitempty"`
}

type UpdateAddressRequest struct {
	Address string `json:"address" validate:"required"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, created, err := h.userService.CreateUser(ctx, &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}

	if !created {
		return c.JSON(http.StatusOK, response.SuccessMessage("User already exists", user))
	}

	return c.JSON(http.StatusCreated, response.Success(user))
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		logger.Error("Failed to get all users", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(users))
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("id"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(user))
}

func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByEmail(ctx, email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(user))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("id"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateUser(ctx, userID, &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(user))
}

func (h *UserHandler) UpdateAddress(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("id"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	var req UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateAddress(ctx, userID, req.Address)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	var userID uint
	if _, err := fmt.Sscan(c.Param("id"), &userID); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.DeleteUser(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(user))
}
