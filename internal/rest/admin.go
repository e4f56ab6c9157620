package rest

import (
	"context"
	"net/http"
	"time"

	"damaloy/domain"
	"damaloy/pkg/logger"
	"damaloy/pkg/response"

	"github.com/labstack/echo/v4"
)

type AdminService interface {
	GetStats(ctx context.Context) (domain.AdminStats, error)
}

type AdminHandler struct {
	adminService AdminService
	timeout      time.Duration
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		timeout:      10 * time.Second,
	}
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.adminService.GetStats(ctx)
	if err != nil {
		logger.Error("Failed to compute admin stats", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(stats))
}
