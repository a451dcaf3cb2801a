package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes y dashboard (protegido).
type ReportHandler struct {
	reportUC    *reports.ReportUseCase
	dashboardUC *reports.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *reports.ReportUseCase, dashboardUC *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, dashboardUC: dashboardUC}
}

// GetReport devuelve el snapshot de reportes de la cuenta.
// GET /api/reports?days=7
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	days := c.QueryInt("days", reports.DefaultTrendDays)
	if days <= 0 {
		days = reports.DefaultTrendDays
	}
	if days > 365 {
		days = 365
	}
	out, err := h.reportUC.GetReport(c.Context(), userID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetDashboard devuelve el resumen del dashboard.
// GET /api/dashboard
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.dashboardUC.GetSummary(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
