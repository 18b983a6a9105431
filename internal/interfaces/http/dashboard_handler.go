package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

// DashboardHandler KPIs del día y envío manual del resumen.
type DashboardHandler struct {
	uc *quality.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *quality.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de calidad del día en curso.
// GET /api/dashboard/summary
//
// Las fechas se calculan en el servidor con la zona horaria de la planta.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// SendDigest envía el resumen diario ahora mismo (además del cron).
// POST /api/dashboard/digest
func (h *DashboardHandler) SendDigest(c *fiber.Ctx) error {
	if err := h.uc.SendDailyDigest(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
