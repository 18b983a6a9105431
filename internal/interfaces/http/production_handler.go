package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
)

const defaultProductionDays = 7

// ProductionHandler partes diarios de producción por línea.
type ProductionHandler struct {
	uc  *usecase.ProductionUseCase
	loc *time.Location
	now func() time.Time
}

// NewProductionHandler construye el handler. loc resuelve los días de la query.
func NewProductionHandler(uc *usecase.ProductionUseCase, loc *time.Location) *ProductionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ProductionHandler{uc: uc, loc: loc, now: time.Now}
}

// Create godoc
// @Summary      Registrar parte de producción
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionReportRequest  true  "Parte diario"
// @Success      201   {object}  dto.ProductionReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener parte de producción
// @Tags         production
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProductionReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/production/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "parte no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar partes de producción
// @Description  Sin fechas devuelve los últimos 7 días.
// @Tags         production
// @Produce      json
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD"
// @Param        work_line  query  string  false  "Línea"
// @Success      200        {array}   dto.ProductionReportResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/production [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	from, to, err := h.period(c)
	if err != nil {
		return validation(c, "fechas en formato YYYY-MM-DD")
	}
	out, err := h.uc.List(c.Context(), from, to, c.Query("work_line"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de producción por línea
// @Tags         production
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.ProductionSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/production/summary [get]
func (h *ProductionHandler) Summary(c *fiber.Ctx) error {
	from, to, err := h.period(c)
	if err != nil {
		return validation(c, "fechas en formato YYYY-MM-DD")
	}
	out, err := h.uc.Summary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar parte de producción
// @Tags         production
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/production/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// period días completos [from 00:00, to 23:59:59] en la zona de la planta.
func (h *ProductionHandler) period(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := h.now().In(h.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	from := today.AddDate(0, 0, -(defaultProductionDays - 1))
	to := today
	if s := c.Query("from"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}
	if s := c.Query("to"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = d
	}
	return from, to.Add(24*time.Hour - time.Nanosecond), nil
}
