package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
	mimePNG  = "image/png"
)

// ExportHandler descargas: planilla de grupos, reporte PDF y etiqueta QR.
type ExportHandler struct {
	uc *quality.ExportUseCase
}

// NewExportHandler construye el handler de exportaciones.
func NewExportHandler(uc *quality.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// GroupsSheet godoc
// @Summary      Planilla Excel de grupos
// @Description  Acepta los mismos filtros que GET /api/groups.
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/exports/groups.xlsx [get]
func (h *ExportHandler) GroupsSheet(c *fiber.Ctx) error {
	var in dto.GroupFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	data, name, err := h.uc.GroupsSheet(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, name, data)
}

// GroupReport godoc
// @Summary      Reporte PDF de un grupo
// @Tags         exports
// @Produce      application/pdf
// @Param        orderNumber  path  string  true  "Número de orden"
// @Success      200          {file}    binary
// @Failure      404          {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/exports/groups/{orderNumber}/report.pdf [get]
func (h *ExportHandler) GroupReport(c *fiber.Ctx) error {
	data, name, err := h.uc.GroupReport(c.Context(), c.Params("orderNumber"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, name, data)
}

// OrderLabel godoc
// @Summary      Etiqueta QR del número de orden
// @Tags         exports
// @Produce      image/png
// @Param        orderNumber  path   string  true   "Número de orden"
// @Param        size         query  int     false  "lado en píxeles (64-1024)"
// @Success      200          {file}    binary
// @Failure      400          {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/exports/orders/{orderNumber}/label.png [get]
func (h *ExportHandler) OrderLabel(c *fiber.Ctx) error {
	png, err := h.uc.OrderLabel(c.Context(), c.Params("orderNumber"), c.QueryInt("size", 0))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimePNG)
	return c.Send(png)
}

func sendFile(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}
