package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// GroupHandler vista agrupada por número de orden.
type GroupHandler struct {
	view        *quality.GroupedView
	inspections *quality.InspectionUseCase
	loc         *time.Location
	now         func() time.Time
}

// NewGroupHandler construye el handler. loc es la zona de la planta para los filtros por día.
func NewGroupHandler(view *quality.GroupedView, inspections *quality.InspectionUseCase, loc *time.Location) *GroupHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &GroupHandler{view: view, inspections: inspections, loc: loc, now: time.Now}
}

// List godoc
// @Summary      Grupos de inspección
// @Description  Grupos ordenados por fecha más reciente. Todos los filtros se combinan con AND.
// @Tags         groups
// @Produce      json
// @Param        from    query  string  false  "desde (YYYY-MM-DD o RFC 3339)"
// @Param        to      query  string  false  "hasta (YYYY-MM-DD o RFC 3339)"
// @Param        today   query  bool    false  "solo grupos con registros de hoy"
// @Param        urgent  query  bool    false  "solo grupos urgentes"
// @Param        failed  query  bool    false  "solo grupos con rechazos"
// @Param        defect  query  string  false  "tipo de defecto"
// @Param        worker  query  string  false  "operario"
// @Param        reason  query  string  false  "motivo de falla"
// @Param        q       query  string  false  "búsqueda libre"
// @Success      200     {object}  dto.GroupListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/groups [get]
func (h *GroupHandler) List(c *fiber.Ctx) error {
	var in dto.GroupFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	preds, err := quality.BuildPredicates(in, h.now(), h.loc)
	if err != nil {
		return respondError(c, err)
	}
	snap := h.view.Snapshot()
	items := snap.Filter(preds...)
	return c.JSON(dto.GroupListResponse{Items: items, Total: len(items), RefreshedAt: snap.RefreshedAt})
}

// GetByOrderNumber godoc
// @Summary      Grupo de una orden
// @Tags         groups
// @Produce      json
// @Param        orderNumber  path  string  true  "Número de orden"
// @Success      200          {object}  entity.GroupedInspection
// @Failure      404          {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/groups/{orderNumber} [get]
func (h *GroupHandler) GetByOrderNumber(c *fiber.Ctx) error {
	orderNumber := strings.TrimSpace(c.Params("orderNumber"))
	if entity.IsDraftOrderNumber(orderNumber) {
		return notFound(c, "los borradores no forman grupo")
	}
	g, ok := h.view.Find(orderNumber)
	if !ok {
		return notFound(c, "grupo no encontrado")
	}
	return c.JSON(g)
}

// AddRecord godoc
// @Summary      Agregar inspección a un grupo
// @Description  Crea un registro de la fase indicada precargando los campos comunes del grupo.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        orderNumber  path  string                       true  "Número de orden"
// @Param        body         body  dto.CreateInspectionRequest  true  "Datos de la inspección"
// @Success      201          {object}  entity.InspectionRecord
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/groups/{orderNumber}/records [post]
func (h *GroupHandler) AddRecord(c *fiber.Ctx) error {
	var in dto.CreateInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !entity.Phase(in.InspectionType).Valid() {
		return validation(c, "inspection_type debe ser incoming, inProcess u outgoing")
	}
	rec, err := h.inspections.AddToGroup(c.Context(), actorFrom(c), c.Params("orderNumber"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Delete godoc
// @Summary      Eliminar grupo completo
// @Tags         groups
// @Produce      json
// @Param        orderNumber  path  string  true  "Número de orden"
// @Success      200          {object}  dto.DeleteGroupResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/groups/{orderNumber} [delete]
func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")
	n, err := h.inspections.DeleteGroup(c.Context(), actorFrom(c), orderNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeleteGroupResponse{OrderNumber: strings.TrimSpace(orderNumber), Deleted: n})
}
