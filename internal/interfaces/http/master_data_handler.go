package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
)

// MasterDataHandler catálogos que alimentan los desplegables del formulario:
// proveedores, piezas y operarios.
type MasterDataHandler struct {
	uc *usecase.MasterDataUseCase
}

// NewMasterDataHandler construye el handler.
func NewMasterDataHandler(uc *usecase.MasterDataUseCase) *MasterDataHandler {
	return &MasterDataHandler{uc: uc}
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         master-data
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/suppliers [post]
func (h *MasterDataHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSupplier(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         master-data
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID"
// @Param        body  body  dto.SupplierRequest  true  "Proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Security     BearerAuth
// @Router       /api/suppliers/{id} [put]
func (h *MasterDataHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSupplier(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         master-data
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Security     BearerAuth
// @Router       /api/suppliers [get]
func (h *MasterDataHandler) ListSuppliers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListSuppliers(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor
// @Tags         master-data
// @Param        id  path  string  true  "ID"
// @Success      204
// @Security     BearerAuth
// @Router       /api/suppliers/{id} [delete]
func (h *MasterDataHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.uc.DeleteSupplier(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Piezas ────────────────────────────────────────────────────────────────────

// CreatePart godoc
// @Summary      Crear pieza
// @Tags         master-data
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartRequest  true  "Pieza"
// @Success      201   {object}  dto.PartResponse
// @Security     BearerAuth
// @Router       /api/parts [post]
func (h *MasterDataHandler) CreatePart(c *fiber.Ctx) error {
	var in dto.PartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePart(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePart godoc
// @Summary      Actualizar pieza
// @Tags         master-data
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID"
// @Param        body  body  dto.PartRequest  true  "Pieza"
// @Success      200   {object}  dto.PartResponse
// @Security     BearerAuth
// @Router       /api/parts/{id} [put]
func (h *MasterDataHandler) UpdatePart(c *fiber.Ctx) error {
	var in dto.PartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePart(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListParts godoc
// @Summary      Listar piezas
// @Tags         master-data
// @Produce      json
// @Success      200  {array}  dto.PartResponse
// @Security     BearerAuth
// @Router       /api/parts [get]
func (h *MasterDataHandler) ListParts(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListParts(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePart godoc
// @Summary      Eliminar pieza
// @Tags         master-data
// @Param        id  path  string  true  "ID"
// @Success      204
// @Security     BearerAuth
// @Router       /api/parts/{id} [delete]
func (h *MasterDataHandler) DeletePart(c *fiber.Ctx) error {
	if err := h.uc.DeletePart(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Operarios ─────────────────────────────────────────────────────────────────

// CreateWorker godoc
// @Summary      Crear operario
// @Tags         master-data
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WorkerRequest  true  "Operario"
// @Success      201   {object}  dto.WorkerResponse
// @Security     BearerAuth
// @Router       /api/workers [post]
func (h *MasterDataHandler) CreateWorker(c *fiber.Ctx) error {
	var in dto.WorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateWorker(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateWorker godoc
// @Summary      Actualizar operario
// @Tags         master-data
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.WorkerRequest  true  "Operario"
// @Success      200   {object}  dto.WorkerResponse
// @Security     BearerAuth
// @Router       /api/workers/{id} [put]
func (h *MasterDataHandler) UpdateWorker(c *fiber.Ctx) error {
	var in dto.WorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateWorker(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListWorkers godoc
// @Summary      Listar operarios
// @Tags         master-data
// @Produce      json
// @Param        work_line  query  string  false  "Línea"
// @Param        active     query  bool    false  "Solo activos"
// @Success      200        {array}  dto.WorkerResponse
// @Security     BearerAuth
// @Router       /api/workers [get]
func (h *MasterDataHandler) ListWorkers(c *fiber.Ctx) error {
	out, err := h.uc.ListWorkers(c.Context(), c.Query("work_line"), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteWorker godoc
// @Summary      Eliminar operario
// @Tags         master-data
// @Param        id  path  string  true  "ID"
// @Success      204
// @Security     BearerAuth
// @Router       /api/workers/{id} [delete]
func (h *MasterDataHandler) DeleteWorker(c *fiber.Ctx) error {
	if err := h.uc.DeleteWorker(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
