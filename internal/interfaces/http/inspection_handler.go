package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

const maxImageBytes = 10 << 20

// InspectionHandler alta, edición y consulta de registros de inspección.
type InspectionHandler struct {
	uc *quality.InspectionUseCase
}

// NewInspectionHandler construye el handler de inspecciones.
func NewInspectionHandler(uc *quality.InspectionUseCase) *InspectionHandler {
	return &InspectionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear inspección
// @Description  Sin número de orden (o con "T") el registro queda como borrador.
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInspectionRequest  true  "Datos de la inspección"
// @Success      201   {object}  entity.InspectionRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inspections [post]
func (h *InspectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !entity.Phase(in.InspectionType).Valid() {
		return validation(c, "inspection_type debe ser incoming, inProcess u outgoing")
	}
	rec, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetByID godoc
// @Summary      Obtener inspección
// @Tags         inspections
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  entity.InspectionRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inspections/{id} [get]
func (h *InspectionHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// Update godoc
// @Summary      Editar inspección
// @Description  Los campos ausentes no cambian. Cada cambio queda en el historial.
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del registro"
// @Param        body  body  dto.UpdateInspectionRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.InspectionRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inspections/{id} [patch]
func (h *InspectionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rec, err := h.uc.Update(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// AddComment godoc
// @Summary      Comentar inspección
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del registro"
// @Param        body  body  dto.AddCommentRequest  true  "Texto"
// @Success      200   {object}  entity.InspectionRecord
// @Security     BearerAuth
// @Router       /api/inspections/{id}/comments [post]
func (h *InspectionHandler) AddComment(c *fiber.Ctx) error {
	var in dto.AddCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Text) == "" {
		return validation(c, "text es requerido")
	}
	rec, err := h.uc.AddComment(c.Context(), actorFrom(c), c.Params("id"), in.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// UploadImage godoc
// @Summary      Adjuntar foto
// @Tags         inspections
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del registro"
// @Param        file  formData  file    true  "Imagen"
// @Success      200   {object}  entity.InspectionRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inspections/{id}/images [post]
func (h *InspectionHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return validation(c, "campo file requerido")
	}
	if fh.Size > maxImageBytes {
		return validation(c, "la imagen supera 10 MB")
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return validation(c, "solo se aceptan imágenes")
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	rec, err := h.uc.AttachImage(c.Context(), actorFrom(c), c.Params("id"), fh.Filename, contentType, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// RemoveImage godoc
// @Summary      Quitar foto
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del registro"
// @Param        body  body  dto.RemoveImageRequest  true  "URL de la imagen"
// @Success      200   {object}  entity.InspectionRecord
// @Security     BearerAuth
// @Router       /api/inspections/{id}/images [delete]
func (h *InspectionHandler) RemoveImage(c *fiber.Ctx) error {
	var in dto.RemoveImageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.URL == "" {
		return validation(c, "url es requerida")
	}
	rec, err := h.uc.RemoveImage(c.Context(), actorFrom(c), c.Params("id"), in.URL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// ListDrafts godoc
// @Summary      Borradores sin orden
// @Tags         inspections
// @Produce      json
// @Success      200  {object}  dto.InspectionListResponse
// @Security     BearerAuth
// @Router       /api/inspections/drafts [get]
func (h *InspectionHandler) ListDrafts(c *fiber.Ctx) error {
	out, err := h.uc.ListDrafts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar registros históricos
// @Description  Con ?format=legacy acepta documentos exportados con fechas en texto.
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Param        format  query  string  false  "legacy"
// @Success      200     {object}  quality.ImportResult
// @Failure      400     {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inspections/import [post]
func (h *InspectionHandler) Import(c *fiber.Ctx) error {
	var (
		res *quality.ImportResult
		err error
	)
	if c.Query("format") == "legacy" {
		var docs []dto.LegacyInspection
		if err := c.BodyParser(&docs); err != nil {
			return badBody(c)
		}
		res, err = h.uc.ImportLegacy(c.Context(), docs)
	} else {
		var records []entity.InspectionRecord
		if err := c.BodyParser(&records); err != nil {
			return badBody(c)
		}
		res, err = h.uc.Import(c.Context(), records)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
