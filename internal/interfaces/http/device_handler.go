package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
)

// DeviceHandler registro de tokens push del usuario autenticado.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar dispositivo para avisos push
// @Tags         devices
// @Accept       json
// @Param        body  body  dto.RegisterDeviceRequest  true  "Token FCM"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/devices [post]
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Register(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Unregister godoc
// @Summary      Quitar dispositivo
// @Tags         devices
// @Param        token  path  string  true  "Token FCM"
// @Success      204
// @Security     BearerAuth
// @Router       /api/devices/{token} [delete]
func (h *DeviceHandler) Unregister(c *fiber.Ctx) error {
	if err := h.uc.Unregister(c.Context(), c.Params("token")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
