package dto

// RegisterDeviceRequest registro de un token FCM.
type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=web android ios"`
}
