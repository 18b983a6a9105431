package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

// DeviceUseCase registro de tokens push por usuario.
type DeviceUseCase struct {
	repo repository.DeviceTokenRepository
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(repo repository.DeviceTokenRepository) *DeviceUseCase {
	return &DeviceUseCase{repo: repo}
}

// Register guarda (o reasigna) un token al usuario.
func (uc *DeviceUseCase) Register(ctx context.Context, userID string, in dto.RegisterDeviceRequest) error {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return fmt.Errorf("%w: token requerido", domain.ErrInvalidInput)
	}
	platform := in.Platform
	if platform == "" {
		platform = "web"
	}
	return uc.repo.Upsert(ctx, &entity.DeviceToken{
		Token:     token,
		UserID:    userID,
		Platform:  platform,
		CreatedAt: time.Now(),
	})
}

// Unregister borra un token (logout del dispositivo).
func (uc *DeviceUseCase) Unregister(ctx context.Context, token string) error {
	return uc.repo.Delete(ctx, strings.TrimSpace(token))
}
