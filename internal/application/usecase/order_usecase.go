package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

// OrderUseCase casos de uso del registro de órdenes.
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// Create registra una orden. El número "T" está reservado para borradores.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	number := strings.TrimSpace(in.OrderNumber)
	if entity.IsDraftOrderNumber(number) {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrSentinelOrder)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	o := &entity.Order{
		ID:            uuid.New().String(),
		OrderNumber:   number,
		Customer:      in.Customer,
		ProductName:   in.ProductName,
		PartName:      in.PartName,
		Material:      in.Material,
		Color:         in.Color,
		Quantity:      in.Quantity,
		Specification: in.Specification,
		PostProcess:   in.PostProcess,
		DueDate:       in.DueDate,
		Status:        entity.OrderStatusRegistered,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetByOrderNumber obtiene una orden por su número.
func (uc *OrderUseCase) GetByOrderNumber(ctx context.Context, number string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByOrderNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Update actualiza datos descriptivos y estado. El número de orden no cambia.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	if in.Customer != nil {
		o.Customer = *in.Customer
	}
	if in.ProductName != nil {
		o.ProductName = *in.ProductName
	}
	if in.PartName != nil {
		o.PartName = *in.PartName
	}
	if in.Material != nil {
		o.Material = *in.Material
	}
	if in.Color != nil {
		o.Color = *in.Color
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
		}
		o.Quantity = *in.Quantity
	}
	if in.Specification != nil {
		o.Specification = *in.Specification
	}
	if in.PostProcess != nil {
		o.PostProcess = *in.PostProcess
	}
	if in.DueDate != nil {
		o.DueDate = in.DueDate
	}
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		o.Status = *in.Status
	}
	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *OrderUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Customer:      o.Customer,
		ProductName:   o.ProductName,
		PartName:      o.PartName,
		Material:      o.Material,
		Color:         o.Color,
		Quantity:      o.Quantity,
		Specification: o.Specification,
		PostProcess:   o.PostProcess,
		DueDate:       o.DueDate,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
