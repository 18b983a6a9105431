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

// MasterDataUseCase CRUD de datos maestros: proveedores, piezas y operarios.
type MasterDataUseCase struct {
	suppliers repository.SupplierRepository
	parts     repository.PartRepository
	workers   repository.WorkerRepository
}

// NewMasterDataUseCase construye el caso de uso.
func NewMasterDataUseCase(suppliers repository.SupplierRepository, parts repository.PartRepository, workers repository.WorkerRepository) *MasterDataUseCase {
	return &MasterDataUseCase{suppliers: suppliers, parts: parts, workers: workers}
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier crea un proveedor; el nombre es único.
func (uc *MasterDataUseCase) CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.suppliers.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// UpdateSupplier reemplaza los datos de un proveedor.
func (uc *MasterDataUseCase) UpdateSupplier(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		s.Name = name
	}
	s.Contact, s.Phone, s.Email, s.Notes = in.Contact, in.Phone, in.Email, in.Notes
	s.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers lista proveedores ordenados por nombre.
func (uc *MasterDataUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// DeleteSupplier elimina un proveedor.
func (uc *MasterDataUseCase) DeleteSupplier(ctx context.Context, id string) error {
	return uc.suppliers.Delete(ctx, id)
}

// ── Piezas ────────────────────────────────────────────────────────────────────

// CreatePart crea una pieza; el código es único.
func (uc *MasterDataUseCase) CreatePart(ctx context.Context, in dto.PartRequest) (*dto.PartResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: code y name requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.parts.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Part{
		ID:            uuid.New().String(),
		Code:          code,
		Name:          strings.TrimSpace(in.Name),
		ProductName:   in.ProductName,
		Material:      in.Material,
		Color:         in.Color,
		Specification: in.Specification,
		PostProcess:   in.PostProcess,
		SupplierID:    in.SupplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.parts.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartResponse(p), nil
}

// UpdatePart reemplaza los datos de una pieza (el código no cambia).
func (uc *MasterDataUseCase) UpdatePart(ctx context.Context, id string, in dto.PartRequest) (*dto.PartResponse, error) {
	p, err := uc.parts.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	p.ProductName, p.Material, p.Color = in.ProductName, in.Material, in.Color
	p.Specification, p.PostProcess, p.SupplierID = in.Specification, in.PostProcess, in.SupplierID
	p.UpdatedAt = time.Now()
	if err := uc.parts.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPartResponse(p), nil
}

// ListParts lista piezas ordenadas por código.
func (uc *MasterDataUseCase) ListParts(ctx context.Context, limit, offset int) ([]dto.PartResponse, error) {
	list, err := uc.parts.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPartResponse(p))
	}
	return out, nil
}

// DeletePart elimina una pieza.
func (uc *MasterDataUseCase) DeletePart(ctx context.Context, id string) error {
	return uc.parts.Delete(ctx, id)
}

func (uc *MasterDataUseCase) checkSupplier(ctx context.Context, supplierID string) error {
	if supplierID == "" {
		return nil
	}
	s, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, supplierID)
	}
	return nil
}

// ── Operarios ─────────────────────────────────────────────────────────────────

// CreateWorker crea un operario (activo por defecto).
func (uc *MasterDataUseCase) CreateWorker(ctx context.Context, in dto.WorkerRequest) (*dto.WorkerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	w := &entity.Worker{
		ID:        uuid.New().String(),
		Name:      name,
		WorkLine:  strings.TrimSpace(in.WorkLine),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.workers.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// UpdateWorker cambia nombre, línea o estado de un operario.
func (uc *MasterDataUseCase) UpdateWorker(ctx context.Context, id string, in dto.WorkerRequest) (*dto.WorkerResponse, error) {
	w, err := uc.workers.GetByID(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		w.Name = name
	}
	w.WorkLine = strings.TrimSpace(in.WorkLine)
	if in.Active != nil {
		w.Active = *in.Active
	}
	w.UpdatedAt = time.Now()
	if err := uc.workers.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// ListWorkers lista operarios, opcionalmente de una línea y solo activos.
func (uc *MasterDataUseCase) ListWorkers(ctx context.Context, workLine string, onlyActive bool) ([]dto.WorkerResponse, error) {
	list, err := uc.workers.List(ctx, workLine, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkerResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWorkerResponse(w))
	}
	return out, nil
}

// DeleteWorker elimina un operario.
func (uc *MasterDataUseCase) DeleteWorker(ctx context.Context, id string) error {
	return uc.workers.Delete(ctx, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID: s.ID, Name: s.Name, Contact: s.Contact, Phone: s.Phone, Email: s.Email, Notes: s.Notes,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID: p.ID, Code: p.Code, Name: p.Name, ProductName: p.ProductName, Material: p.Material,
		Color: p.Color, Specification: p.Specification, PostProcess: p.PostProcess, SupplierID: p.SupplierID,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toWorkerResponse(w *entity.Worker) *dto.WorkerResponse {
	if w == nil {
		return nil
	}
	return &dto.WorkerResponse{
		ID: w.ID, Name: w.Name, WorkLine: w.WorkLine, Active: w.Active,
		CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
	}
}
