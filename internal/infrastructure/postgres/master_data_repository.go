package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.PartRepository     = (*PartRepo)(nil)
	_ repository.WorkerRepository   = (*WorkerRepo)(nil)
)

// ── proveedores ───────────────────────────────────────────────────────────────

const supplierColumns = `id, name, contact, phone, email, notes, created_at, updated_at`

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.getOne(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
}

func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return r.getOne(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE name = $1`, name)
}

func (r *SupplierRepo) getOne(ctx context.Context, query, arg string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx, `UPDATE suppliers SET name = $2, contact = $3, phone = $4, email = $5, notes = $6, updated_at = $7
		WHERE id = $1`, s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Notes, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ── piezas ────────────────────────────────────────────────────────────────────

const partColumns = `id, code, name, product_name, material, color, specification, post_process, supplier_id, created_at, updated_at`

// PartRepo catálogo de piezas sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el repositorio.
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	_, err := r.q.Exec(ctx, `INSERT INTO parts (`+partColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Code, p.Name, p.ProductName, p.Material, p.Color, p.Specification, p.PostProcess,
		nullableString(p.SupplierID), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
}

func (r *PartRepo) GetByCode(ctx context.Context, code string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE code = $1`, code)
}

func (r *PartRepo) getOne(ctx context.Context, query, arg string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	tag, err := r.q.Exec(ctx, `UPDATE parts SET code = $2, name = $3, product_name = $4, material = $5, color = $6,
			specification = $7, post_process = $8, supplier_id = $9, updated_at = $10
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.ProductName, p.Material, p.Color, p.Specification, p.PostProcess,
		nullableString(p.SupplierID), p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+partColumns+` FROM parts ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	list := []*entity.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPart(row rowScanner) (*entity.Part, error) {
	var (
		p        entity.Part
		supplier *string
	)
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.ProductName, &p.Material, &p.Color, &p.Specification,
		&p.PostProcess, &supplier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		p.SupplierID = *supplier
	}
	return &p, nil
}

// ── operarios ─────────────────────────────────────────────────────────────────

const workerColumns = `id, name, work_line, active, created_at, updated_at`

// WorkerRepo operarios sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el repositorio.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	_, err := r.q.Exec(ctx, `INSERT INTO workers (`+workerColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.Name, w.WorkLine, w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	w, err := scanWorker(r.q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return w, nil
}

func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	tag, err := r.q.Exec(ctx, `UPDATE workers SET name = $2, work_line = $3, active = $4, updated_at = $5 WHERE id = $1`,
		w.ID, w.Name, w.WorkLine, w.Active, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List operarios por nombre; workLine vacío no filtra.
func (r *WorkerRepo) List(ctx context.Context, workLine string, onlyActive bool) ([]*entity.Worker, error) {
	rows, err := r.q.Query(ctx, `SELECT `+workerColumns+` FROM workers
		WHERE ($1 = '' OR work_line = $1) AND (NOT $2 OR active)
		ORDER BY name`, workLine, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Worker{}
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWorker(row rowScanner) (*entity.Worker, error) {
	var w entity.Worker
	if err := row.Scan(&w.ID, &w.Name, &w.WorkLine, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// nullableString NULL para cadenas vacías (FKs opcionales).
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
