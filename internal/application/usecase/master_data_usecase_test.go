package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

type memSuppliers struct{ items []*entity.Supplier }

func (m *memSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	m.items = append(m.items, s)
	return nil
}
func (m *memSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	for _, s := range m.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSuppliers) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	for _, s := range m.items {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSuppliers) Update(context.Context, *entity.Supplier) error { return nil }
func (m *memSuppliers) List(context.Context, int, int) ([]*entity.Supplier, error) {
	return m.items, nil
}
func (m *memSuppliers) Delete(context.Context, string) error { return nil }

type memParts struct{ items []*entity.Part }

func (m *memParts) Create(_ context.Context, p *entity.Part) error {
	m.items = append(m.items, p)
	return nil
}
func (m *memParts) GetByID(_ context.Context, id string) (*entity.Part, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memParts) GetByCode(_ context.Context, code string) (*entity.Part, error) {
	for _, p := range m.items {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memParts) Update(context.Context, *entity.Part) error { return nil }
func (m *memParts) List(context.Context, int, int) ([]*entity.Part, error) {
	return m.items, nil
}
func (m *memParts) Delete(context.Context, string) error { return nil }

type memWorkers struct{ items []*entity.Worker }

func (m *memWorkers) Create(_ context.Context, w *entity.Worker) error {
	m.items = append(m.items, w)
	return nil
}
func (m *memWorkers) GetByID(_ context.Context, id string) (*entity.Worker, error) {
	for _, w := range m.items {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}
func (m *memWorkers) Update(context.Context, *entity.Worker) error { return nil }
func (m *memWorkers) List(_ context.Context, workLine string, onlyActive bool) ([]*entity.Worker, error) {
	var out []*entity.Worker
	for _, w := range m.items {
		if (workLine == "" || w.WorkLine == workLine) && (!onlyActive || w.Active) {
			out = append(out, w)
		}
	}
	return out, nil
}
func (m *memWorkers) Delete(context.Context, string) error { return nil }

func newMasterData() (*usecase.MasterDataUseCase, *memSuppliers, *memParts, *memWorkers) {
	s, p, w := &memSuppliers{}, &memParts{}, &memWorkers{}
	return usecase.NewMasterDataUseCase(s, p, w), s, p, w
}

func TestMasterData_ProveedorNombreUnico(t *testing.T) {
	uc, _, _, _ := newMasterData()
	ctx := context.Background()

	out, err := uc.CreateSupplier(ctx, dto.SupplierRequest{Name: "  대한정밀 "})
	require.NoError(t, err)
	assert.Equal(t, "대한정밀", out.Name)
	assert.NotEmpty(t, out.ID)

	_, err = uc.CreateSupplier(ctx, dto.SupplierRequest{Name: "대한정밀"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateSupplier(ctx, dto.SupplierRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMasterData_PiezaValidaProveedor(t *testing.T) {
	uc, _, _, _ := newMasterData()
	ctx := context.Background()

	sup, err := uc.CreateSupplier(ctx, dto.SupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.CreatePart(ctx, dto.PartRequest{Code: "P-1", Name: "Tapa", SupplierID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	part, err := uc.CreatePart(ctx, dto.PartRequest{Code: "P-1", Name: "Tapa", SupplierID: sup.ID})
	require.NoError(t, err)
	assert.Equal(t, sup.ID, part.SupplierID)

	_, err = uc.CreatePart(ctx, dto.PartRequest{Code: "P-1", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreatePart(ctx, dto.PartRequest{Code: "P-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "name es obligatorio")

	upd, err := uc.UpdatePart(ctx, part.ID, dto.PartRequest{Name: "Tapa v2", Color: "negro"})
	require.NoError(t, err)
	assert.Equal(t, "P-1", upd.Code, "el código no cambia")
	assert.Equal(t, "Tapa v2", upd.Name)
	assert.Empty(t, upd.SupplierID)

	missing, err := uc.UpdatePart(ctx, "nada", dto.PartRequest{Name: "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMasterData_OperariosActivosPorLinea(t *testing.T) {
	uc, _, _, _ := newMasterData()
	ctx := context.Background()
	inactive := false

	_, err := uc.CreateWorker(ctx, dto.WorkerRequest{Name: "김민수", WorkLine: "L1"})
	require.NoError(t, err)
	_, err = uc.CreateWorker(ctx, dto.WorkerRequest{Name: "이서연", WorkLine: "L1", Active: &inactive})
	require.NoError(t, err)
	_, err = uc.CreateWorker(ctx, dto.WorkerRequest{Name: "박지훈", WorkLine: "L2"})
	require.NoError(t, err)

	list, err := uc.ListWorkers(ctx, "L1", true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "김민수", list[0].Name)

	all, err := uc.ListWorkers(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = uc.CreateWorker(ctx, dto.WorkerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type memDevices struct{ byToken map[string]*entity.DeviceToken }

func (m *memDevices) Upsert(_ context.Context, t *entity.DeviceToken) error {
	m.byToken[t.Token] = t
	return nil
}
func (m *memDevices) Delete(_ context.Context, token string) error {
	delete(m.byToken, token)
	return nil
}
func (m *memDevices) ListAll(context.Context) ([]*entity.DeviceToken, error) {
	out := make([]*entity.DeviceToken, 0, len(m.byToken))
	for _, t := range m.byToken {
		out = append(out, t)
	}
	return out, nil
}

func TestDevice_RegistroYBaja(t *testing.T) {
	repo := &memDevices{byToken: map[string]*entity.DeviceToken{}}
	uc := usecase.NewDeviceUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Register(ctx, "u1", dto.RegisterDeviceRequest{Token: " tok-1 "}))
	require.Contains(t, repo.byToken, "tok-1")
	assert.Equal(t, "web", repo.byToken["tok-1"].Platform)

	require.NoError(t, uc.Register(ctx, "u2", dto.RegisterDeviceRequest{Token: "tok-1", Platform: "android"}))
	assert.Equal(t, "u2", repo.byToken["tok-1"].UserID, "el token se reasigna")

	assert.ErrorIs(t, uc.Register(ctx, "u1", dto.RegisterDeviceRequest{}), domain.ErrInvalidInput)

	require.NoError(t, uc.Unregister(ctx, "tok-1"))
	assert.Empty(t, repo.byToken)
}
