package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/postgres"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_ListaSubcomandos(t *testing.T) {
	out, err := runCmd(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"migrate", "seed", "import", "groups", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestMigrate_PrintNoSeConecta(t *testing.T) {
	out, err := runCmd(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS orders")
}

func TestSeed_ArgumentoObligatorio(t *testing.T) {
	_, err := runCmd(t, "seed")
	assert.Error(t, err)
}

const seedYAML = `
suppliers:
  - name: Hanil Precision
    contact: Kim
  - name: Daesung
parts:
  - code: BRK-100
    name: Bracket
    supplier: Hanil Precision
  - code: CVR-200
    name: Cover
workers:
  - name: Lee Jiwoo
    work_line: L1
  - name: Park Minji
    work_line: L2
`

func TestParseSeed(t *testing.T) {
	f, err := parseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, f.Suppliers, 2)
	require.Len(t, f.Parts, 2)
	assert.Equal(t, "BRK-100", f.Parts[0].Code)
	assert.Equal(t, "Hanil Precision", f.Parts[0].Supplier)
	assert.Equal(t, "L2", f.Workers[1].WorkLine)

	_, err = parseSeed([]byte("parts:\n  - name: sin codigo\n"))
	assert.ErrorContains(t, err, "parts[0]")

	_, err = parseSeed([]byte("suppliers: [\n"))
	assert.Error(t, err)
}

func TestSeed_DryRunDesdeArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	out, err := runCmd(t, "seed", "--dry-run", path)
	require.NoError(t, err)
	assert.Equal(t, "2 proveedores, 2 piezas, 2 operarios\n", out)
}

func TestSeedMasterData_IdempotenteYResuelveProveedor(t *testing.T) {
	repos, sup, parts, workers := newFakeRepos()
	f, err := parseSeed([]byte(seedYAML))
	require.NoError(t, err)
	ctx := context.Background()

	st, err := seedMasterData(ctx, repos, f)
	require.NoError(t, err)
	assert.Equal(t, seedStats{Created: 6}, st)

	hanil, _ := sup.GetByName(ctx, "Hanil Precision")
	require.NotNil(t, hanil)
	brk, _ := parts.GetByCode(ctx, "BRK-100")
	require.NotNil(t, brk)
	assert.Equal(t, hanil.ID, brk.SupplierID)

	st, err = seedMasterData(ctx, repos, f)
	require.NoError(t, err)
	assert.Equal(t, seedStats{Skipped: 6}, st, "segunda pasada no duplica")
	assert.Len(t, workers.items, 2)
}

func TestSeedMasterData_ProveedorInexistente(t *testing.T) {
	repos, _, _, _ := newFakeRepos()
	f, err := parseSeed([]byte("parts:\n  - code: X-1\n    name: X\n    supplier: Nadie\n"))
	require.NoError(t, err)

	_, err = seedMasterData(context.Background(), repos, f)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckLegacy(t *testing.T) {
	docs := []dto.LegacyInspection{
		{ID: "a", OrderNumber: "PO-1", InspectionType: "incoming", CreatedAt: "2024-05-01T08:00:00Z"},
		{ID: "b", OrderNumber: "PO-1", InspectionType: "incoming", CreatedAt: "01/05/2024"},
		{ID: "c", OrderNumber: "PO-1", InspectionType: "final", CreatedAt: "2024-05-01T08:00:00Z"},
	}
	res := checkLegacy(docs)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Rejected, 2)
	assert.True(t, strings.HasPrefix(res.Rejected[0], "1:"))
	assert.True(t, strings.HasPrefix(res.Rejected[1], "2:"))
}

func TestImport_DryRunDesdeArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	body := `[{"id":"a","orderNumber":"PO-1","inspectionType":"outgoing","createdAt":"2024-05-01T08:00:00.123Z"},
	          {"id":"b","orderNumber":"PO-1","inspectionType":"outgoing","createdAt":""}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err := runCmd(t, "import", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "importados: 1, rechazados: 1")
	assert.Contains(t, out, "rechazado 1:")
}

func TestPrintGroups(t *testing.T) {
	at := time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC)
	groups := []entity.GroupedInspection{{
		OrderNumber: "PO-1",
		LatestDate:  at,
		Common:      entity.CommonFields{ProductName: "Bracket"},
		Incoming:    []entity.InspectionRecord{{Result: entity.ResultPass}},
		InProcess:   []entity.InspectionRecord{{Result: entity.ResultFail, Urgent: true}},
	}}
	var buf bytes.Buffer
	require.NoError(t, printGroups(&buf, groups, time.FixedZone("KST", 9*60*60)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ORDEN")
	assert.Equal(t, []string{"PO-1", "2024-06-10", "10:00", "Bracket", "1", "1", "0", "1", "!"}, strings.Fields(lines[1]))
	assert.Equal(t, "1 grupos", lines[2])
}

// ── fakes de datos maestros ───────────────────────────────────────────────────

type fakeSuppliers struct{ items []*entity.Supplier }

func (f *fakeSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	f.items = append(f.items, s)
	return nil
}
func (f *fakeSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeSuppliers) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	for _, s := range f.items {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeSuppliers) Update(context.Context, *entity.Supplier) error { return nil }
func (f *fakeSuppliers) List(context.Context, int, int) ([]*entity.Supplier, error) {
	return f.items, nil
}
func (f *fakeSuppliers) Delete(context.Context, string) error { return nil }

type fakeParts struct{ items []*entity.Part }

func (f *fakeParts) Create(_ context.Context, p *entity.Part) error {
	f.items = append(f.items, p)
	return nil
}
func (f *fakeParts) GetByID(_ context.Context, id string) (*entity.Part, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeParts) GetByCode(_ context.Context, code string) (*entity.Part, error) {
	for _, p := range f.items {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeParts) Update(context.Context, *entity.Part) error { return nil }
func (f *fakeParts) List(context.Context, int, int) ([]*entity.Part, error) {
	return f.items, nil
}
func (f *fakeParts) Delete(context.Context, string) error { return nil }

type fakeWorkers struct{ items []*entity.Worker }

func (f *fakeWorkers) Create(_ context.Context, w *entity.Worker) error {
	f.items = append(f.items, w)
	return nil
}
func (f *fakeWorkers) GetByID(context.Context, string) (*entity.Worker, error) { return nil, nil }
func (f *fakeWorkers) Update(context.Context, *entity.Worker) error          { return nil }
func (f *fakeWorkers) List(context.Context, string, bool) ([]*entity.Worker, error) {
	return f.items, nil
}
func (f *fakeWorkers) Delete(context.Context, string) error { return nil }

func newFakeRepos() (postgres.MasterDataRepos, *fakeSuppliers, *fakeParts, *fakeWorkers) {
	s, p, w := &fakeSuppliers{}, &fakeParts{}, &fakeWorkers{}
	return postgres.MasterDataRepos{Suppliers: s, Parts: p, Workers: w}, s, p, w
}
