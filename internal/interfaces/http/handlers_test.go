package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/events"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/export"
	apphttp "github.com/jhoicas/Calidad-api/internal/interfaces/http"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type memInspections struct {
	mu      sync.Mutex
	records []entity.InspectionRecord
	seq     map[string]int64
}

func (m *memInspections) Create(_ context.Context, rec *entity.InspectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *memInspections) GetByID(_ context.Context, id string) (*entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			c := r
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memInspections) Save(_ context.Context, rec *entity.InspectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = *rec
			return nil
		}
	}
	return fmt.Errorf("no existe %s", rec.ID)
}

func (m *memInspections) ListAll(context.Context) ([]entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.InspectionRecord{}, m.records...), nil
}

func (m *memInspections) ListByOrderNumber(_ context.Context, n string) ([]entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.InspectionRecord
	for _, r := range m.records {
		if r.OrderNumber == n {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memInspections) ListDrafts(context.Context) ([]entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.InspectionRecord
	for _, r := range m.records {
		if r.IsDraft() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memInspections) DeleteByOrderNumber(_ context.Context, n string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if r.OrderNumber == n {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

func (m *memInspections) NextSequence(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seq == nil {
		m.seq = map[string]int64{}
	}
	m.seq[key]++
	return m.seq[key], nil
}

type memImages struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *memImages) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	url := "/files/" + key
	s.data[url] = b
	return url, nil
}

func (s *memImages) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, url)
	return nil
}

type stubReport struct{}

func (stubReport) GenerateGroupReport(g *entity.GroupedInspection, _ time.Time) ([]byte, error) {
	return []byte("%PDF-" + g.OrderNumber), nil
}

// ── app de prueba ─────────────────────────────────────────────────────────────

type testEnv struct {
	app    *fiber.App
	repo   *memInspections
	images *memImages
	view   *quality.GroupedView
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zerolog.Nop()
	repo := &memInspections{}
	images := &memImages{}
	bus := events.NewMemoryBus(log)
	view := quality.NewGroupedView(repo, log)
	require.NoError(t, view.Refresh(ctx))
	require.NoError(t, view.Watch(ctx, bus))

	inspections := quality.NewInspectionUseCase(repo, nil, images, bus, nil, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InspectionUC: inspections,
		View:         view,
		DashboardUC:  quality.NewDashboardUseCase(view, nil, time.UTC, log),
		ExportUC:     quality.NewExportUseCase(view, export.NewExcelExporter(time.UTC), stubReport{}, export.QRLabels{}, time.UTC),
		JWTSecret:    testJWTSecret,
		Location:     time.UTC,
	})
	return &testEnv{app: app, repo: repo, images: images, view: view}
}

func (e *testEnv) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func incomingBody(order string) dto.CreateInspectionRequest {
	return dto.CreateInspectionRequest{
		OrderNumber:    order,
		InspectionType: string(entity.PhaseIncoming),
		Common:         entity.CommonFields{ProductName: "Bracket", Supplier: "Hanil"},
		Result:         entity.ResultPass,
		Details:        entity.PhaseDetails{Incoming: &entity.IncomingDetails{ReceivedQuantity: 100, SampleSize: 10}},
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestInspecciones_CrearYVerEnGrupo(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", incomingBody("PO-100"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rec := decode[entity.InspectionRecord](t, resp)
	assert.Equal(t, "PO-100", rec.OrderNumber)
	assert.Equal(t, testUserName, rec.Inspector)
	assert.NotEmpty(t, rec.Common.DisplayID)

	// La vista se actualiza en la misma petición (bus en memoria síncrono).
	resp = env.do(t, http.MethodGet, "/api/groups", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.GroupListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "PO-100", list.Items[0].OrderNumber)
	assert.Len(t, list.Items[0].Incoming, 1)

	resp = env.do(t, http.MethodGet, "/api/groups/PO-100", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	g := decode[entity.GroupedInspection](t, resp)
	assert.Equal(t, "Bracket", g.Common.ProductName)
}

func TestInspecciones_ViewerNoPuedeCrear(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inspections", "viewer", incomingBody("PO-1"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInspecciones_SinTokenRetorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/groups", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInspecciones_FaseInvalidaYDetallesCruzados(t *testing.T) {
	env := newTestEnv(t)

	body := incomingBody("PO-1")
	body.InspectionType = "final"
	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	body = incomingBody("PO-1")
	body.InspectionType = string(entity.PhaseOutgoing)
	resp = env.do(t, http.MethodPost, "/api/inspections", "inspector", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PHASE_MISMATCH", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInspecciones_BorradorNoApareceEnGrupos(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", incomingBody("T"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/groups", "viewer", nil)
	assert.Equal(t, 0, decode[dto.GroupListResponse](t, resp).Total)

	resp = env.do(t, http.MethodGet, "/api/inspections/drafts", "viewer", nil)
	assert.Equal(t, 1, decode[dto.InspectionListResponse](t, resp).Total)

	resp = env.do(t, http.MethodGet, "/api/groups/T", "viewer", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInspecciones_EditarYComentar(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", incomingBody("PO-7"))
	rec := decode[entity.InspectionRecord](t, resp)

	fail := entity.ResultFail
	resp = env.do(t, http.MethodPatch, "/api/inspections/"+rec.ID, "inspector", dto.UpdateInspectionRequest{Result: &fail, Reason: "rayas"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[entity.InspectionRecord](t, resp)
	assert.Equal(t, entity.ResultFail, updated.Result)
	assert.Greater(t, len(updated.History), 1)

	resp = env.do(t, http.MethodPost, "/api/inspections/"+rec.ID+"/comments", "inspector", dto.AddCommentRequest{Text: "revisar lote"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	commented := decode[entity.InspectionRecord](t, resp)
	require.NotEmpty(t, commented.Comments)
	assert.Equal(t, "revisar lote", commented.Comments[len(commented.Comments)-1].Text)

	resp = env.do(t, http.MethodPost, "/api/inspections/"+rec.ID+"/comments", "inspector", dto.AddCommentRequest{Text: "  "})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInspecciones_GetInexistente404(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/inspections/no-existe", "viewer", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInspecciones_SubirFoto(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", incomingBody("PO-8"))
	rec := decode[entity.InspectionRecord](t, resp)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="falla.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+rec.ID+"/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "inspector"))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	withImage := decode[entity.InspectionRecord](t, resp)
	require.Len(t, withImage.ImageURLs, 1)
	assert.True(t, strings.HasPrefix(withImage.ImageURLs[0], "/files/"))

	resp = env.do(t, http.MethodDelete, "/api/inspections/"+rec.ID+"/images", "inspector", dto.RemoveImageRequest{URL: withImage.ImageURLs[0]})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[entity.InspectionRecord](t, resp).ImageURLs)
	assert.Empty(t, env.images.data)
}

func TestGrupos_FiltroUrgenteYFechaInvalida(t *testing.T) {
	env := newTestEnv(t)
	urgent := incomingBody("PO-U")
	urgent.Urgent = true
	for _, b := range []dto.CreateInspectionRequest{incomingBody("PO-N"), urgent} {
		resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", b)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.do(t, http.MethodGet, "/api/groups?urgent=true", "viewer", nil)
	list := decode[dto.GroupListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "PO-U", list.Items[0].OrderNumber)
	assert.True(t, env.view.Snapshot().RefreshedAt.Equal(list.RefreshedAt), "items y fecha salen de la misma instantánea")

	resp = env.do(t, http.MethodGet, "/api/groups?from=ayer", "viewer", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGrupos_AgregarRegistroYBorrarSoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", incomingBody("PO-G"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	outgoing := dto.CreateInspectionRequest{
		InspectionType: string(entity.PhaseOutgoing),
		Details:        entity.PhaseDetails{Outgoing: &entity.OutgoingDetails{ShipmentQuantity: 50}},
	}
	resp = env.do(t, http.MethodPost, "/api/groups/PO-G/records", "inspector", outgoing)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decode[entity.InspectionRecord](t, resp)
	assert.Equal(t, "Bracket", added.Common.ProductName, "hereda los campos comunes del grupo")

	resp = env.do(t, http.MethodDelete, "/api/groups/PO-G", "inspector", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/groups/PO-G", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), decode[dto.DeleteGroupResponse](t, resp).Deleted)
	assert.Empty(t, env.view.Groups())

	resp = env.do(t, http.MethodDelete, "/api/groups/T", "admin", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImport_LegacyRechazaFechaMalFormada(t *testing.T) {
	env := newTestEnv(t)
	docs := []map[string]any{
		{"id": "a", "orderNumber": "PO-L", "inspectionType": "incoming", "createdAt": "2024-05-01T08:00:00Z", "result": "pass"},
		{"id": "b", "orderNumber": "PO-L", "inspectionType": "incoming", "createdAt": "ayer", "result": "pass"},
	}
	b, err := json.Marshal(docs)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/import?format=legacy", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "inspector"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "importar es solo de admin")

	req = httptest.NewRequest(http.MethodPost, "/api/inspections/import?format=legacy", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[quality.ImportResult](t, resp)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Rejected, 1)
	assert.True(t, strings.HasPrefix(res.Rejected[0], "1:"))
}

func TestDashboardYExportaciones(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inspections", "inspector", incomingBody("PO-X"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/dashboard/summary", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.QualitySummaryDTO](t, resp)
	assert.Equal(t, 1, summary.TotalGroups)
	assert.Equal(t, 1, summary.TodayTotal)

	resp = env.do(t, http.MethodGet, "/api/exports/groups.xlsx", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/exports/groups/PO-X/report.pdf", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "%PDF-PO-X", string(pdf))

	resp = env.do(t, http.MethodGet, "/api/exports/groups/PO-404/report.pdf", "viewer", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/exports/orders/PO-X/label.png?size=128", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
