package quality_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// ── repositorio en memoria ────────────────────────────────────────────────────

type memInspectionRepo struct {
	mu      sync.Mutex
	records []entity.InspectionRecord
	seq     map[string]int64
}

func newMemInspectionRepo(seed ...entity.InspectionRecord) *memInspectionRepo {
	r := &memInspectionRepo{seq: map[string]int64{}}
	for _, s := range seed {
		r.records = append(r.records, clone(s))
	}
	return r
}

func clone(r entity.InspectionRecord) entity.InspectionRecord {
	r.History = append([]entity.HistoryEntry{}, r.History...)
	r.Comments = append([]entity.Comment{}, r.Comments...)
	r.ImageURLs = append([]string{}, r.ImageURLs...)
	return r
}

func (m *memInspectionRepo) Create(_ context.Context, rec *entity.InspectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == rec.ID {
			return fmt.Errorf("duplicado %s", rec.ID)
		}
	}
	m.records = append(m.records, clone(*rec))
	return nil
}

func (m *memInspectionRepo) GetByID(_ context.Context, id string) (*entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			c := clone(r)
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memInspectionRepo) Save(_ context.Context, rec *entity.InspectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == rec.ID {
			m.records[i] = clone(*rec)
			return nil
		}
	}
	return fmt.Errorf("no existe %s", rec.ID)
}

func (m *memInspectionRepo) ListAll(_ context.Context) ([]entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.InspectionRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, clone(r))
	}
	return out, nil
}

func (m *memInspectionRepo) ListByOrderNumber(_ context.Context, orderNumber string) ([]entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.InspectionRecord
	for _, r := range m.records {
		if r.OrderNumber == orderNumber {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (m *memInspectionRepo) ListDrafts(_ context.Context) ([]entity.InspectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.InspectionRecord
	for _, r := range m.records {
		if r.IsDraft() {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (m *memInspectionRepo) DeleteByOrderNumber(_ context.Context, orderNumber string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	var n int64
	for _, r := range m.records {
		if r.OrderNumber == orderNumber {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return n, nil
}

func (m *memInspectionRepo) NextSequence(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[key]++
	return m.seq[key], nil
}

// ── órdenes ───────────────────────────────────────────────────────────────────

type fakeOrders struct {
	byNumber map[string]*entity.Order
}

func (f *fakeOrders) Create(context.Context, *entity.Order) error { return nil }
func (f *fakeOrders) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, nil
}
func (f *fakeOrders) GetByOrderNumber(_ context.Context, n string) (*entity.Order, error) {
	return f.byNumber[n], nil
}
func (f *fakeOrders) Update(context.Context, *entity.Order) error { return nil }
func (f *fakeOrders) List(context.Context, string, int, int) ([]*entity.Order, error) {
	return nil, nil
}

// ── almacenamiento, eventos y avisos ──────────────────────────────────────────

type fakeStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage { return &fakeStorage{files: map[string][]byte{}} }

func (s *fakeStorage) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "/files/" + key
	s.files[url] = buf.Bytes()
	return url, nil
}

func (s *fakeStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, url)
	s.deleted = append(s.deleted, url)
	return nil
}

// syncBus publica y entrega en la misma goroutine.
type syncBus struct {
	mu       sync.Mutex
	events   []quality.ChangeEvent
	handlers []quality.ChangeHandler
}

func (b *syncBus) PublishChange(ctx context.Context, ev quality.ChangeEvent) error {
	b.mu.Lock()
	b.events = append(b.events, ev)
	hs := append([]quality.ChangeHandler{}, b.handlers...)
	b.mu.Unlock()
	for _, h := range hs {
		_ = h(ctx, ev)
	}
	return nil
}

func (b *syncBus) SubscribeChanges(_ context.Context, h quality.ChangeHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
	return nil
}

func (b *syncBus) kinds() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Kind)
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []quality.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg quality.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) last() quality.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

// fixedClock reloj controlado por el test.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
