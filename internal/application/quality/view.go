package quality

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

// Snapshot estado inmutable de la vista agrupada en un instante.
type Snapshot struct {
	Groups      []entity.GroupedInspection
	Drafts      int
	RefreshedAt time.Time
}

// GroupedView mantiene la vista agrupada en memoria. Cada Refresh relee todos
// los registros y reagrupa desde cero; los lectores nunca ven un estado parcial.
type GroupedView struct {
	repo repository.InspectionRepository
	log  zerolog.Logger
	now  func() time.Time

	refreshMu sync.Mutex // serializa los Refresh
	mu        sync.RWMutex
	snap      Snapshot
}

// NewGroupedView construye la vista vacía. Llamar Refresh antes de servir.
func NewGroupedView(repo repository.InspectionRepository, log zerolog.Logger) *GroupedView {
	return &GroupedView{
		repo: repo,
		log:  log,
		now:  time.Now,
		snap: Snapshot{Groups: []entity.GroupedInspection{}},
	}
}

// Refresh recalcula la vista completa a partir del almacén.
func (v *GroupedView) Refresh(ctx context.Context) error {
	v.refreshMu.Lock()
	defer v.refreshMu.Unlock()

	records, err := v.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("vista agrupada: listar registros: %w", err)
	}
	drafts, invalid := 0, 0
	for i := range records {
		switch {
		case records[i].IsDraft():
			drafts++
		case !records[i].Phase.Valid():
			invalid++
		}
	}
	if invalid > 0 {
		v.log.Warn().Int("records", invalid).Msg("registros con fase inválida fuera de la vista agrupada")
	}
	next := Snapshot{
		Groups:      quality.Group(records),
		Drafts:      drafts,
		RefreshedAt: v.now().UTC(),
	}

	v.mu.Lock()
	v.snap = next
	v.mu.Unlock()

	v.log.Debug().
		Int("records", len(records)).
		Int("groups", len(next.Groups)).
		Int("drafts", drafts).
		Msg("vista agrupada recalculada")
	return nil
}

// Snapshot devuelve el estado actual. Los slices no deben modificarse.
func (v *GroupedView) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap
}

// Groups devuelve los grupos del estado actual, ordenados por fecha descendente.
func (v *GroupedView) Groups() []entity.GroupedInspection {
	return v.Snapshot().Groups
}

// Find busca un grupo por número de orden.
func (v *GroupedView) Find(orderNumber string) (*entity.GroupedInspection, bool) {
	return quality.FindGroup(v.Groups(), orderNumber)
}

// Filter aplica los predicados sobre el estado actual.
func (v *GroupedView) Filter(preds ...quality.Predicate) []entity.GroupedInspection {
	return v.Snapshot().Filter(preds...)
}

// Filter aplica los predicados sobre los grupos de esta instantánea.
func (s Snapshot) Filter(preds ...quality.Predicate) []entity.GroupedInspection {
	return quality.Filter(s.Groups, preds...)
}

// OnChange ChangeHandler que recalcula la vista ante cualquier evento.
func (v *GroupedView) OnChange(ctx context.Context, ev ChangeEvent) error {
	if err := v.Refresh(ctx); err != nil {
		v.log.Error().Err(err).Str("kind", ev.Kind).Str("order_number", ev.OrderNumber).Msg("no se pudo recalcular la vista")
		return err
	}
	return nil
}

// Watch suscribe la vista a los eventos de cambio.
func (v *GroupedView) Watch(ctx context.Context, sub ChangeSubscriber) error {
	return sub.SubscribeChanges(ctx, v.OnChange)
}
