package quality

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

const dashboardTopDefects = 5 // tipos de defecto en el widget

// DashboardUseCase resumen del día sobre la vista agrupada y envío del resumen diario.
type DashboardUseCase struct {
	view     *GroupedView
	notifier Notifier
	loc      *time.Location
	log      zerolog.Logger
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc es la zona horaria de la planta.
func NewDashboardUseCase(view *GroupedView, notifier Notifier, loc *time.Location, log zerolog.Logger) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{view: view, notifier: notifier, loc: loc, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Summary KPIs del día en curso calculados sobre el snapshot actual.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.QualitySummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	end := start.Add(24 * time.Hour)

	snap := uc.view.Snapshot()
	out := &dto.QualitySummaryDTO{
		Date:        start.Format(dateOnly),
		TotalGroups: len(snap.Groups),
		OpenDrafts:  snap.Drafts,
		TodayByPhase: map[string]int{
			string(entity.PhaseIncoming):  0,
			string(entity.PhaseInProcess): 0,
			string(entity.PhaseOutgoing):  0,
		},
		TopDefects: []dto.DefectCountDTO{},
	}

	defects := map[string]int{}
	passed, failed := 0, 0
	for gi := range snap.Groups {
		g := &snap.Groups[gi]
		urgent := false
		for _, list := range [][]entity.InspectionRecord{g.Incoming, g.InProcess, g.Outgoing} {
			for i := range list {
				r := &list[i]
				if r.Urgent {
					urgent = true
				}
				d := r.EffectiveDate()
				if d.Before(start) || !d.Before(end) {
					continue
				}
				out.TodayByPhase[string(r.Phase)]++
				out.TodayTotal++
				switch r.Result {
				case entity.ResultPass:
					passed++
				case entity.ResultFail:
					failed++
				}
				if r.DefectType != "" {
					defects[r.DefectType]++
				}
			}
		}
		if urgent {
			out.UrgentGroups++
		}
	}
	out.TodayFailed = failed
	out.PassRate = passRate(passed, failed)
	out.TopDefects = topDefects(defects, dashboardTopDefects)
	return out, nil
}

// SendDailyDigest recalcula la vista y envía el resumen del día a los canales configurados.
func (uc *DashboardUseCase) SendDailyDigest(ctx context.Context) error {
	if err := uc.view.Refresh(ctx); err != nil {
		return err
	}
	s, err := uc.Summary(ctx)
	if err != nil {
		return err
	}
	uc.log.Info().Str("date", s.Date).Int("today_total", s.TodayTotal).Int("today_failed", s.TodayFailed).Msg("resumen diario")
	if uc.notifier == nil {
		return nil
	}
	return uc.notifier.Notify(ctx, DigestNotification(s))
}

// DigestNotification arma el aviso del resumen diario.
func DigestNotification(s *dto.QualitySummaryDTO) Notification {
	body := fmt.Sprintf("%d inspecciones (IQC %d · PQC %d · OQC %d), %d rechazadas, aprobación %s%%. Urgentes: %d grupos. Borradores abiertos: %d.",
		s.TodayTotal,
		s.TodayByPhase[string(entity.PhaseIncoming)],
		s.TodayByPhase[string(entity.PhaseInProcess)],
		s.TodayByPhase[string(entity.PhaseOutgoing)],
		s.TodayFailed,
		s.PassRate.StringFixed(1),
		s.UrgentGroups,
		s.OpenDrafts,
	)
	if len(s.TopDefects) > 0 {
		body += fmt.Sprintf(" Defecto principal: %s (%d).", s.TopDefects[0].DefectType, s.TopDefects[0].Count)
	}
	level := LevelInfo
	if s.TodayFailed > 0 {
		level = LevelAlert
	}
	return Notification{
		Level: level,
		Title: "Resumen de calidad " + s.Date,
		Body:  body,
		Data:  map[string]string{"date": s.Date, "kind": "digest"},
	}
}

// passRate aprobadas / (aprobadas + rechazadas) × 100, dos decimales.
func passRate(passed, failed int) decimal.Decimal {
	total := passed + failed
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(passed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func topDefects(counts map[string]int, n int) []dto.DefectCountDTO {
	out := make([]dto.DefectCountDTO, 0, len(counts))
	for k, v := range counts {
		out = append(out, dto.DefectCountDTO{DefectType: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].DefectType < out[j].DefectType
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
