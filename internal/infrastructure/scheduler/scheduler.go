// Package scheduler tareas periódicas: resumen diario de calidad y
// recálculo de respaldo de la vista agrupada.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// jobTimeout tope de ejecución de cada tarea.
const jobTimeout = 5 * time.Minute

// Job tarea programada.
type Job func(ctx context.Context) error

// Scheduler envuelve cron con logging zerolog y sin solapamiento de ejecuciones.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New crea el scheduler; las expresiones se evalúan en loc.
func New(loc *time.Location, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log,
	}
}

// Add programa job con una expresión de 5 campos o descriptor (@every 5m, @daily).
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("tarea programada falló")
			return
		}
		s.log.Info().Str("job", name).Dur("took", time.Since(start)).Msg("tarea programada completada")
	})
	if err != nil {
		return fmt.Errorf("programar %s (%q): %w", name, spec, err)
	}
	return nil
}

// Len cantidad de tareas programadas.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// Next próxima ejecución de la primera tarea; cero si no hay.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now())
}

// Start arranca en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop deja de programar y espera a las tareas en curso o a que ctx venza.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
