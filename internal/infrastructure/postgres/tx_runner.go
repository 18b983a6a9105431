package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

// MasterDataRepos repositorios de datos maestros atados a una misma transacción.
type MasterDataRepos struct {
	Suppliers repository.SupplierRepository
	Parts     repository.PartRepository
	Workers   repository.WorkerRepository
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunMasterData inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La carga inicial de datos maestros es todo o nada.
func (r *TxRunner) RunMasterData(ctx context.Context, fn func(repos MasterDataRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := MasterDataRepos{
		Suppliers: NewSupplierRepository(tx),
		Parts:     NewPartRepository(tx),
		Workers:   NewWorkerRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
