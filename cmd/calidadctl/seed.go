package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Calidad-api/pkg/config"
)

// SeedFile datos maestros en YAML. Las piezas referencian al proveedor por nombre.
type SeedFile struct {
	Suppliers []dto.SupplierRequest `yaml:"suppliers"`
	Parts     []SeedPart            `yaml:"parts"`
	Workers   []dto.WorkerRequest   `yaml:"workers"`
}

// SeedPart pieza con el nombre del proveedor en lugar de su ID.
type SeedPart struct {
	dto.PartRequest `yaml:",inline"`
	Supplier        string `yaml:"supplier"`
}

// seedStats cantidades creadas y omitidas (ya existentes).
type seedStats struct {
	Created, Skipped int
}

func newSeedCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed FILE.yaml",
		Short: "Carga proveedores, piezas y operarios desde YAML",
		Long: `Carga datos maestros en una sola transacción: si algo falla no queda nada a medias.
Los registros que ya existen (mismo nombre de proveedor, código de pieza o
nombre de operario) se omiten, así que el archivo se puede volver a aplicar.

Ejemplo:
  suppliers:
    - name: Hanil Precision
      contact: Kim
  parts:
    - code: BRK-100
      name: Bracket
      supplier: Hanil Precision
  workers:
    - name: Lee Jiwoo
      work_line: L1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			file, err := parseSeed(data)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d proveedores, %d piezas, %d operarios\n",
					len(file.Suppliers), len(file.Parts), len(file.Workers))
				return nil
			}
			return runSeed(cmd.Context(), cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "valida el archivo sin escribir")
	return cmd
}

// parseSeed decodifica y valida los campos obligatorios.
func parseSeed(data []byte) (*SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: yaml inválido: %w", err)
	}
	suppliers := map[string]bool{}
	for i, s := range f.Suppliers {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("seed: suppliers[%d]: name requerido", i)
		}
		suppliers[strings.TrimSpace(s.Name)] = true
	}
	for i, p := range f.Parts {
		if strings.TrimSpace(p.Code) == "" || strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("seed: parts[%d]: code y name requeridos", i)
		}
	}
	for i, w := range f.Workers {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("seed: workers[%d]: name requerido", i)
		}
	}
	return &f, nil
}

func runSeed(ctx context.Context, out io.Writer, file *SeedFile) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer pool.Close()

	var stats seedStats
	err = postgres.NewTxRunner(pool).RunMasterData(ctx, func(repos postgres.MasterDataRepos) error {
		var err error
		stats, err = seedMasterData(ctx, repos, file)
		return err
	})
	if err != nil {
		return err
	}
	log.Info().Int("created", stats.Created).Int("skipped", stats.Skipped).Msg("datos maestros cargados")
	fmt.Fprintf(out, "creados: %d, omitidos: %d\n", stats.Created, stats.Skipped)
	return nil
}

// seedMasterData crea lo que falte usando los mismos casos de uso que la API.
func seedMasterData(ctx context.Context, repos postgres.MasterDataRepos, file *SeedFile) (seedStats, error) {
	uc := usecase.NewMasterDataUseCase(repos.Suppliers, repos.Parts, repos.Workers)
	var st seedStats

	supplierIDs := map[string]string{}
	for _, s := range file.Suppliers {
		name := strings.TrimSpace(s.Name)
		created, err := uc.CreateSupplier(ctx, s)
		switch {
		case err == nil:
			supplierIDs[name] = created.ID
			st.Created++
		case errors.Is(err, domain.ErrDuplicate):
			existing, err := repos.Suppliers.GetByName(ctx, name)
			if err != nil {
				return st, err
			}
			if existing != nil {
				supplierIDs[name] = existing.ID
			}
			st.Skipped++
		default:
			return st, fmt.Errorf("proveedor %q: %w", name, err)
		}
	}

	for _, p := range file.Parts {
		req := p.PartRequest
		if sup := strings.TrimSpace(p.Supplier); sup != "" {
			id, ok := supplierIDs[sup]
			if !ok {
				existing, err := repos.Suppliers.GetByName(ctx, sup)
				if err != nil {
					return st, err
				}
				if existing == nil {
					return st, fmt.Errorf("pieza %q: %w: proveedor %q inexistente", p.Code, domain.ErrInvalidInput, sup)
				}
				id = existing.ID
			}
			req.SupplierID = id
		}
		if _, err := uc.CreatePart(ctx, req); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				st.Skipped++
				continue
			}
			return st, fmt.Errorf("pieza %q: %w", p.Code, err)
		}
		st.Created++
	}

	existing, err := repos.Workers.List(ctx, "", false)
	if err != nil {
		return st, err
	}
	known := map[string]bool{}
	for _, w := range existing {
		known[w.Name] = true
	}
	for _, w := range file.Workers {
		name := strings.TrimSpace(w.Name)
		if known[name] {
			st.Skipped++
			continue
		}
		if _, err := uc.CreateWorker(ctx, w); err != nil {
			return st, fmt.Errorf("operario %q: %w", name, err)
		}
		known[name] = true
		st.Created++
	}
	return st, nil
}
