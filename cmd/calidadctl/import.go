package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/events"
	infmongo "github.com/jhoicas/Calidad-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Calidad-api/pkg/config"
)

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE.json",
		Short: "Importa inspecciones históricas exportadas",
		Long: `Importa un arreglo JSON de documentos de inspección exportados del sistema anterior
(campos en camelCase, fechas en texto ISO-8601). Cada documento con createdAt
vacío o mal formado se rechaza y se informa; el resto se importa conservando
id y createdAt. Con NATS_URL configurado las réplicas de la API recalculan su
vista al terminar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readLegacy(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				res := checkLegacy(docs)
				printImportResult(cmd.OutOrStdout(), res)
				return nil
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), docs)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "valida los documentos sin escribir")
	return cmd
}

func readLegacy(path string) ([]dto.LegacyInspection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	defer f.Close()
	var docs []dto.LegacyInspection
	if err := json.NewDecoder(f).Decode(&docs); err != nil {
		return nil, fmt.Errorf("import: json inválido: %w", err)
	}
	return docs, nil
}

// checkLegacy convierte y valida sin tocar el almacén.
func checkLegacy(docs []dto.LegacyInspection) *quality.ImportResult {
	res := &quality.ImportResult{}
	for i := range docs {
		rec, err := docs[i].ToRecord()
		if err == nil {
			err = rec.Validate()
		}
		if err != nil {
			res.Rejected = append(res.Rejected, fmt.Sprintf("%d: %v", i, err))
			continue
		}
		res.Imported++
	}
	return res
}

func runImport(ctx context.Context, out io.Writer, docs []dto.LegacyInspection) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db, closeDB, err := openMongo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	var publisher quality.ChangePublisher
	if cfg.Events.NATSURL != "" {
		bus, err := events.NewNATSBus(cfg.Events.NATSURL, cfg.Events.Subject, log.Component("events"))
		if err != nil {
			return err
		}
		defer bus.Close()
		publisher = bus
	}

	uc := quality.NewInspectionUseCase(infmongo.NewInspectionRepository(db), nil, nil, publisher, nil, log.Component("import"))
	res, err := uc.ImportLegacy(ctx, docs)
	if res != nil {
		printImportResult(out, res)
	}
	return err
}

func printImportResult(out io.Writer, res *quality.ImportResult) {
	fmt.Fprintf(out, "importados: %d, rechazados: %d\n", res.Imported, len(res.Rejected))
	for _, r := range res.Rejected {
		fmt.Fprintln(out, "  rechazado", r)
	}
}
