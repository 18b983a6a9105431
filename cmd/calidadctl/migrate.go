package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Calidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Calidad-api/pkg/config"
)

func newMigrateCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema PostgreSQL",
		Long: `Aplica el esquema embebido (usuarios, órdenes, producción, proveedores,
piezas, operarios y dispositivos). Las inspecciones viven en MongoDB.

Se puede ejecutar varias veces: todas las sentencias son IF NOT EXISTS.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), postgres.Schema())
				return err
			}
			return runMigrate(cmd, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "solo imprime el SQL sin conectarse")
	return cmd
}

func runMigrate(cmd *cobra.Command, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintln(out, "esquema aplicado")
	return nil
}
