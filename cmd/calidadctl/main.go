// Command calidadctl tareas de administración: esquema, datos maestros,
// importación de históricos y consulta de la vista agrupada.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	infmongo "github.com/jhoicas/Calidad-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Calidad-api/pkg/config"
	"github.com/jhoicas/Calidad-api/pkg/logger"
)

// Version se fija con ldflags al compilar.
var Version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calidadctl",
		Short:         "Administración de Calidad API",
		Long:          "Herramientas de línea de comandos para el esquema PostgreSQL, datos maestros e inspecciones.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newGroupsCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calidadctl %s\n", Version)
		},
	}
}

// newLogger logs a stderr para no mezclarlos con la salida del comando.
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
}

// openMongo conecta al almacén de inspecciones; close libera el cliente.
func openMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, func(), error) {
	client, db, err := infmongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = client.Disconnect(context.Background()) }, nil
}

func execute(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
