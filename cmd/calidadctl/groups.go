package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	infmongo "github.com/jhoicas/Calidad-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Calidad-api/pkg/config"
)

func newGroupsCmd() *cobra.Command {
	var (
		filter  dto.GroupFilterRequest
		asJSON  bool
		maxRows int
	)

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Muestra la vista agrupada por número de orden",
		Long:  "Lee todas las inspecciones, las agrupa por número de orden y las lista de la más reciente a la más antigua.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, closeDB, err := openMongo(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			loc := cfg.App.Location()
			preds, err := quality.BuildPredicates(filter, time.Now(), loc)
			if err != nil {
				return err
			}
			view := quality.NewGroupedView(infmongo.NewInspectionRepository(db), zerolog.Nop())
			if err := view.Refresh(ctx); err != nil {
				return err
			}
			groups := view.Filter(preds...)
			if maxRows > 0 && len(groups) > maxRows {
				groups = groups[:maxRows]
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}
			return printGroups(cmd.OutOrStdout(), groups, loc)
		},
	}

	cmd.Flags().StringVar(&filter.From, "from", "", "desde (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.To, "to", "", "hasta (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&filter.Today, "today", false, "solo grupos con inspecciones de hoy")
	cmd.Flags().BoolVar(&filter.Urgent, "urgent", false, "solo grupos urgentes")
	cmd.Flags().BoolVar(&filter.Failed, "failed", false, "solo grupos con rechazos")
	cmd.Flags().StringVarP(&filter.Q, "search", "q", "", "búsqueda libre")
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	cmd.Flags().IntVarP(&maxRows, "limit", "n", 0, "máximo de grupos (0 = todos)")
	return cmd
}

func printGroups(out io.Writer, groups []entity.GroupedInspection, loc *time.Location) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDEN\tÚLTIMA FECHA\tPRODUCTO\tIQC\tPQC\tOQC\tNG\tURGENTE")
	for i := range groups {
		g := &groups[i]
		failed, urgent := 0, false
		for _, list := range [][]entity.InspectionRecord{g.Incoming, g.InProcess, g.Outgoing} {
			for _, r := range list {
				if r.Result == entity.ResultFail {
					failed++
				}
				urgent = urgent || r.Urgent
			}
		}
		mark := ""
		if urgent {
			mark = "!"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			g.OrderNumber,
			g.LatestDate.In(loc).Format("2006-01-02 15:04"),
			g.Common.ProductName,
			len(g.Incoming), len(g.InProcess), len(g.Outgoing),
			failed, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d grupos\n", len(groups))
	return nil
}
