package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/config"
	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/export"
	"github.com/kilianp07/co2dash/infra/fetch"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/jobs/refresh"
)

var (
	exportOut       string
	exportCountries []string
	exportVariable  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the emissions table to an Excel workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "emissions.xlsx", "output file")
	exportCmd.Flags().StringSliceVar(&exportCountries, "country", nil, "countries to export (default: all)")
	exportCmd.Flags().StringVar(&exportVariable, "variable", string(dataset.VarCO2), "variable for the line chart")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	variable, err := dataset.ParseVariable(exportVariable)
	if err != nil {
		return err
	}

	tbl, err := refresh.LoadInitial(ctx, fetch.New(cfg.Dataset), coremetrics.NopSink{})
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if err := export.WriteFile(exportOut, tbl, exportCountries, variable); err != nil {
		return err
	}
	logger.New("export-command").Infof("wrote %s (%d rows)", exportOut, tbl.Len())
	return nil
}
