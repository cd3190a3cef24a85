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
	"github.com/kilianp07/co2dash/infra/fetch"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/jobs/refresh"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a fresh download of the dataset into the local cache",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fetcher := fetch.New(cfg.Dataset)
	job := refresh.NewJob(fetcher, dataset.NewStore(nil), nil, coremetrics.NopSink{}, 0)
	rows, err := job.Reload(ctx)
	if err != nil {
		return err
	}
	logger.New("refresh-command").Infof("dataset refreshed into %s (%d rows)", cfg.Dataset.CachePath, rows)
	return nil
}
