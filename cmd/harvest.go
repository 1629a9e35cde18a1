package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/adapters"
	"github.com/adpillai/hcp-harvester/internal/api"
	"github.com/adpillai/hcp-harvester/internal/batch"
	"github.com/adpillai/hcp-harvester/internal/config"
	"github.com/adpillai/hcp-harvester/internal/dedup"
	"github.com/adpillai/hcp-harvester/internal/driver"
	"github.com/adpillai/hcp-harvester/internal/fetch"
	"github.com/adpillai/hcp-harvester/internal/logging"
	"github.com/adpillai/hcp-harvester/internal/metrics"
	"github.com/adpillai/hcp-harvester/internal/registry"
	"github.com/adpillai/hcp-harvester/internal/scheduler"
	mongostore "github.com/adpillai/hcp-harvester/internal/store/mongo"
)

// newHarvestCmd creates the 'harvest' subcommand, which runs one full pass
// over the candidate collection.
func newHarvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Runs a full harvest over the candidate URL collection",
		Long: `Pages through the candidate collection, skips URLs already present in
the master or target store, fetches and extracts the rest, and persists the
records. Safe to interrupt and re-run.`,

		RunE: runHarvestCommand,
	}
	return cmd
}

func runHarvestCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	metrics.Init()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	harvestID := uuid.NewString()
	logger.Info("starting harvest", zap.String("harvest_id", harvestID))

	client, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.MongoConnectTimeout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(context.Background()); cerr != nil {
			logger.Warn("mongodb disconnect failed", zap.Error(cerr))
		}
	}()

	source := client.CandidateSource(cfg.Mongo.CandidateDB, cfg.Mongo.CandidateCollection)
	master := client.RecordStore(cfg.Mongo.MasterDB, cfg.Mongo.MasterCollection)
	target := client.RecordStore(cfg.Mongo.TargetDB, cfg.Mongo.TargetCollection)

	reg, err := registry.New(adapters.Table()...)
	if err != nil {
		return fmt.Errorf("build adapter registry: %w", err)
	}

	static := fetch.NewStaticFetcher(cfg.Harvester.UserAgent, cfg.StaticTimeout())
	browser := fetch.NewBrowserFetcher(
		fetch.NewChromedpFactory(cfg.Harvester.UserAgent),
		cfg.BrowserSettings(),
		logger.Named("browser"),
	)

	sched := scheduler.New(reg, static, browser, cfg.Harvester.Concurrency, harvestID, logger.Named("scheduler"))
	writer := batch.NewWriter(master, target, cfg.Harvester.FlushThreshold, logger.Named("batch"))
	filter := dedup.New(master, target, logger.Named("dedup"))
	run := driver.New(source, filter, sched, writer, cfg.Harvester.PageSize, logger.Named("driver"))

	if cfg.Server.Enabled {
		srv := api.NewServer(cfg.Server.Port, func() map[string]any {
			return map[string]any{"harvest_id": harvestID}
		}, logger.Named("ops"))
		go func() {
			if serr := srv.Start(); serr != nil {
				logger.Error("ops server stopped", zap.Error(serr))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := srv.Shutdown(shutdownCtx); serr != nil {
				logger.Warn("ops server shutdown failed", zap.Error(serr))
			}
		}()
	}

	sum, err := run.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("harvest %s: %w", harvestID, err)
	}

	logger.Info("harvest summary",
		zap.String("harvest_id", harvestID),
		zap.Int64("candidates", sum.Candidates),
		zap.Int64("fresh", sum.Fresh),
		zap.Int64("succeeded", sum.Succeeded),
		zap.Int64("failed", sum.Failed),
		zap.Int64("skipped", sum.Skipped))
	return nil
}
