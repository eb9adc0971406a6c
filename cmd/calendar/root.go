package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/config"
	"github.com/spec-kit/campaign-calendar/internal/observability"
	"github.com/spec-kit/campaign-calendar/internal/persistence"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calendar",
		Short:         "Campaign calendar service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}

// Execute runs the root command; serve is the default.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// runtime holds what every subcommand opens before doing its work.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
	redis  *persistence.Redis
	stores persistence.Stores
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			_ = logger.Sync()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)

	return &runtime{
		cfg:    cfg,
		logger: logger,
		pg:     pg,
		redis:  rdb,
		stores: persistence.OpenStores(pg, rdb),
	}, nil
}

func (r *runtime) Close() {
	r.redis.Close()
	r.pg.Close()
	_ = r.logger.Sync()
}
