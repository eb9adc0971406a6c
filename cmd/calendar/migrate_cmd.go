package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/spec-kit/campaign-calendar/internal/persistence"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			pool := rt.pg.PoolHandle()
			if pool == nil {
				return errors.New("POSTGRES_DSN is required for migrate")
			}
			// openRuntime already applied them.
			if rt.cfg.Postgres.RunMigrations {
				return nil
			}
			return persistence.RunMigrations(cmd.Context(), pool, rt.logger)
		},
	}
}
