package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/campaign-calendar/internal/persistence"
)

func newSeedCmd() *cobra.Command {
	var designer string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate empty stores with sample users, departments and campaigns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if designer == "" {
				designer = rt.cfg.Access.DesignerAddress
			}
			result, err := persistence.Seed(cmd.Context(), rt.stores, designer, time.Now(), rt.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users=%d departments=%d events=%d access_map=%t\n",
				result.Users, result.Departments, result.Events, result.AccessMap)
			return nil
		},
	}
	cmd.Flags().StringVar(&designer, "designer", "", "designer address for a fresh access map (defaults to ACCESS_DESIGNER_ADDRESS)")
	return cmd
}
