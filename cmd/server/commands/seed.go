package commands

import (
	"fmt"

	"github.com/corpsite/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample content into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		report, err := seed.Run(rt.db, rt.logger)
		if err != nil {
			return err
		}
		if len(report) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to seed, all tables already have data")
			return nil
		}
		for module, created := range report {
			fmt.Fprintf(cmd.OutOrStdout(), "%-13s %d\n", module, created)
		}
		return nil
	},
}
