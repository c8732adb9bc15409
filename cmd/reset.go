package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/funnel/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every recorded funnel event",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("reset deletes the whole event log; pass --yes to confirm")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := cfg.ResolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.EventRepo().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset events: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Event log cleared:", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
