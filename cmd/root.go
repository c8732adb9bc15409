package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/funnel/internal/config"
	"github.com/abhisek/funnel/internal/content"
	"github.com/abhisek/funnel/internal/funnel"
)

var rootCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Black box quiz funnel",
	Long:  "funnel runs the Black Box quiz funnel in the terminal: nine missions, a psychological profile and an offer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FUNNEL_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to a content catalog (overrides FUNNEL_CONTENT env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies the persistent flags,
// which take priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		cfg.ContentPath = p
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog, or the embedded one, after
// checking it against the screen table.
func loadCatalog(cfg config.Config) (*content.Catalog, error) {
	var (
		cat *content.Catalog
		err error
	)
	if cfg.ContentPath == "" {
		cat, err = content.Default()
	} else {
		cat, err = content.Load(cfg.ContentPath)
	}
	if err == nil {
		err = funnel.CheckCatalog(cat)
	}
	if err != nil {
		if cfg.ContentPath != "" {
			return nil, fmt.Errorf("load content %s: %w", cfg.ContentPath, err)
		}
		return nil, err
	}
	return cat, nil
}
