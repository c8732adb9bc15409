package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/funnel/internal/app"
	"github.com/abhisek/funnel/internal/checkout"
	"github.com/abhisek/funnel/internal/config"
	"github.com/abhisek/funnel/internal/cue"
	"github.com/abhisek/funnel/internal/funnel"
	"github.com/abhisek/funnel/internal/logging"
	"github.com/abhisek/funnel/internal/screen"
	fscreen "github.com/abhisek/funnel/internal/screens/funnel"
	"github.com/abhisek/funnel/internal/screens/handoff"
	"github.com/abhisek/funnel/internal/screens/intro"
	"github.com/abhisek/funnel/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the funnel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay wires config, logging, the event log and media cues around a
// new session, then hands the terminal to the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath, err := cfg.ResolveLogPath()
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	logger, err := logging.New(logging.Options{Path: logPath, Verbose: cfg.Verbose})
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := loadCatalog(cfg)
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

	sess, err := funnel.NewSession(funnel.Options{
		Catalog: cat,
		Rules: funnel.Rules{
			CheckoutURL:     cfg.CheckoutURL,
			LegacyRejection: cfg.LegacyRejection,
		},
		Events: st.EventRepo(),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	cues := newCueDispatcher(cfg, dbPath, logger)
	defer cues.Close()
	sess.AddObserver(cues)

	sess.Start(ctx, time.Now())
	defer func() {
		// The program context may already be canceled on interrupt.
		sess.End(context.WithoutCancel(ctx), time.Now())
	}()

	scr := fscreen.New(fscreen.Options{
		Ctx:     ctx,
		Session: sess,
		Sounds:  cues,
		Opener:  checkout.NewBrowserOpener(),
		Handoff: handoff.New,
		Logger:  logger,
	})
	return app.Run(ctx, intro.New(func() screen.Screen { return scr }))
}

// newCueDispatcher picks players from config. Media is optional: a
// missing player command only costs the soundtrack.
func newCueDispatcher(cfg config.Config, dbPath string, logger *zap.Logger) *cue.Dispatcher {
	opts := cue.DispatcherOptions{Logger: logger}
	if cfg.Mute {
		return cue.NewDispatcher(opts)
	}

	opts.Synth = cue.BellPlayer{W: os.Stderr}
	if cfg.Player != "" {
		player, err := cue.NewCommandPlayer(cfg.Player, cfg.ResolveMediaDir(dbPath))
		if err != nil {
			logger.Warn("media player unavailable", zap.String("player", cfg.Player), zap.Error(err))
		} else {
			opts.Tracks = player
		}
	}
	return cue.NewDispatcher(opts)
}
