package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/funnel/internal/store"
	"github.com/abhisek/funnel/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show funnel conversion statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		repo := st.EventRepo()
		if id, _ := cmd.Flags().GetString("session"); id != "" {
			events, err := repo.SessionEvents(cmd.Context(), id, store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("query session: %w", err)
			}
			if len(events) == 0 {
				return fmt.Errorf("no events for session %s", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSession(events))
			return nil
		}

		stats, err := repo.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("compute stats: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("session", "", "Show the event log of one session")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func renderStats(s *store.FunnelStats) string {
	summary := newTable("METRIC", "COUNT").Rows(
		[]string{"Sessions", strconv.Itoa(s.Sessions)},
		[]string{"Answers", strconv.Itoa(s.Answers)},
		[]string{"Gate passed", strconv.Itoa(s.GatePassed)},
		[]string{"Gate failed", strconv.Itoa(s.GateFailed)},
		[]string{"Completed", strconv.Itoa(s.Completed)},
		[]string{"Bonus accepted", strconv.Itoa(s.BonusAccepted)},
		[]string{"Bonus declined", strconv.Itoa(s.BonusDeclined)},
		[]string{"Offer declined", strconv.Itoa(s.Declined)},
		[]string{"Redirects", strconv.Itoa(s.Redirects)},
		[]string{"Second chances", strconv.Itoa(s.SecondChances)},
	)

	steps := make([]int, 0, len(s.Reached))
	for step := range s.Reached {
		steps = append(steps, step)
	}
	slices.Sort(steps)

	reached := newTable("STEP", "SESSIONS", "RATE")
	for _, step := range steps {
		n := s.Reached[step]
		reached.Row(strconv.Itoa(step), strconv.Itoa(n), percent(n, s.Sessions))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, summary.Render(), "  ", reached.Render())
}

func renderSession(events []store.FunnelEvent) string {
	t := newTable("SEQ", "TIME", "KIND", "STEP", "TO", "XP", "DETAIL")
	for _, e := range events {
		t.Row(
			strconv.FormatInt(e.Sequence, 10),
			e.At.Local().Format("15:04:05.000"),
			e.Kind,
			strconv.Itoa(e.Step),
			strconv.Itoa(e.ToStep),
			strconv.Itoa(e.XP),
			e.Detail,
		)
	}
	return t.Render()
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
