package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/funnel/internal/content"
	"github.com/abhisek/funnel/internal/funnel"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect the question catalog",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.ContentPath = args[0]
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			var verr *content.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("invalid catalog: %w", verr)
			}
			return err
		}
		source := cfg.ContentPath
		if source == "" {
			source = "embedded catalog"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (version %s, %d questions)\n", source, cat.Version, len(cat.Questions))
		return nil
	},
}

var contentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the funnel steps with their questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(cat))
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentShowCmd)
}

func renderCatalog(cat *content.Catalog) string {
	t := newTable("STEP", "KIND", "TITLE / QUESTION", "OPTIONS")
	for _, scr := range funnel.Screens() {
		text := cat.Copy(scr.Step).Title
		options := ""
		if scr.IsQuestion() {
			if q, ok := cat.Question(scr.QuestionIndex); ok {
				text = q.Text
				options = strings.Join(q.Options, " | ")
			}
		}
		t.Row(strconv.Itoa(scr.Step), scr.Kind.String(), text, options)
	}
	return fmt.Sprintf("catalog %s, classification %s\n%s", cat.Version, cat.Classification, t.Render())
}
