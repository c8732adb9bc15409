package funnel

import (
	"fmt"

	"github.com/abhisek/funnel/internal/content"
)

// CheckCatalog verifies that cat answers every question and gate in the
// screen table, and that each gate's pass option exists.
func CheckCatalog(cat *content.Catalog) error {
	if err := checkCatalog(cat); err != nil {
		return &content.ValidationError{Source: "version " + cat.Version, Err: err}
	}
	return nil
}

func checkCatalog(cat *content.Catalog) error {
	for _, scr := range Screens() {
		if !scr.IsQuestion() {
			continue
		}
		q, ok := cat.Question(scr.QuestionIndex)
		if !ok {
			return fmt.Errorf("step %d: missing question %d", scr.Step, scr.QuestionIndex+1)
		}
		if scr.Kind == KindGate && scr.PassOption >= len(q.Options) {
			return fmt.Errorf("step %d: pass option %d out of range (%d options)", scr.Step, scr.PassOption, len(q.Options))
		}
	}
	if len(cat.ProfileLabels) == 0 {
		return fmt.Errorf("no profile labels")
	}
	return nil
}
