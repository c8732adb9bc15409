package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/funnel/internal/config"
	"github.com/abhisek/funnel/internal/content"
	"github.com/abhisek/funnel/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "funnel")
}

func TestContentValidateEmbedded(t *testing.T) {
	t.Setenv("FUNNEL_CONTENT", "")
	out, err := execute(t, "content", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded catalog: ok")
}

func TestContentValidateBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: nope\n"), 0o644))

	_, err := execute(t, "content", "validate", path)
	require.Error(t, err)
}

// writeTwoOptionGate writes the shipped catalog with the gate question cut
// to two options and returns its path.
func writeTwoOptionGate(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile("../internal/content/catalog.yaml")
	require.NoError(t, err)
	doc := strings.Replace(string(raw),
		`options: ["I'm weak", "Not sure", "I deserve it", "I'M A PLAYER"]`,
		`options: ["I'm weak", "Not sure"]`, 1)
	doc = strings.Replace(doc,
		`responses: ["At least you're honest.", "Undecided.", "Confident.", "APPROVED."]`,
		`responses: ["At least you're honest.", "Undecided."]`, 1)
	require.NotEqual(t, string(raw), doc)

	path := filepath.Join(t.TempDir(), "gate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestContentValidateGateWithoutPassOption(t *testing.T) {
	_, err := execute(t, "content", "validate", writeTwoOptionGate(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass option 3 out of range")
}

func TestLoadCatalogRejectsUnplayableGate(t *testing.T) {
	_, err := loadCatalog(config.Config{ContentPath: writeTwoOptionGate(t)})
	var verr *content.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)

	cat, err := loadCatalog(config.Config{})
	require.NoError(t, err)
	assert.Len(t, cat.Questions, 9)
}

func TestRenderCatalog(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)
	out := renderCatalog(cat)
	assert.Contains(t, out, "How old are you?")
	assert.Contains(t, out, "gate")
}

func TestRenderStats(t *testing.T) {
	out := renderStats(&store.FunnelStats{
		Sessions:  4,
		Reached:   map[int]int{0: 4, 16: 1},
		Redirects: 1,
	})
	assert.Contains(t, out, "Sessions")
	assert.Contains(t, out, "25.0%")
}

func TestStatsSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "funnel.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	err = st.EventRepo().AppendFunnelEvent(context.Background(), store.FunnelEventData{
		SessionID: "s1",
		Kind:      store.KindEnter,
		ToStep:    1,
		Option:    -1,
		At:        time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "stats", "--db", db, "--session", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, store.KindEnter)

	_, err = execute(t, "stats", "--db", db, "--session", "missing")
	assert.ErrorContains(t, err, "no events")
}

func TestResetNeedsConfirmation(t *testing.T) {
	_, err := execute(t, "reset")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "--yes"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "-", percent(1, 0))
	assert.Equal(t, "50.0%", percent(1, 2))
}
