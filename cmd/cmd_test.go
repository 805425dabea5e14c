package cmd

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
)

// run executes the root command against a temp database.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{
		"--db", filepath.Join(dir, "test.db"),
		"--config", filepath.Join(dir, "missing.toml"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default, since the command tree
// is shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

var createdID = regexp.MustCompile(`Created (\S+) `)

func TestCommands_PracticeLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "practice", "create",
		"--title", "Bridge to 20",
		"--tier", "within20",
		"--mode", "add",
		"--carry",
		"--questions", "12",
		"--reward", "icecream",
		"--reward", "bike=Bike ride",
		"--distribution", "choice",
		"--target-correct", "10")
	require.NoError(t, err)
	m := createdID.FindStringSubmatch(out)
	require.NotNil(t, m, out)
	id := m[1]

	out, err = run(t, dir, "practice", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Bridge to 20")
	assert.Contains(t, out, "carry")

	out, err = run(t, dir, "practice", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, `title = "Bridge to 20"`)
	assert.Contains(t, out, "Ice cream")
	assert.Contains(t, out, "Bike ride")
	assert.Contains(t, out, "Get 10 right in 6 minutes or less")

	out, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet.")

	_, err = run(t, dir, "practice", "delete", id)
	require.NoError(t, err)
	_, err = run(t, dir, "practice", "show", id)
	assert.Error(t, err)
}

func TestCommands_WorksheetText(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "worksheet", "--text", "--tier", "within20", "--mode", "sub", "--borrow", "--count", "6", "--title", "Borrowing")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Borrowing\n"), out)
	assert.Contains(t, out, "Answer key")
	assert.Equal(t, 6, strings.Count(out, "= ____"))
}

func TestCommands_WorksheetPDF(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "sheet.pdf")
	out, err := run(t, dir, "worksheet", "--out", pdf, "--count", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 10 questions")
	assert.FileExists(t, pdf)
}

func TestCommands_Version(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "mumskids (devel)\n", out)
}

func TestParseReward(t *testing.T) {
	catalog := rewards.DefaultCatalog()

	r := parseReward("park", 0, catalog, "en")
	assert.Equal(t, "park", r.ID)
	assert.Equal(t, "Trip to the park", r.Text)
	assert.NotEmpty(t, r.Emoji)

	r = parseReward("park", 0, catalog, "zh-CN")
	assert.Equal(t, "去公园玩", r.Text)

	r = parseReward(" bike = Bike ride ", 0, catalog, "en")
	assert.Equal(t, "bike", r.ID)
	assert.Equal(t, "Bike ride", r.Text)

	r = parseReward("Extra hug", 2, catalog, "en")
	assert.Equal(t, "reward-3", r.ID)
	assert.Equal(t, "Extra hug", r.Text)
}
