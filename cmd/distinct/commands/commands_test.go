package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/distinct/cmd/distinct/commands"
)

// newTestRoot mirrors the root command wiring in main, so subcommands see
// the persistent flags they rely on.
func newTestRoot(sub *cobra.Command) *cobra.Command {
	root := &cobra.Command{Use: "distinct", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolP("quiet", "q", false, "suppress output")
	root.AddCommand(sub)

	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestSimulateCommand_DefaultRun(t *testing.T) {
	root := newTestRoot(commands.NewSimulateCommand())

	out, err := execute(t, root, "simulate", "--quiet")
	require.NoError(t, err)

	assert.Contains(t, out, "Expected distinct")
	assert.Contains(t, out, "Estimated distinct")
	assert.Contains(t, out, "within bound")
}

func TestSimulateCommand_FlagOverrides(t *testing.T) {
	root := newTestRoot(commands.NewSimulateCommand())

	out, err := execute(t, root, "simulate", "--quiet",
		"--precision", "12", "--hash", "xxhash", "--iterations", "500", "--domain", "1000")
	require.NoError(t, err)

	assert.Contains(t, out, "Relative error")
}

func TestSimulateCommand_RejectsBadPrecision(t *testing.T) {
	root := newTestRoot(commands.NewSimulateCommand())

	_, err := execute(t, root, "simulate", "--quiet", "--precision", "17")
	require.Error(t, err)
}

func TestSweepCommand_WritesChart(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sweep.html")
	root := newTestRoot(commands.NewSweepCommand())

	_, err := execute(t, root, "sweep", "--quiet", "--points", "100,1000", "--out", out)
	require.NoError(t, err)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), "relative error")
}

func TestConfigCommand_PrintsYAML(t *testing.T) {
	root := newTestRoot(commands.NewConfigCommand())

	out, err := execute(t, root, "config")
	require.NoError(t, err)

	assert.Contains(t, out, "simulation:")
	assert.Contains(t, out, "precision: 10")
	assert.Contains(t, out, "logging:")
}
