package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/paclplot/internal/config"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

const fssInput = `[
  {"num_keys": 2, "num_subkeys": 10,
   "equality_baseline_processing_us": [20, 21, 19], "equality_dpf_pacl_processing_us": [40, 41, 39],
   "range_baseline_processing_us": [30, 31, 29], "range_dpf_pacl_processing_us": [60, 61, 59]},
  {"num_keys": 1, "num_subkeys": 10,
   "equality_baseline_processing_us": [10, 11, 9], "equality_dpf_pacl_processing_us": [20, 21, 19],
   "range_baseline_processing_us": [15, 16, 14], "range_dpf_pacl_processing_us": [30, 31, 29]}
]`

// run executes the CLI in a fresh working directory and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results_fss.json")
	require.NoError(t, os.WriteFile(path, []byte(fssInput), 0644))
	return path
}

func TestFiguresCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "figures")
	require.NoError(t, err)
	for _, name := range []string{"anon", "fss", "vfss", "pir", "plot_pir_server_processing.pdf"} {
		assert.Contains(t, out, name)
	}
}

func TestSummarizeCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "summarize", "fss", writeInput(t))
	require.NoError(t, err)
	assert.Contains(t, out, "FSS (baseline)")
	assert.Contains(t, out, "w/ PACL (l = 10)")
	assert.Contains(t, out, "DMPF-PACL")
}

func TestFigureCommandWritesChart(t *testing.T) {
	t.Chdir(t.TempDir())
	outDir := filepath.Join(t.TempDir(), "figures")

	out, err := run(t, "fss", "--output-dir", outDir, "--log-level", "error", "--file", writeInput(t))
	require.NoError(t, err)

	path := filepath.Join(outDir, "plot_fss.pdf")
	assert.Equal(t, path, strings.TrimSpace(out))
	assert.FileExists(t, path)
}

func TestRenderUnknownFigure(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "render", "nope", writeInput(t))
	assert.True(t, errors.Is(err, sentinel.ErrUnknownFigure))
}

func TestBadLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "figures", "--log-level", "loud")
	assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig))
}

func TestConfigInit(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join("conf", "paclplot.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = run(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--force", path)
	assert.NoError(t, err)

	out, err = run(t, "--config", path, "figures")
	require.NoError(t, err)
	assert.Contains(t, out, "vfss")
}

func TestInputPath(t *testing.T) {
	got, err := inputPath([]string{"a.json"}, "")
	require.NoError(t, err)
	assert.Equal(t, "a.json", got)

	got, err = inputPath(nil, "b.json")
	require.NoError(t, err)
	assert.Equal(t, "b.json", got)

	_, err = inputPath([]string{"a.json"}, "b.json")
	assert.Error(t, err)

	_, err = inputPath(nil, "")
	assert.Error(t, err)
}
