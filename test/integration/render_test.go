// Package integration contains end-to-end tests for tblradar.
//
// These tests build the tblradar binary and exercise it against snapshot
// fixtures, verifying HTML output, exit codes, and the assign-fields
// warning path.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoRoot returns the tblradar repository root directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// test/integration/render_test.go -> repo root
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// buildBinary compiles tblradar into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "tblradar-test")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/tblradar") //nolint:gosec // test helper
	cmd.Dir = repoRoot(t)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", out)
	return binary
}

const assignedSnapshot = `{
  "visualSpecification": {
    "marksSpecifications": [
      {
        "encodings": [
          {"id": "category", "field": {"name": "Region"}},
          {"id": "values", "field": [{"name": "Sales"}, {"name": "Profit"}]}
        ]
      }
    ],
    "activeMarksSpecificationIndex": 0
  },
  "pages": [
    {
      "columns": [
        {"name": "Region", "index": 0},
        {"name": "Sales", "index": 1},
        {"name": "Profit", "index": 2}
      ],
      "data": [
        [
          {"value": "East", "formattedValue": "East"},
          {"value": 10, "formattedValue": "10"},
          {"value": 3, "formattedValue": "3"}
        ],
        [
          {"value": "West", "formattedValue": "West"},
          {"value": 7, "formattedValue": "7"},
          {"value": 5, "formattedValue": "5"}
        ]
      ]
    }
  ]
}`

const unassignedSnapshot = `{
  "visualSpecification": {
    "marksSpecifications": [{"encodings": []}],
    "activeMarksSpecificationIndex": 0
  },
  "pages": []
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worksheet.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRender_EndToEnd(t *testing.T) {
	binary := buildBinary(t)
	snap := writeSnapshot(t, assignedSnapshot)
	out := filepath.Join(t.TempDir(), "chart.html")

	cmd := exec.Command(binary, "render", snap, "-o", out, "--title", "Regional Mix", "--quiet") //nolint:gosec // test helper
	combined, err := cmd.CombinedOutput()
	require.NoError(t, err, "tblradar render failed:\n%s", combined)

	html, err := os.ReadFile(out) //nolint:gosec // test output
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "Regional Mix")
	assert.Contains(t, page, "radar")
	for _, category := range []string{"East", "West"} {
		assert.Contains(t, page, category, "series %s missing from chart", category)
	}
	for _, label := range []string{"Sales", "Profit"} {
		assert.Contains(t, page, label, "indicator %s missing from chart", label)
	}
}

func TestRender_StdoutWhenNoOutputFlag(t *testing.T) {
	binary := buildBinary(t)
	snap := writeSnapshot(t, assignedSnapshot)

	cmd := exec.Command(binary, "render", snap, "--quiet") //nolint:gosec // test helper
	stdout, err := cmd.Output()
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "radar")
}

func TestRender_UnassignedFieldsExitCode(t *testing.T) {
	binary := buildBinary(t)
	snap := writeSnapshot(t, unassignedSnapshot)

	cmd := exec.Command(binary, "render", snap, "--no-color") //nolint:gosec // test helper
	combined, err := cmd.CombinedOutput()
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.ExitCode(), "output:\n%s", combined)
	assert.Contains(t, string(combined), "Assign a category field")
}

func TestRender_BadFormatExitCode(t *testing.T) {
	binary := buildBinary(t)

	cmd := exec.Command(binary, "render", "worksheet.csv") //nolint:gosec // test helper
	_, err := cmd.CombinedOutput()
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestRender_Idempotent(t *testing.T) {
	binary := buildBinary(t)
	snap := writeSnapshot(t, assignedSnapshot)

	render := func() string {
		cmd := exec.Command(binary, "render", snap, "--quiet") //nolint:gosec // test helper
		stdout, err := cmd.Output()
		require.NoError(t, err)
		return string(stdout)
	}

	first := render()
	second := render()

	// echarts pages embed a generated element ID; strip it before comparing.
	assert.Equal(t, stripChartIDs(first), stripChartIDs(second))
}

// stripChartIDs removes the random chart element IDs go-echarts generates so
// two renders of the same data compare equal.
func stripChartIDs(page string) string {
	var out []string
	for _, line := range strings.Split(page, "\n") {
		if strings.Contains(line, "goecharts_") || strings.Contains(line, `id="`) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
