package cli_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lazyview/internal/cli"
)

func TestReport_JSON(t *testing.T) {
	setupCLITest(t)

	output, err := execute(t, "report",
		"--blocks", "10", "--block-height", "5", "--scroll", "12", "--height", "10", "-o", "json")
	require.NoError(t, err)

	var report cli.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	assert.Equal(t, []string{"block-0002", "block-0003", "block-0004"}, report.Visible)
	assert.Equal(t, 12, report.ScrollY)
	assert.Equal(t, 10, report.Tracked)
	assert.Equal(t, 5, report.Loaded, "blocks shown before the scroll stay loaded")
	assert.Equal(t, 5, report.Renders)
	assert.Equal(t, 2, report.Sweeps)
	assert.Equal(t, "plain", report.Policy)
	assert.Equal(t, 50, report.ContentRows)
}

func TestReport_Text(t *testing.T) {
	setupCLITest(t)

	output, err := execute(t, "report", "--blocks", "2000", "--block-height", "1", "--height", "3")
	require.NoError(t, err)

	assert.Contains(t, output, "Viewport:  80x3 at row 0 of 2,000")
	assert.Contains(t, output, "Blocks:    2,000 (2,000 tracked)")
	assert.Contains(t, output, "Visible:   4")
	assert.Contains(t, output, "  block-0003\n")
}

func TestReport_OnceDropsTracking(t *testing.T) {
	setupCLITest(t)

	output, err := execute(t, "report",
		"--blocks", "10", "--block-height", "5", "--height", "10", "--once", "-o", "json")
	require.NoError(t, err)

	var report cli.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, 7, report.Tracked, "three one-shot blocks were seen and released")
}

func TestReport_ScrollClamps(t *testing.T) {
	setupCLITest(t)

	output, err := execute(t, "report",
		"--blocks", "4", "--block-height", "5", "--height", "10", "--scroll", "500", "-o", "json")
	require.NoError(t, err)

	var report cli.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, 10, report.ScrollY)
	assert.Equal(t, []string{"block-0001", "block-0002", "block-0003"}, report.Visible)
}

func TestReport_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "zero height", args: []string{"--height", "0"}},
		{name: "negative scroll", args: []string{"--scroll", "-1"}},
		{name: "unknown output", args: []string{"-o", "xml"}},
		{name: "negative delay", args: []string{"--debounce", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)

			_, err := execute(t, append([]string{"report"}, tt.args...)...)

			require.Error(t, err)
			assert.True(t, errors.Is(err, cli.ErrInvalidFlag))
		})
	}
}

func TestReport_DebounceAndThrottleExclusive(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "report", "--debounce", "100", "--throttle", "100")

	require.Error(t, err)
}

func TestReport_DebounceStillReports(t *testing.T) {
	setupCLITest(t)

	output, err := execute(t, "report",
		"--blocks", "10", "--block-height", "5", "--scroll", "12", "--height", "10", "--debounce", "50", "-o", "json")
	require.NoError(t, err)

	var report cli.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, []string{"block-0002", "block-0003", "block-0004"}, report.Visible)
	assert.Equal(t, "debounce", report.Policy)
}
