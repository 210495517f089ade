package integration_tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gptgrid/internal/app"
	"github.com/specialistvlad/gptgrid/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-p", "/test/pipeline",
				"-config", "/etc/gptgrid.yaml",
				"-env-file", "/etc/gptgrid.env",
				"-gpt=/opt/snap/bin/gpt",
				"--output=/data/proc",
				"--log-level=debug",
				"--log-format=text",
				"--healthcheck-port=8080",
				"-quiet",
				"/data/S3A_OL_2_WFR____20210615T101530.zip",
			},
			expectedConfig: &app.Config{
				PipelinePaths:   []string{"/test/pipeline"},
				Inputs:          []string{"/data/S3A_OL_2_WFR____20210615T101530.zip"},
				SettingsPath:    "/etc/gptgrid.yaml",
				EnvFiles:        []string{"/etc/gptgrid.env"},
				GPT:             "/opt/snap/bin/gpt",
				OutputFolder:    "/data/proc",
				LogLevel:        "debug",
				LogFormat:       "text",
				Quiet:           true,
				HealthcheckPort: 8080,
			},
		},
		{
			name: "Positional argument for path",
			args: []string{"/positional/path"},
			expectedConfig: &app.Config{
				PipelinePaths: []string{"/positional/path"},
				Inputs:        []string{},
			},
		},
		{
			name: "Print graph without inputs",
			args: []string{"-print-graph", "pipeline.hcl"},
			expectedConfig: &app.Config{
				PipelinePaths: []string{"pipeline.hcl"},
				Inputs:        []string{},
				PrintGraph:    true,
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:       "No path triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "/path"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "/path"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			appConfig, shouldExit, err := cli.Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				_, isExitError := err.(*cli.ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				return // End test here if an error is expected
			}
			require.NoError(t, err)

			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, appConfig); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}
