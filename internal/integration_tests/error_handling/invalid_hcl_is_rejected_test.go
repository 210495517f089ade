package integration_tests

import (
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/gptgrid/internal/app"
)

// Test for: invalid hcl is rejected
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	// --- Arrange ---
	// Define an HCL string with a clear syntax error (a missing closing brace).
	gridPath := app.WritePipeline(t, `
		step "Subset" {
			geo_region = "POLYGON((0 0, 1 0, 1 1, 0 0))"
		// Missing closing brace here
	`)

	// The failure should happen during parsing, long before gpt is looked up.
	appConfig := &app.Config{PipelinePaths: []string{gridPath}, Inputs: []string{"a.nc"}}
	testApp, _, _ := app.SetupAppTest(t, appConfig)

	// --- Act ---
	_, runErr := testApp.Run(context.Background())

	// --- Assert ---
	if runErr == nil {
		t.Fatal("app.Run() should have returned an error for invalid HCL, but it returned nil")
	}

	// Check for keywords that indicate a parsing or decoding error, which
	// confirms the failure happened at the expected stage.
	errMsg := runErr.Error()
	if !strings.Contains(errMsg, "failed to parse") && !strings.Contains(errMsg, "failed to decode") {
		t.Errorf("expected error message to indicate an HCL parsing failure, but got: %s", errMsg)
	}
}
