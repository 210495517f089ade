package operators

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/gptgrid/internal/step"
)

func newParams() *step.Params { return step.NewParams() }

var errMissing = errors.New("required parameter is not set")

func missing(name string) error {
	return fmt.Errorf("%s: %w", name, errMissing)
}

// oneOf checks value against the allowed gpt values.
func oneOf(name, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("%s: %q is not one of %v", name, value, allowed)
	}
	return nil
}
