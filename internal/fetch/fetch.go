package fetch

import "context"

// Fetcher makes a remote input available locally.
type Fetcher interface {
	// Supports reports whether the input is addressed to this fetcher.
	Supports(input string) bool
	// Fetch stages the input below dir and returns the local path to use
	// instead of the input.
	Fetch(ctx context.Context, input, dir string) (string, error)
}

// Find returns the first fetcher supporting input, or nil for local inputs.
func Find(fetchers []Fetcher, input string) Fetcher {
	for _, f := range fetchers {
		if f.Supports(input) {
			return f
		}
	}
	return nil
}
