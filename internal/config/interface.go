package config

import "context"

// Loader reads pipeline files into the format-agnostic model.
type Loader interface {
	// Load reads every pipeline file below paths. Directories are walked for
	// files of the loader's format in lexical order, and their blocks are
	// merged in that order.
	Load(ctx context.Context, paths ...string) (*Pipeline, error)
}

// BodyDecoder binds a format-specific step body onto a Go value, leaving
// fields the body does not set untouched.
type BodyDecoder interface {
	Decode(target any) error
}
