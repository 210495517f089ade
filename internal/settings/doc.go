// Package settings reads the tool's own settings: where gpt lives, how to
// log, and how to reach S3 storage.
//
// Values are layered: built-in defaults, then an optional YAML file, then the
// environment. Variables from .env files fill in only what the real
// environment leaves unset. Command-line flags are applied on top by the CLI.
package settings
