// Package app contains the core application logic. It wires settings, the
// pipeline loader, the operator registry, the gpt engine and the reporters,
// decoupled from any specific entrypoint like a CLI.
package app
