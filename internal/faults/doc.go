// Package faults defines the error taxonomy shared by the graph model and the
// execution engine. Each kind is a concrete type so callers can tell a broken
// tool installation apart from a bad configuration or a single failed input
// with errors.As.
package faults
