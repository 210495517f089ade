// Package config defines the format-agnostic pipeline model: the ordered
// steps of a graph and the options of a run, together with the Loader
// interface that concrete formats (see package hcl) implement.
//
// The model keeps step bodies opaque. Build asks the operator registry for a
// defaulted step value and lets the format decode its own body into it, so
// adding an operator never touches the loader.
package config
