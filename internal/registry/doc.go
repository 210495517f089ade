// Package registry maps gpt operator names to the Go constructors that build
// them.
//
// Pipeline files name operators by their gpt name (e.g. "Land-Sea-Mask"); the
// loader asks the registry for a fresh, defaulted value and decodes the step
// body into it. ValidateRegistry checks at startup that every registered
// constructor agrees with its own name and exposes a decodable struct, so a
// missing struct tag is caught before any pipeline runs.
package registry
