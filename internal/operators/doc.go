// Package operators is the library of gpt operators available to graphs.
//
// Every operator is a plain struct whose exported fields mirror the gpt
// parameters it supports. Constructors set the gpt defaults, HCL tags let the
// pipeline loader decode step blocks straight into the struct, and Parameters
// emits the elements in the order gpt documents them. Operators hold no
// reference to a graph and share no mutable state.
package operators
