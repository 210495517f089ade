// Package step defines the capability every gpt processing step provides to
// the graph model. Steps are plain values: they know their operator name and
// how to emit their own <parameters> subtree, but nothing about the graph they
// are added to.
package step

import (
	"fmt"

	"github.com/beevik/etree"
)

// DefaultPrimarySource is the element name most gpt operators use for their
// mandatory source.
const DefaultPrimarySource = "source"

// Step is one gpt operator instance.
type Step interface {
	// Operator is the gpt operator name, e.g. "Subset" or "Land-Sea-Mask".
	Operator() string
	// SuffixToken is appended to output names; "" leaves them untouched.
	SuffixToken() string
	// PrimarySource is the element name of the mandatory source.
	PrimarySource() string
	// ExtraSources lists the additional named sources the step requires.
	ExtraSources() []ExtraSource
	// Parameters emits the <parameters> element for this step.
	Parameters() (*etree.Element, error)
}

// ExtraSource is an additional source a step needs beyond the chain, such as
// a collocation partner product.
type ExtraSource struct {
	// Element is the tag placed inside the node's <sources>.
	Element string
	// Name is the logical name, substituted with -S<Name>=<Value>.
	Name string
	// Value is the external product path bound to Name.
	Value string
}

// Populated reports whether every field of the binding is set.
func (s ExtraSource) Populated() bool {
	return s.Element != "" && s.Name != "" && s.Value != ""
}

// Fragment returns the serialized binding, <Element>${Name}</Element>.
func (s ExtraSource) Fragment() *etree.Element {
	el := etree.NewElement(s.Element)
	el.SetText(Placeholder(s.Name))
	return el
}

// Placeholder formats a gpt substitution variable.
func Placeholder(name string) string {
	return fmt.Sprintf("${%s}", name)
}

// Describe returns a short label for log lines and error subjects.
func Describe(s Step) string {
	return "step " + s.Operator()
}
