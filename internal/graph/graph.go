package graph

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/step"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// Version is the graph format version written into every document.
	Version = "1.0"
	// SourcePlaceholder is the substitution name of the first node's source.
	SourcePlaceholder = "source"
	// chainedSourceElement is the element used to reference the previous node.
	chainedSourceElement = "sourceProduct"
)

// Source is one aggregated additional source binding.
type Source struct {
	Name  string
	Value string
}

// Graph is an ordered chain of gpt operators. Use New to create one.
type Graph struct {
	doc        *etree.Document
	root       *etree.Element
	nodeIDs    []string
	operators  []string
	suffix     strings.Builder
	additional *orderedmap.OrderedMap[string, string]
	logger     *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for additional source collisions.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	doc := etree.NewDocument()
	root := doc.CreateElement("graph")
	root.CreateElement("version").SetText(Version)

	g := &Graph{
		doc:        doc,
		root:       root,
		additional: orderedmap.New[string, string](),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddStep appends s to the chain. An optional node id may be given; otherwise
// one is generated. The graph is left untouched when an error is returned.
func (g *Graph) AddStep(s step.Step, nodeID ...string) error {
	if s == nil {
		return &faults.ConfigurationError{Subject: "graph", Reason: "nil step"}
	}
	subject := step.Describe(s)
	if len(nodeID) > 1 {
		return &faults.ConfigurationError{Subject: subject, Reason: "at most one node id may be given"}
	}

	extras := s.ExtraSources()
	for _, src := range extras {
		if !src.Populated() {
			return &faults.ConfigurationError{
				Subject: subject,
				Reason:  fmt.Sprintf("extra source %q is not fully specified", bindingName(src)),
			}
		}
	}

	params, err := s.Parameters()
	if err != nil {
		return &faults.ConfigurationError{Subject: subject, Err: err}
	}
	if params == nil {
		return &faults.ConfigurationError{Subject: subject, Reason: "no parameters emitted"}
	}

	var id string
	if len(nodeID) == 1 && nodeID[0] != "" {
		id = nodeID[0]
		if slices.Contains(g.nodeIDs, id) {
			return &faults.ConfigurationError{Subject: subject, Reason: fmt.Sprintf("node id %q is already used", id)}
		}
	} else {
		id = g.nextID(s.Operator())
	}

	node := g.root.CreateElement("node")
	node.CreateAttr("id", id)
	node.CreateElement("operator").SetText(s.Operator())

	sources := node.CreateElement("sources")
	if len(g.nodeIDs) == 0 {
		primary := s.PrimarySource()
		if primary == "" {
			primary = step.DefaultPrimarySource
		}
		sources.CreateElement(primary).SetText(step.Placeholder(SourcePlaceholder))
	} else {
		sources.CreateElement(chainedSourceElement).CreateAttr("refid", g.nodeIDs[len(g.nodeIDs)-1])
	}

	for _, src := range extras {
		sources.AddChild(src.Fragment())
		if previous, present := g.additional.Set(src.Name, src.Value); present && previous != src.Value {
			g.logger.Warn("Additional source redefined, keeping the latest value.",
				"name", src.Name, "previous", previous, "value", src.Value, "node", id)
		}
	}

	node.AddChild(params.Copy())

	g.nodeIDs = append(g.nodeIDs, id)
	g.operators = append(g.operators, s.Operator())
	if token := s.SuffixToken(); token != "" {
		g.suffix.WriteString("_" + strings.ToLower(token))
	}

	g.logger.Debug("Step added to graph.", "node", id, "operator", s.Operator(), "position", len(g.nodeIDs)-1)
	return nil
}

// nextID counts ids containing the operator name as a substring. The count can
// land on an id given explicitly earlier; it is then bumped until free.
func (g *Graph) nextID(operator string) string {
	n := 0
	for _, existing := range g.nodeIDs {
		if strings.Contains(existing, operator) {
			n++
		}
	}
	id := fmt.Sprintf("%s%d", operator, n)
	for slices.Contains(g.nodeIDs, id) {
		n++
		id = fmt.Sprintf("%s%d", operator, n)
	}
	return id
}

func bindingName(src step.ExtraSource) string {
	switch {
	case src.Name != "":
		return src.Name
	case src.Element != "":
		return src.Element
	default:
		return "unnamed"
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodeIDs)
}

// NodeIDs returns the node ids in execution order.
func (g *Graph) NodeIDs() []string {
	return slices.Clone(g.nodeIDs)
}

// Operators returns the operator names in execution order.
func (g *Graph) Operators() []string {
	return slices.Clone(g.operators)
}

// Suffix returns the accumulated output suffix, e.g. "_subset_reprojected".
func (g *Graph) Suffix() string {
	return g.suffix.String()
}

// Placeholder is the substitution name of the primary input, bound with
// -Ssource=<input>.
func (g *Graph) Placeholder() string {
	return SourcePlaceholder
}

// AdditionalSources returns the aggregated additional sources in the order
// their names were first declared.
func (g *Graph) AdditionalSources() []Source {
	out := make([]Source, 0, g.additional.Len())
	for pair := g.additional.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Source{Name: pair.Key, Value: pair.Value})
	}
	return out
}

// Serialize renders the document with two space indentation.
func (g *Graph) Serialize() (string, error) {
	doc := g.doc.Copy()
	doc.Indent(2)
	return doc.WriteToString()
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	s, err := g.Serialize()
	if err != nil {
		return fmt.Sprintf("<!-- %v -->", err)
	}
	return s
}

// Save writes the serialized document to path.
func (g *Graph) Save(path string) error {
	content, err := g.Serialize()
	if err != nil {
		return &faults.IOError{Op: "serialize graph", Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &faults.IOError{Op: "write graph", Path: path, Err: err}
	}
	return nil
}
