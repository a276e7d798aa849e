// Package dotgraph is the graph-renderer external collaborator of spec.md
// §6.3: it consumes a minimal graph description (named nodes, labelled
// directed edges) and produces Graphviz DOT source, the way the upstream
// Python's transducer_viewer.py does with the graphviz package. Built on
// gonum.org/v1/gonum/graph/multi (graphs can have several labelled edges
// between the same pair of nodes, one per output digit) and
// gonum.org/v1/gonum/graph/encoding/dot.
package dotgraph

import (
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/padic-tools/padicifs/internal/padicerr"
)

// EdgeSpec is one labelled directed edge in a Spec.
type EdgeSpec struct {
	From, To, Label string
}

// Spec is the minimal graph description dotgraph renders.
type Spec struct {
	Nodes []string
	Edges []EdgeSpec
}

type dotNode struct {
	id   int64
	name string
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return n.name }

type dotLine struct {
	multi.Line
	label string
}

func (l dotLine) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: l.label}}
}

// Render builds a gonum multigraph from spec and marshals it to DOT source
// named name.
func Render(spec Spec, name string) (string, error) {
	g := multi.NewDirectedGraph()
	byName := make(map[string]dotNode, len(spec.Nodes))
	var nextID int64
	for _, n := range spec.Nodes {
		node := dotNode{id: nextID, name: n}
		nextID++
		byName[n] = node
		g.AddNode(node)
	}

	for _, e := range spec.Edges {
		from, ok := byName[e.From]
		if !ok {
			return "", padicerr.New(padicerr.MalformedInput, "dotgraph: edge references unknown node %q", e.From)
		}
		to, ok := byName[e.To]
		if !ok {
			return "", padicerr.New(padicerr.MalformedInput, "dotgraph: edge references unknown node %q", e.To)
		}
		line, ok := g.NewLine(from, to).(multi.Line)
		if !ok {
			return "", padicerr.New(padicerr.MalformedInput, "dotgraph: internal line construction failed")
		}
		g.SetLine(dotLine{Line: line, label: e.Label})
	}

	bin, err := dot.MarshalMulti(g, name, "", "  ")
	if err != nil {
		return "", padicerr.New(padicerr.MalformedInput, "dot rendering failed: %v", err)
	}
	return string(bin), nil
}
