// Package automaton turns an explored ifs.Transducer into an NDFA (one
// node per transducer state plus a fresh node per extra digit in a
// multi-digit edge output), then a DFA via classical subset construction,
// and finally a Hausdorff dimension from the DFA's adjacency spectral
// radius (spec.md §4.6, §6.3).
package automaton

import (
	"fmt"
	"sort"

	"github.com/padic-tools/padicifs/ifs"
)

// NDFA is a nondeterministic digit-labeled automaton: possibly several
// edges out of a node on the same digit.
type NDFA struct {
	Nodes map[string]struct{}
	Edges map[string]map[int64]map[string]struct{}
}

func newNDFA() *NDFA {
	return &NDFA{
		Nodes: map[string]struct{}{},
		Edges: map[string]map[int64]map[string]struct{}{},
	}
}

func (n *NDFA) addNode(name string) {
	n.Nodes[name] = struct{}{}
}

func (n *NDFA) addEdge(tail string, digit int64, head string) {
	if n.Edges[tail] == nil {
		n.Edges[tail] = map[int64]map[string]struct{}{}
	}
	if n.Edges[tail][digit] == nil {
		n.Edges[tail][digit] = map[string]struct{}{}
	}
	n.Edges[tail][digit][head] = struct{}{}
}

// addChain materializes a multi-digit edge output as a chain of
// single-symbol edges through fresh intermediate nodes, numbered from
// counter, and returns the next free counter value.
func (n *NDFA) addChain(tail string, head string, output []int64, counter int) int {
	if len(output) == 1 {
		n.addEdge(tail, output[0], head)
		return counter
	}
	prev := tail
	for _, digit := range output[:len(output)-1] {
		next := fmt.Sprintf("#%d", counter)
		n.addNode(next)
		n.addEdge(prev, digit, next)
		prev = next
		counter++
	}
	n.addEdge(prev, output[len(output)-1], head)
	return counter
}

// BuildNDFA constructs the NDFA for a fully explored real transducer.
func BuildNDFA(t *ifs.Transducer) *NDFA {
	n := newNDFA()
	nodes := t.Nodes()
	for _, s := range nodes {
		n.addNode(s.Key())
	}
	counter := 0
	for _, s := range nodes {
		tail := s.Key()
		for _, e := range t.EdgesFrom(s) {
			counter = n.addChain(tail, e.To.Key(), e.Output, counter)
		}
	}
	return n
}

// BuildComplexNDFA constructs the NDFA for a fully explored complex
// transducer.
func BuildComplexNDFA(t *ifs.ComplexTransducer) *NDFA {
	n := newNDFA()
	nodes := t.Nodes()
	for _, s := range nodes {
		n.addNode(s.Key())
	}
	counter := 0
	for _, s := range nodes {
		tail := s.Key()
		for _, e := range t.EdgesFrom(s) {
			counter = n.addChain(tail, e.To.Key(), e.Output, counter)
		}
	}
	return n
}

// sortedNodeNames returns names in sorted order, used as the canonical
// subset key for DFA states.
func sortedNodeNames(names map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
