package ifs

import (
	"fmt"

	"github.com/padic-tools/padicifs/internal/padicerr"
	"github.com/padic-tools/padicifs/padic"
)

// State is a transducer node: the residue left after factoring out every
// digit produced so far, and the orientation (+1 forward, -1 reflected)
// accumulated from the signs of the maps applied along the way.
type State struct {
	Residue     padic.PAdic
	Orientation int
}

// Key returns a string uniquely identifying the state's canonical residue
// and orientation, suitable as a map key.
func (s State) Key() string {
	return fmt.Sprintf("%s|%d", s.Residue.CanonicalKey(), s.Orientation)
}

// Edge is a single (state, map) transition: the state reached and the
// digit block emitted.
type Edge struct {
	MapIndex int
	To       State
	Output   []int64
}

// Transducer is the explored state graph of an IFS's digit-shifting chase.
type Transducer struct {
	P     int64
	Maps  []Map
	Start State

	edges map[string][]Edge
	nodes map[string]State
	order []string // node keys in discovery order, for deterministic iteration
}

// NewTransducer creates an unexplored transducer rooted at start.
func NewTransducer(p int64, start State, maps []Map) *Transducer {
	return &Transducer{
		P:     p,
		Maps:  maps,
		Start: start,
		edges: map[string][]Edge{},
		nodes: map[string]State{},
	}
}

// Shift extracts shiftCount digits (least-significant first) from x,
// subtracts their contribution, and divides by p^shiftCount: the digit
// extraction step every transducer edge performs.
func Shift(x padic.PAdic, shiftCount int) (padic.PAdic, []int64, error) {
	d := make([]int64, shiftCount)
	for i := 0; i < shiftCount; i++ {
		v, err := x.At(i)
		if err != nil {
			return padic.PAdic{}, nil, err
		}
		d[i] = v
	}
	reversedWhole := make([]int64, shiftCount)
	for i, v := range d {
		reversedWhole[shiftCount-1-i] = v
	}
	digitValue, err := padic.New(x.P, nil, reversedWhole, nil)
	if err != nil {
		return padic.PAdic{}, nil, err
	}
	negDigitValue, err := digitValue.Neg()
	if err != nil {
		return padic.PAdic{}, nil, err
	}
	sum, err := x.Add(negDigitValue)
	if err != nil {
		return padic.PAdic{}, nil, err
	}
	return sum.Rsh(shiftCount), d, nil
}

// ApplyFunction runs one map from state, returning the resulting state and
// emitted digit block.
func ApplyFunction(m Map, s State) (State, []int64, error) {
	sum, err := s.Residue.Add(m.D)
	if err != nil {
		return State{}, nil, err
	}
	var base padic.PAdic
	if s.Orientation == 1 {
		base = sum
	} else {
		base, err = sum.Neg()
		if err != nil {
			return State{}, nil, err
		}
	}
	shifted, output, err := Shift(base, m.K)
	if err != nil {
		return State{}, nil, err
	}
	return State{Residue: shifted, Orientation: s.Orientation * m.Sign}, output, nil
}

// DefaultExplorationCap bounds Explore's worklist before it reports
// Unbounded; most transducers close after a handful of states.
const DefaultExplorationCap = 1 << 16

// Explore runs the deterministic, insertion-ordered BFS that discovers
// every reachable state: one edge per (state, map) pair, as spec.md §4.5
// requires. It returns Unbounded if the discovered node count exceeds cap.
func (t *Transducer) Explore(cap int) error {
	if cap <= 0 {
		cap = DefaultExplorationCap
	}
	queue := []State{t.Start}
	startKey := t.Start.Key()
	t.nodes[startKey] = t.Start
	t.order = append(t.order, startKey)
	seen := map[string]bool{startKey: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curKey := cur.Key()
		for idx, m := range t.Maps {
			newState, output, err := ApplyFunction(m, cur)
			if err != nil {
				return err
			}
			newKey := newState.Key()
			if !seen[newKey] {
				if len(seen) >= cap {
					return padicerr.New(padicerr.Unbounded, "transducer exploration exceeded %d states", cap)
				}
				seen[newKey] = true
				t.nodes[newKey] = newState
				t.order = append(t.order, newKey)
				queue = append(queue, newState)
			}
			t.edges[curKey] = append(t.edges[curKey], Edge{MapIndex: idx, To: newState, Output: output})
		}
	}
	return nil
}

// Nodes returns discovered states in discovery order.
func (t *Transducer) Nodes() []State {
	out := make([]State, len(t.order))
	for i, k := range t.order {
		out[i] = t.nodes[k]
	}
	return out
}

// EdgesFrom returns the edges discovered from state s, in map-order.
func (t *Transducer) EdgesFrom(s State) []Edge {
	return t.edges[s.Key()]
}

// NodeKey exposes State.Key for callers outside the package building their
// own indices over a Transducer's nodes.
func NodeKey(s State) string { return s.Key() }
