package ifs

import (
	"fmt"

	"github.com/padic-tools/padicifs/cpadic"
	"github.com/padic-tools/padicifs/internal/padicerr"
	"github.com/padic-tools/padicifs/padic"
)

// PackComplexDigit and UnpackComplexDigit encode a single Gaussian-integer
// digit (re, im in [0,p)) as one int64 symbol, re*p+im, so a complex digit
// fits the same alphabet-indexed edge machinery (automaton.NDFA/DFA) as a
// real digit. The complex alphabet is [0, p*p) rather than [0, p).

// PackComplexDigit combines a (re, im) digit pair into a single symbol.
func PackComplexDigit(p, re, im int64) int64 {
	return re*p + im
}

// UnpackComplexDigit splits a packed symbol back into its (re, im) pair.
func UnpackComplexDigit(p, packed int64) (int64, int64) {
	return packed / p, packed % p
}

// ComplexState is a Gaussian-complex transducer node: a residue plus a
// rotation count (mod 4) in place of the real transducer's +-1 sign.
type ComplexState struct {
	Residue  cpadic.ComplexPAdic
	Rotation int
}

// Key returns a string uniquely identifying the state.
func (s ComplexState) Key() string {
	rot := ((s.Rotation % 4) + 4) % 4
	return fmt.Sprintf("%s|%d", s.Residue.CanonicalKey(), rot)
}

// ComplexEdge is a single (state, map) transition in a complex transducer.
type ComplexEdge struct {
	MapIndex int
	To       ComplexState
	Output   []int64
}

// ComplexTransducer is the explored state graph for a complex IFS.
type ComplexTransducer struct {
	P     int64
	Maps  []ComplexMap
	Start ComplexState

	edges map[string][]ComplexEdge
	nodes map[string]ComplexState
	order []string
}

// NewComplexTransducer creates an unexplored transducer rooted at start.
func NewComplexTransducer(p int64, start ComplexState, maps []ComplexMap) *ComplexTransducer {
	return &ComplexTransducer{
		P:     p,
		Maps:  maps,
		Start: start,
		edges: map[string][]ComplexEdge{},
		nodes: map[string]ComplexState{},
	}
}

// ComplexShift is Shift's Gaussian-complex analogue. Unlike a real p-adic's
// digit, a complex p-adic's digit at a position is itself complex-valued
// (re[i] + im[i]*i, following the upstream Python original's
// Complex_pAdic.__getitem__) — a zero imaginary component is not special,
// it is just one possible digit value. ComplexShift extracts the real and
// imaginary digit sequences independently, packs each (re,im) pair into a
// single alphabet symbol (PackComplexDigit) for the output, and removes
// the extracted digit value from z the way from_digit_sequence rebuilds a
// Complex_pAdic from a reversed digit sequence: split back into separate
// real/imaginary whole-part p-adics, not lifted from a real-only value.
func ComplexShift(z cpadic.ComplexPAdic, shiftCount int) (cpadic.ComplexPAdic, []int64, error) {
	p := z.Re.P
	reDigits := make([]int64, shiftCount)
	imDigits := make([]int64, shiftCount)
	packed := make([]int64, shiftCount)
	for i := 0; i < shiftCount; i++ {
		reVal, err := z.Re.At(i)
		if err != nil {
			return cpadic.ComplexPAdic{}, nil, err
		}
		imVal, err := z.Im.At(i)
		if err != nil {
			return cpadic.ComplexPAdic{}, nil, err
		}
		reDigits[i] = reVal
		imDigits[i] = imVal
		packed[i] = PackComplexDigit(p, reVal, imVal)
	}
	reversedRe := make([]int64, shiftCount)
	reversedIm := make([]int64, shiftCount)
	for i := 0; i < shiftCount; i++ {
		reversedRe[shiftCount-1-i] = reDigits[i]
		reversedIm[shiftCount-1-i] = imDigits[i]
	}
	rePart, err := padic.New(p, nil, reversedRe, nil)
	if err != nil {
		return cpadic.ComplexPAdic{}, nil, err
	}
	imPart, err := padic.New(p, nil, reversedIm, nil)
	if err != nil {
		return cpadic.ComplexPAdic{}, nil, err
	}
	digitValue := cpadic.ComplexPAdic{Re: rePart, Im: imPart}
	sum, err := z.Sub(digitValue)
	if err != nil {
		return cpadic.ComplexPAdic{}, nil, err
	}
	return sum.Rsh(shiftCount), packed, nil
}

// ApplyComplexFunction runs one map from state, returning the resulting
// state and emitted digit block.
func ApplyComplexFunction(m ComplexMap, s ComplexState) (ComplexState, []int64, error) {
	sum, err := s.Residue.Add(m.D)
	if err != nil {
		return ComplexState{}, nil, err
	}
	rotated, err := sum.Rot(s.Rotation)
	if err != nil {
		return ComplexState{}, nil, err
	}
	shifted, output, err := ComplexShift(rotated, m.K)
	if err != nil {
		return ComplexState{}, nil, err
	}
	return ComplexState{Residue: shifted, Rotation: s.Rotation + m.Rotations}, output, nil
}

// Explore runs the same deterministic BFS as Transducer.Explore.
func (t *ComplexTransducer) Explore(cap int) error {
	if cap <= 0 {
		cap = DefaultExplorationCap
	}
	queue := []ComplexState{t.Start}
	startKey := t.Start.Key()
	t.nodes[startKey] = t.Start
	t.order = append(t.order, startKey)
	seen := map[string]bool{startKey: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curKey := cur.Key()
		for idx, m := range t.Maps {
			newState, output, err := ApplyComplexFunction(m, cur)
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
			t.edges[curKey] = append(t.edges[curKey], ComplexEdge{MapIndex: idx, To: newState, Output: output})
		}
	}
	return nil
}

// Nodes returns discovered states in discovery order.
func (t *ComplexTransducer) Nodes() []ComplexState {
	out := make([]ComplexState, len(t.order))
	for i, k := range t.order {
		out[i] = t.nodes[k]
	}
	return out
}

// EdgesFrom returns the edges discovered from state s, in map-order.
func (t *ComplexTransducer) EdgesFrom(s ComplexState) []ComplexEdge {
	return t.edges[s.Key()]
}
