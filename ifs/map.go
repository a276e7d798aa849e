// Package ifs builds a digit-shifting transducer from a p-adic iterated
// function system: the maps that define the IFS, and the state-exploration
// machinery (spec.md §3.3-§3.4 data model) that turns them into a
// transducer whose edges are later subset-constructed into a DFA.
package ifs

import (
	"fmt"

	"github.com/padic-tools/padicifs/cpadic"
	"github.com/padic-tools/padicifs/padic"
)

// Map is a real p-adic contraction f(x) = sign*(x * p^k) + d.
type Map struct {
	Name string
	D    padic.PAdic
	K    int
	Sign int // +1 or -1
}

// Apply evaluates f(x).
func (m Map) Apply(x padic.PAdic) (padic.PAdic, error) {
	shifted := x.Lsh(m.K)
	if m.Sign < 0 {
		negShifted, err := shifted.Neg()
		if err != nil {
			return padic.PAdic{}, err
		}
		return negShifted.Add(m.D)
	}
	return shifted.Add(m.D)
}

func (m Map) String() string {
	sign := ""
	if m.Sign < 0 {
		sign = "-"
	}
	exp := ""
	if m.K != 1 {
		exp = fmt.Sprintf("^%d", m.K)
	}
	name := ""
	if m.Name != "" {
		name = m.Name + ": "
	}
	return fmt.Sprintf("%s%s%d%sx + %s", name, sign, m.D.P, exp, m.D)
}

// ComplexMap is a complex p-adic contraction f(z) = rot(epsilon)(z*p^k)+d.
type ComplexMap struct {
	Name      string
	D         cpadic.ComplexPAdic
	K         int
	Rotations int
}

// Apply evaluates f(z).
func (m ComplexMap) Apply(z cpadic.ComplexPAdic) (cpadic.ComplexPAdic, error) {
	shifted := z.Lsh(m.K)
	rotated, err := shifted.Rot(m.Rotations)
	if err != nil {
		return cpadic.ComplexPAdic{}, err
	}
	return rotated.Add(m.D)
}

func (m ComplexMap) String() string {
	name := ""
	if m.Name != "" {
		name = m.Name + ": "
	}
	rot := ((m.Rotations % 4) + 4) % 4
	sign := ""
	if (rot/2)%2 == 1 {
		sign = "-"
	}
	imag := ""
	if rot%2 == 1 {
		imag = "i * "
	}
	exp := " * "
	if m.K > 1 {
		exp = fmt.Sprintf("^%d * ", m.K)
	}
	return fmt.Sprintf("%s%s%s%d%sx + %s", name, sign, imag, m.D.Re.P, exp, m.D)
}
