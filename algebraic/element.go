// Package algebraic implements fixed-length algebraic-extension elements
// Σ c_j β_j over a generic base ring, with a pluggable multiplication Rule
// capturing how the extension's basis elements multiply into each other.
package algebraic

import "github.com/padic-tools/padicifs/ring"

// Rule captures extension-specific multiplication: given k and the current
// basis coordinates, it returns the coordinates of β^k * (Σ parts_j β_j).
type Rule[T any] func(k int, parts []T) []T

// Element is a fixed-length tuple of base-ring coordinates over an
// extension's basis.
type Element[T any] struct {
	Parts []T
}

// New pads parts with r.Zero() up to length n.
func New[T any](r ring.Ring[T], n int, parts ...T) Element[T] {
	out := make([]T, n)
	copy(out, parts)
	for i := len(parts); i < n; i++ {
		out[i] = r.Zero()
	}
	return Element[T]{Parts: out}
}

// Add returns e+other, componentwise.
func (e Element[T]) Add(r ring.Ring[T], other Element[T]) Element[T] {
	out := make([]T, len(e.Parts))
	for i := range e.Parts {
		out[i] = r.Add(e.Parts[i], other.Parts[i])
	}
	return Element[T]{Parts: out}
}

// SignedPermutation reorders parts according to arrangement: a positive
// 1-indexed entry k picks parts[k-1] directly, a negative entry -k picks
// -parts[k-1] (an entry of 0 picks -parts[n-1]). Negation (see Neg) is the
// special case arrangement[j] = -(j+1), which negates every part in place.
func SignedPermutation[T any](r ring.Ring[T], parts []T, arrangement []int) []T {
	n := len(parts)
	out := make([]T, len(arrangement))
	for j, a := range arrangement {
		if a > 0 {
			out[j] = parts[a-1]
			continue
		}
		idx := -a - 1
		if idx < 0 {
			idx += n
		}
		out[j] = r.Neg(parts[idx])
	}
	return out
}

// Neg returns -e via SignedPermutation with the reflecting arrangement
// arrangement[j] = -(j+1).
func (e Element[T]) Neg(r ring.Ring[T]) Element[T] {
	n := len(e.Parts)
	arrangement := make([]int, n)
	for j := range arrangement {
		arrangement[j] = -(j + 1)
	}
	return Element[T]{Parts: SignedPermutation(r, e.Parts, arrangement)}
}

// Sub returns e-other.
func (e Element[T]) Sub(r ring.Ring[T], other Element[T]) Element[T] {
	return e.Add(r, other.Neg(r))
}

// MultiplySimple scales every part by scalar.
func (e Element[T]) MultiplySimple(r ring.Ring[T], scalar T) Element[T] {
	out := make([]T, len(e.Parts))
	for i, p := range e.Parts {
		out[i] = r.Mul(p, scalar)
	}
	return Element[T]{Parts: out}
}

// ApplyRule returns rule(k, e.Parts) as an Element.
func (e Element[T]) ApplyRule(rule Rule[T], k int) Element[T] {
	return Element[T]{Parts: rule(k, e.Parts)}
}

// Mul multiplies e by other under rule, distributing over other's parts:
// Σ_i rule(i, e.Parts) * other.Parts[i].
func (e Element[T]) Mul(r ring.Ring[T], rule Rule[T], other Element[T]) Element[T] {
	a := e.ApplyRule(rule, 0).MultiplySimple(r, other.Parts[0])
	for i := 1; i < len(other.Parts); i++ {
		a = a.Add(r, e.ApplyRule(rule, i).MultiplySimple(r, other.Parts[i]))
	}
	return a
}

// Equal compares parts elementwise.
func (e Element[T]) Equal(r ring.Ring[T], other Element[T]) bool {
	if len(e.Parts) != len(other.Parts) {
		return false
	}
	for i := range e.Parts {
		if !r.Equal(e.Parts[i], other.Parts[i]) {
			return false
		}
	}
	return true
}

// NthRootRule is the archetype Rule for a single generator β with
// β^n = x: multiplying coordinates by β^k wraps the top k coordinates
// around, scaling the wrapped ones by x.
func NthRootRule[T any](r ring.Ring[T], x T) Rule[T] {
	return func(k int, parts []T) []T {
		n := len(parts)
		out := make([]T, n)
		if k == 0 {
			copy(out, parts)
			return out
		}
		for j := 0; j < k; j++ {
			out[j] = r.Mul(x, parts[n-k+j])
		}
		copy(out[k:], parts[:n-k])
		return out
	}
}

// MixRules combines independent extensions (each with its own basis size
// in states and its own Rule) into the Rule for their tensor product,
// e.g. Q[α^(1/n), γ^(1/m)] from NthRootRule(n,α) and NthRootRule(m,γ). The
// combinator is a pure block reshape/transpose: no ring arithmetic of its
// own, just re-indexing which sub-rule sees which slice.
func MixRules[T any](states []int, rules []Rule[T]) Rule[T] {
	return func(k int, parts []T) []T {
		cur := append([]T(nil), parts...)
		gapSize := 1
		blockCount := len(parts)
		for l := 0; l < len(states); l++ {
			u := k % states[l]
			k /= states[l]
			blockCount /= states[l]

			var v [][]T
			for y := 0; y < blockCount; y++ {
				base := gapSize * states[l] * y
				for x := base; x < base+gapSize; x++ {
					slice := make([]T, states[l])
					for idx := 0; idx < states[l]; idx++ {
						slice[idx] = cur[x+idx*gapSize]
					}
					v = append(v, slice)
				}
			}

			w := make([][]T, len(v))
			for i, a := range v {
				w[i] = rules[l](u, a)
			}

			next := make([]T, 0, len(cur))
			for i := 0; i < blockCount; i++ {
				blockRows := w[i*gapSize : i*gapSize+gapSize]
				for col := 0; col < states[l]; col++ {
					for row := 0; row < gapSize; row++ {
						next = append(next, blockRows[row][col])
					}
				}
			}
			cur = next
			gapSize *= states[l]
		}
		return cur
	}
}
