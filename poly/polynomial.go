// Package poly implements dense polynomials over a generic base ring:
// canonical form, arithmetic, pseudo-division and sub-resultant GCD
// (Collins-Brown).
package poly

import (
	"fmt"
	"strings"

	"github.com/padic-tools/padicifs/internal/padicerr"
	"github.com/padic-tools/padicifs/ring"
)

// Polynomial is a dense coefficient slice, index i holding the coefficient
// of x^i, canonicalised by stripping trailing (highest-degree) zeros so the
// top coefficient is always non-zero unless the polynomial is exactly
// zero.
type Polynomial[T any] struct {
	Coeffs []T
}

// New canonicalises coefficients into a Polynomial.
func New[T any](r ring.Ring[T], coeffs ...T) Polynomial[T] {
	return Polynomial[T]{Coeffs: append([]T(nil), coeffs...)}.Canonical(r)
}

// Canonical strips trailing zero coefficients, always leaving at least one.
func (p Polynomial[T]) Canonical(r ring.Ring[T]) Polynomial[T] {
	if len(p.Coeffs) == 0 {
		return Polynomial[T]{Coeffs: []T{r.Zero()}}
	}
	j := len(p.Coeffs) - 1
	for j > 0 && r.IsZero(p.Coeffs[j]) {
		j--
	}
	return Polynomial[T]{Coeffs: append([]T(nil), p.Coeffs[:j+1]...)}
}

// Degree returns the highest non-zero coefficient's index (0 for the zero
// polynomial, matching the convention of the rest of this package).
func (p Polynomial[T]) Degree() int {
	return len(p.Coeffs) - 1
}

// At returns the coefficient of x^i, or zero if i exceeds the degree.
func (p Polynomial[T]) At(r ring.Ring[T], i int) T {
	if i < len(p.Coeffs) {
		return p.Coeffs[i]
	}
	return r.Zero()
}

// Leading returns the coefficient of the highest-degree term.
func (p Polynomial[T]) Leading() T {
	return p.Coeffs[p.Degree()]
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial[T]) IsZero(r ring.Ring[T]) bool {
	return p.Degree() == 0 && r.IsZero(p.Coeffs[0])
}

// Add returns p+q.
func (p Polynomial[T]) Add(r ring.Ring[T], q Polynomial[T]) Polynomial[T] {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = r.Add(p.At(r, i), q.At(r, i))
	}
	return Polynomial[T]{Coeffs: out}.Canonical(r)
}

// Neg returns -p.
func (p Polynomial[T]) Neg(r ring.Ring[T]) Polynomial[T] {
	out := make([]T, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = r.Neg(c)
	}
	return Polynomial[T]{Coeffs: out}
}

// Sub returns p-q.
func (p Polynomial[T]) Sub(r ring.Ring[T], q Polynomial[T]) Polynomial[T] {
	return p.Add(r, q.Neg(r))
}

// ScalarMul returns p with every coefficient multiplied by scalar.
func (p Polynomial[T]) ScalarMul(r ring.Ring[T], scalar T) Polynomial[T] {
	out := make([]T, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = r.Mul(c, scalar)
	}
	return Polynomial[T]{Coeffs: out}.Canonical(r)
}

// DivScalar returns p with every coefficient exactly divided by scalar.
func (p Polynomial[T]) DivScalar(r ring.Ring[T], scalar T) Polynomial[T] {
	out := make([]T, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = r.DivExact(c, scalar)
	}
	return Polynomial[T]{Coeffs: out}.Canonical(r)
}

// Lsh returns p * x^n.
func (p Polynomial[T]) Lsh(r ring.Ring[T], n int) Polynomial[T] {
	if n == 0 {
		return p
	}
	out := make([]T, n, n+len(p.Coeffs))
	for i := 0; i < n; i++ {
		out[i] = r.Zero()
	}
	out = append(out, p.Coeffs...)
	return Polynomial[T]{Coeffs: out}
}

// Rsh returns p with the lowest n coefficients truncated (floor divide by
// x^n).
func (p Polynomial[T]) Rsh(r ring.Ring[T], n int) Polynomial[T] {
	if n == 0 {
		return p
	}
	if n >= len(p.Coeffs) {
		return Polynomial[T]{Coeffs: []T{r.Zero()}}
	}
	return Polynomial[T]{Coeffs: append([]T(nil), p.Coeffs[n:]...)}.Canonical(r)
}

// Mul returns p*q by distribution.
func (p Polynomial[T]) Mul(r ring.Ring[T], q Polynomial[T]) Polynomial[T] {
	out := Polynomial[T]{Coeffs: []T{r.Zero()}}
	for i, c := range q.Coeffs {
		out = out.Add(r, p.ScalarMul(r, c).Lsh(r, i))
	}
	return out
}

// Equal compares canonical coefficient sequences.
func (p Polynomial[T]) Equal(r ring.Ring[T], q Polynomial[T]) bool {
	pc, qc := p.Canonical(r), q.Canonical(r)
	if len(pc.Coeffs) != len(qc.Coeffs) {
		return false
	}
	for i := range pc.Coeffs {
		if !r.Equal(pc.Coeffs[i], qc.Coeffs[i]) {
			return false
		}
	}
	return true
}

// Hash returns a string uniquely identifying p's canonical form: computed
// from the canonicalised coefficients, not the raw ones, so two
// representations of the same polynomial hash equal.
func (p Polynomial[T]) Hash(r ring.Ring[T]) string {
	c := p.Canonical(r)
	var sb strings.Builder
	for i, coeff := range c.Coeffs {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%v", coeff)
	}
	return sb.String()
}

func content[T any](r ring.Ring[T], p Polynomial[T]) T {
	g := r.Zero()
	for _, c := range p.Coeffs {
		g = r.GCD(g, c)
	}
	return g
}

func powRing[T any](r ring.Ring[T], base T, exp int) T {
	out := r.One()
	for i := 0; i < exp; i++ {
		out = r.Mul(out, base)
	}
	return out
}

// pseudoDivIterationLimit bounds pseudo-division's reduction loop; a
// well-formed division needs at most degree(A)-degree(B)+1 steps, so
// anything beyond this points at a malformed or non-terminating input.
const pseudoDivIterationLimit = 64

// PseudoDivide computes (Q,R) such that d^e*A = Q*B + R with deg(R) <
// deg(B), where d is B's leading coefficient and e = deg(A)-deg(B)+1.
func PseudoDivide[T any](r ring.Ring[T], A, B Polynomial[T]) (Q, R Polynomial[T], err error) {
	rem := A
	q := Polynomial[T]{Coeffs: []T{r.Zero()}}
	d := B.Leading()
	e := A.Degree() - B.Degree() + 1
	for i := 0; rem.Degree() >= B.Degree() && !rem.IsZero(r); i++ {
		if i > pseudoDivIterationLimit {
			return Polynomial[T]{}, Polynomial[T]{}, padicerr.New(padicerr.PseudoDivOverflow, "pseudo-division did not terminate within %d steps", pseudoDivIterationLimit)
		}
		sCoeffs := make([]T, rem.Degree()-B.Degree()+1)
		for j := range sCoeffs {
			sCoeffs[j] = r.Zero()
		}
		sCoeffs[len(sCoeffs)-1] = rem.At(r, rem.Degree())
		s := Polynomial[T]{Coeffs: sCoeffs}

		q = q.ScalarMul(r, d).Add(r, s)
		rem = rem.ScalarMul(r, d).Sub(r, s.Mul(r, B))
		e--
	}
	smallQ := r.One()
	if e > 0 {
		smallQ = powRing(r, d, e)
	}
	return q.ScalarMul(r, smallQ), rem.ScalarMul(r, smallQ), nil
}

// subResultantIterationLimit bounds the Collins-Brown reduction loop.
const subResultantIterationLimit = 64

// SubResultantGCD computes gcd(A,B) over the base ring via the
// Collins-Brown sub-resultant algorithm: exact integer GCD without the
// coefficient blow-up a naive Euclidean polynomial GCD would produce.
func SubResultantGCD[T any](r ring.Ring[T], A, B Polynomial[T]) (Polynomial[T], error) {
	return subResultantGCD(r, A, B, r.One(), r.One())
}

func subResultantGCD[T any](r ring.Ring[T], A, B Polynomial[T], g, h T) (Polynomial[T], error) {
	if B.Degree() > A.Degree() {
		return subResultantGCD(r, B, A, g, h)
	}
	if B.IsZero(r) {
		return A, nil
	}
	a := content(r, A)
	b := content(r, B)
	d := r.GCD(a, b)
	A = A.DivScalar(r, a)
	B = B.DivScalar(r, b)

	Q, R, err := PseudoDivide(r, A, B)
	_ = Q
	if err != nil {
		return Polynomial[T]{}, err
	}
	delta := A.Degree() - B.Degree()

	for i := 0; i < subResultantIterationLimit; i++ {
		if R.Degree() == 0 {
			if !r.IsZero(R.Coeffs[0]) {
				B = Polynomial[T]{Coeffs: []T{r.One()}}
			}
			gcdIn := content(r, B)
			return B.DivScalar(r, gcdIn).ScalarMul(r, d), nil
		}
		A = B
		divisor := r.Mul(g, powRing(r, h, delta))
		B = R.DivScalar(r, divisor)
		g = A.Leading()
		denomExp := delta - 1
		if denomExp < 0 {
			denomExp = 0
		}
		h = r.DivExact(powRing(r, g, delta), powRing(r, h, denomExp))

		Q, R, err = PseudoDivide(r, A, B)
		_ = Q
		if err != nil {
			return Polynomial[T]{}, err
		}
		delta = A.Degree() - B.Degree()
	}
	return Polynomial[T]{}, padicerr.New(padicerr.PseudoDivOverflow, "sub-resultant GCD did not converge within %d steps", subResultantIterationLimit)
}

func (p Polynomial[T]) String() string {
	var sb strings.Builder
	for i, c := range p.Coeffs {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%v", c)
		if i == 1 {
			sb.WriteString("*x")
		} else if i > 1 {
			fmt.Fprintf(&sb, "*x^%d", i)
		}
	}
	return sb.String()
}
