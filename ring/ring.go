// Package ring is the small capability set the polynomial and
// algebraic-extension layers need from a base ring: +, -, *, 0, 1, and
// division by a scalar. Rather than a
// method set on T itself (awkward for *big.Int/*big.Rat, which already
// carry their own large method sets) a Ring[T] value bundles the
// operations, the way a trait/typeclass dictionary would in a language
// with those.
package ring

import "math/big"

// Ring is the capability set a base ring must provide for poly.Polynomial[T]
// and algebraic.Element[T] to be generic over it.
type Ring[T any] interface {
	Add(a, b T) T
	Neg(a T) T
	Mul(a, b T) T
	Zero() T
	One() T
	DivScalar(a T, scalar int64) T
	// DivExact divides a by b assuming b divides a exactly (content
	// reduction, sub-resultant bookkeeping); behavior is undefined otherwise.
	DivExact(a, b T) T
	IsZero(a T) bool
	Equal(a, b T) bool
	GCD(a, b T) T
	// Cmp orders values; only the sign of the result matters.
	Cmp(a, b T) int
}

// IntRing implements Ring[*big.Int]: exact integer arithmetic, grounded the
// same way the pack's own math/big users are (cryptoanalysis.go's RSA key
// handling, the apcomplex/robpike-ivy references in other_examples/).
type IntRing struct{}

func (IntRing) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (IntRing) Neg(a *big.Int) *big.Int    { return new(big.Int).Neg(a) }
func (IntRing) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
func (IntRing) Zero() *big.Int             { return big.NewInt(0) }
func (IntRing) One() *big.Int              { return big.NewInt(1) }
func (IntRing) IsZero(a *big.Int) bool     { return a.Sign() == 0 }
func (IntRing) Equal(a, b *big.Int) bool   { return a.Cmp(b) == 0 }
func (IntRing) Cmp(a, b *big.Int) int      { return a.Cmp(b) }

func (IntRing) DivScalar(a *big.Int, scalar int64) *big.Int {
	return new(big.Int).Quo(a, big.NewInt(scalar))
}

func (IntRing) GCD(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return g
}

func (IntRing) DivExact(a, b *big.Int) *big.Int {
	return new(big.Int).Quo(a, b)
}

// RatRing implements Ring[*big.Rat]: exact rational arithmetic, used when a
// polynomial or algebraic element needs to range over Q rather than Z.
type RatRing struct{}

func (RatRing) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (RatRing) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (RatRing) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (RatRing) Zero() *big.Rat             { return new(big.Rat) }
func (RatRing) One() *big.Rat              { return new(big.Rat).SetInt64(1) }
func (RatRing) IsZero(a *big.Rat) bool     { return a.Sign() == 0 }
func (RatRing) Equal(a, b *big.Rat) bool   { return a.Cmp(b) == 0 }
func (RatRing) Cmp(a, b *big.Rat) int      { return a.Cmp(b) }

func (RatRing) DivScalar(a *big.Rat, scalar int64) *big.Rat {
	return new(big.Rat).Quo(a, new(big.Rat).SetInt64(scalar))
}

func (RatRing) DivExact(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Quo(a, b)
}

// GCD on Q is only meaningful up to units; rationals form a field, so the
// content-reduction step in sub-resultant GCD is a no-op over RatRing and
// this always returns 1.
func (RatRing) GCD(a, b *big.Rat) *big.Rat {
	if a.Sign() == 0 && b.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).SetInt64(1)
}
