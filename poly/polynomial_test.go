package poly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padic-tools/padicifs/ring"
)

func bi(n int64) *big.Int { return big.NewInt(n) }

func ip(coeffs ...int64) Polynomial[*big.Int] {
	cs := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		cs[i] = bi(c)
	}
	return New[*big.Int](ring.IntRing{}, cs...)
}

func TestCanonicalStripsTrailingZeros(t *testing.T) {
	p := ip(1, 2, 0, 0)
	assert.Equal(t, 1, p.Degree())
}

func TestAddCommutative(t *testing.T) {
	r := ring.IntRing{}
	a := ip(1, 2, 3)
	b := ip(5, -1)
	assert.True(t, a.Add(r, b).Equal(r, b.Add(r, a)))
}

func TestMulDistributesOverAdd(t *testing.T) {
	r := ring.IntRing{}
	a := ip(1, 1)
	b := ip(2, 0, 3)
	c := ip(-1, 4)
	lhs := a.Mul(r, b.Add(r, c))
	rhs := a.Mul(r, b).Add(r, a.Mul(r, c))
	assert.True(t, lhs.Equal(r, rhs))
}

func TestLshRshRoundTrip(t *testing.T) {
	r := ring.IntRing{}
	a := ip(1, 2, 3)
	assert.True(t, a.Lsh(r, 3).Rsh(r, 3).Equal(r, a))
}

// PseudoDivide(A,B): verify d^e*A == Q*B + R.
func TestPseudoDivideIdentity(t *testing.T) {
	r := ring.IntRing{}
	A := ip(1, 0, 2, 1) // x^3 + 2x^2 + 1
	B := ip(1, 1)        // x + 1
	Q, R, err := PseudoDivide[*big.Int](r, A, B)
	require.NoError(t, err)

	d := B.Leading()
	e := A.Degree() - B.Degree() + 1
	scaled := A.ScalarMul(r, powRing(r, d, e))
	rhs := Q.Mul(r, B).Add(r, R)
	assert.True(t, scaled.Equal(r, rhs), "d^e*A != Q*B+R: %v != %v", scaled, rhs)
}

func TestPseudoDivideRemainderDegreeBound(t *testing.T) {
	r := ring.IntRing{}
	A := ip(3, 5, 2, 7)
	B := ip(1, 1, 1)
	_, R, err := PseudoDivide[*big.Int](r, A, B)
	require.NoError(t, err)
	if !R.IsZero(r) {
		assert.Less(t, R.Degree(), B.Degree())
	}
}

func TestSubResultantGCDDividesBoth(t *testing.T) {
	r := ring.IntRing{}
	// (x+1)(x+2) and (x+1)(x+3) share gcd (x+1) up to a unit factor.
	A := ip(2, 3, 1) // x^2+3x+2
	B := ip(3, 4, 1) // x^2+4x+3
	g, err := SubResultantGCD[*big.Int](r, A, B)
	require.NoError(t, err)

	_, remA, err := PseudoDivide[*big.Int](r, A, g)
	require.NoError(t, err)
	_, remB, err := PseudoDivide[*big.Int](r, B, g)
	require.NoError(t, err)
	assert.True(t, remA.IsZero(r), "gcd does not divide A: remainder %v", remA)
	assert.True(t, remB.IsZero(r), "gcd does not divide B: remainder %v", remB)
}

func TestHashStableUnderPaddedZeros(t *testing.T) {
	r := ring.IntRing{}
	a := Polynomial[*big.Int]{Coeffs: []*big.Int{bi(1), bi(2), bi(0)}}
	b := Polynomial[*big.Int]{Coeffs: []*big.Int{bi(1), bi(2)}}
	assert.Equal(t, a.Hash(r), b.Hash(r))
}
