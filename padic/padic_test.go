package padic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFromRational(t *testing.T, p, num, denom int64) PAdic {
	t.Helper()
	x, err := FromRational(p, num, denom)
	require.NoError(t, err)
	return x
}

func TestFromRationalHalfOverThree(t *testing.T) {
	// 1/2 in base 3: repeat (1), whole (2), empty frac.
	x := mustFromRational(t, 3, 1, 2)
	assert.Equal(t, []int64{1}, x.Repeat)
	assert.Equal(t, []int64{2}, x.Whole)
	assert.Empty(t, x.Frac)
}

func TestToRationalRoundTrip(t *testing.T) {
	cases := []struct{ p, num, denom int64 }{
		{3, 1, 2}, {5, -7, 3}, {2, 1, 3}, {7, 22, 7}, {2, 5, 8},
	}
	for _, c := range cases {
		x := mustFromRational(t, c.p, c.num, c.denom)
		num, den := x.ToRational()
		want := big.NewRat(c.num, c.denom)
		got := new(big.Rat).SetFrac(num, den)
		assert.True(t, want.Cmp(got) == 0, "p=%d %d/%d -> %s (got %s)", c.p, c.num, c.denom, got, x)
	}
}

func TestAddMatchesRationalAddition(t *testing.T) {
	cases := []struct{ p, n1, d1, n2, d2 int64 }{
		{3, 1, 2, 1, 3},
		{5, 2, 3, -1, 4},
		{2, 1, 3, 2, 3},
		{7, 5, 6, 1, 6},
	}
	for _, c := range cases {
		x := mustFromRational(t, c.p, c.n1, c.d1)
		y := mustFromRational(t, c.p, c.n2, c.d2)
		sum, err := x.Add(y)
		require.NoError(t, err)
		num, den := sum.ToRational()
		got := new(big.Rat).SetFrac(num, den)
		want := new(big.Rat).Add(big.NewRat(c.n1, c.d1), big.NewRat(c.n2, c.d2))
		assert.True(t, want.Cmp(got) == 0, "p=%d (%d/%d)+(%d/%d): want %s got %s", c.p, c.n1, c.d1, c.n2, c.d2, want, got)
	}
}

func TestOneThirdPlusTwoThirdsEqualsOne(t *testing.T) {
	// S3: 1/3 + 2/3 = 1 in base 2.
	x := mustFromRational(t, 2, 1, 3)
	y := mustFromRational(t, 2, 2, 3)
	sum, err := x.Add(y)
	require.NoError(t, err)
	one, err := FromRational(2, 1, 1)
	require.NoError(t, err)
	assert.True(t, sum.Equal(one))
}

func TestNegIsInvolutionAndAddsToZero(t *testing.T) {
	cases := []struct{ p, num, denom int64 }{
		{3, 1, 2}, {5, -7, 3}, {2, 1, 3}, {7, 4, 9},
	}
	for _, c := range cases {
		x := mustFromRational(t, c.p, c.num, c.denom)
		negX, err := x.Neg()
		require.NoError(t, err)

		sum, err := x.Add(negX)
		require.NoError(t, err)
		assert.True(t, sum.IsZero(), "p=%d %d/%d: x+(-x) != 0, got %s", c.p, c.num, c.denom, sum)

		doubleNeg, err := negX.Neg()
		require.NoError(t, err)
		assert.True(t, x.Equal(doubleNeg), "-(-x) != x")
	}
}

func TestCondenseIsIdempotent(t *testing.T) {
	x := mustFromRational(t, 5, 17, 6)
	once := x.Condense()
	twice := once.Condense()
	assert.Equal(t, once, twice)
}

func TestLshRshAreInverses(t *testing.T) {
	x := mustFromRational(t, 3, 5, 4)
	shifted := x.Lsh(2)
	back := shifted.Rsh(2)
	assert.True(t, x.Equal(back), "lsh/rsh round trip: got %s want %s", back, x)
}

func TestIncompatiblePrimeAddition(t *testing.T) {
	x := mustFromRational(t, 3, 1, 2)
	y := mustFromRational(t, 5, 1, 2)
	_, err := x.Add(y)
	require.Error(t, err)
}

func TestInvalidPrimeRejected(t *testing.T) {
	_, err := FromRational(1, 1, 2)
	require.Error(t, err)
}

func TestDivisionByZeroRejected(t *testing.T) {
	_, err := FromRational(3, 1, 0)
	require.Error(t, err)
}

func TestAbsOfZeroIsZero(t *testing.T) {
	z, err := Zero(3)
	require.NoError(t, err)
	assert.Equal(t, 0, z.Abs().Sign())
}

func TestAbsUltrametricInequality(t *testing.T) {
	cases := []struct{ p, n1, d1, n2, d2 int64 }{
		{3, 1, 2, 1, 3},
		{5, 2, 3, -1, 4},
	}
	for _, c := range cases {
		x := mustFromRational(t, c.p, c.n1, c.d1)
		y := mustFromRational(t, c.p, c.n2, c.d2)
		sum, err := x.Add(y)
		require.NoError(t, err)

		ax, ay, asum := x.Abs(), y.Abs(), sum.Abs()
		maxAB := ax
		if ay.Cmp(maxAB) > 0 {
			maxAB = ay
		}
		assert.True(t, asum.Cmp(maxAB) <= 0, "|x+y| must not exceed max(|x|,|y|)")
	}
}
