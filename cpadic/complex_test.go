package cpadic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padic-tools/padicifs/padic"
)

func sample(t *testing.T, p int64) ComplexPAdic {
	t.Helper()
	re, err := padic.FromRational(p, 1, 2)
	require.NoError(t, err)
	im, err := padic.FromRational(p, 1, 3)
	require.NoError(t, err)
	return ComplexPAdic{Re: re, Im: im}
}

func TestRotFourIsIdentity(t *testing.T) {
	z := sample(t, 5)
	rotated := z
	for i := 0; i < 4; i++ {
		var err error
		rotated, err = rotated.Rot(1)
		require.NoError(t, err)
	}
	assert.True(t, z.Equal(rotated), "rot(1) applied 4 times must be identity")
}

func TestRotComposition(t *testing.T) {
	z := sample(t, 7)
	for m := 0; m < 4; m++ {
		for n := 0; n < 4; n++ {
			viaTwoSteps, err := z.Rot(m)
			require.NoError(t, err)
			viaTwoSteps, err = viaTwoSteps.Rot(n)
			require.NoError(t, err)

			viaOneStep, err := z.Rot(m + n)
			require.NoError(t, err)

			assert.True(t, viaTwoSteps.Equal(viaOneStep), "rot(%d) . rot(%d) != rot(%d)", m, n, m+n)
		}
	}
}

func TestLiftHasZeroImaginaryPart(t *testing.T) {
	x, err := padic.FromRational(3, 2, 5)
	require.NoError(t, err)
	z, err := Lift(x)
	require.NoError(t, err)
	assert.True(t, z.Im.IsZero())
	assert.True(t, z.Re.Equal(x))
}

func TestAddNegZero(t *testing.T) {
	z := sample(t, 3)
	negZ, err := z.Neg()
	require.NoError(t, err)
	sum, err := z.Add(negZ)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestIncompatiblePrimeRejected(t *testing.T) {
	z3 := sample(t, 3)
	z5 := sample(t, 5)
	_, err := z3.Add(z5)
	require.Error(t, err)
}
