package ifs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padic-tools/padicifs/cpadic"
	"github.com/padic-tools/padicifs/padic"
)

func mustDigit(t *testing.T, p, digit int64) padic.PAdic {
	t.Helper()
	x, err := padic.New(p, nil, []int64{digit}, nil)
	require.NoError(t, err)
	return x
}

// A complex p-adic's digit is itself complex-valued (re+im*i); a nonzero
// imaginary digit is an ordinary digit, not malformed input.
func TestComplexShiftExtractsNonzeroImaginaryDigit(t *testing.T) {
	p := int64(3)
	z := cpadic.ComplexPAdic{Re: mustDigit(t, p, 1), Im: mustDigit(t, p, 2)}

	shifted, digits, err := ComplexShift(z, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{PackComplexDigit(p, 1, 2)}, digits)

	re, im := UnpackComplexDigit(p, digits[0])
	assert.Equal(t, int64(1), re)
	assert.Equal(t, int64(2), im)

	zero, err := cpadic.Zero(p)
	require.NoError(t, err)
	assert.True(t, shifted.Equal(zero), "shifting out the only digit should leave zero, got %s", shifted)
}

func TestComplexShiftMultiDigitRoundTrip(t *testing.T) {
	p := int64(5)
	re, err := padic.New(p, nil, []int64{1, 4}, nil)
	require.NoError(t, err)
	im, err := padic.New(p, nil, []int64{3, 2}, nil)
	require.NoError(t, err)
	z := cpadic.ComplexPAdic{Re: re, Im: im}

	shifted, digits, err := ComplexShift(z, 2)
	require.NoError(t, err)
	require.Len(t, digits, 2)

	d0re, d0im := UnpackComplexDigit(p, digits[0])
	d1re, d1im := UnpackComplexDigit(p, digits[1])
	assert.Equal(t, int64(4), d0re)
	assert.Equal(t, int64(2), d0im)
	assert.Equal(t, int64(1), d1re)
	assert.Equal(t, int64(3), d1im)
	assert.NotNil(t, shifted.Re)
}

// A map whose constant has a nonzero imaginary part and an odd rotation
// (which only from_digit_sequence-style extraction, not real-only
// shifting, can process) must still apply cleanly.
func TestApplyComplexFunctionWithImaginaryConstantAndOddRotation(t *testing.T) {
	p := int64(3)
	start := ComplexState{
		Residue:  cpadic.ComplexPAdic{Re: mustDigit(t, p, 0), Im: mustDigit(t, p, 0)},
		Rotation: 0,
	}
	m := ComplexMap{
		Name:      "f",
		D:         cpadic.ComplexPAdic{Re: mustDigit(t, p, 1), Im: mustDigit(t, p, 2)},
		K:         1,
		Rotations: 1,
	}

	next, output, err := ApplyComplexFunction(m, start)
	require.NoError(t, err)
	require.Equal(t, []int64{PackComplexDigit(p, 1, 2)}, output)
	assert.Equal(t, 1, ((next.Rotation%4)+4)%4)
}

func TestComplexSimplifyHandlesImaginaryConstants(t *testing.T) {
	p := int64(3)
	maps := []ComplexMap{
		{Name: "f0", D: cpadic.ComplexPAdic{Re: mustDigit(t, p, 0), Im: mustDigit(t, p, 0)}, K: 1, Rotations: 0},
		{Name: "f1", D: cpadic.ComplexPAdic{Re: mustDigit(t, p, 1), Im: mustDigit(t, p, 2)}, K: 1, Rotations: 1},
	}
	result := ComplexSimplify(maps)
	require.Len(t, result.Maps, 2)
	assert.NotNil(t, result.CommonDenominator)
}
