package config

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padic-tools/padicifs/internal/padicerr"
)

// S4: p=2, f0(x)=2x, f1(x)=2x+1.
func TestParseBinaryShiftConfig(t *testing.T) {
	src := "p:2\ntransducer\nf0: +p*x\nf1: +p*x + 1\n"
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, int64(2), cfg.P)
	assert.Equal(t, "transducer", cfg.Directive)
	require.Len(t, cfg.Specs, 2)

	assert.Equal(t, "f0", cfg.Specs[0].Name)
	assert.Equal(t, 1, cfg.Specs[0].Sign)
	assert.Equal(t, 1, cfg.Specs[0].K)
	assert.Equal(t, big.NewRat(0, 1).RatString(), cfg.Specs[0].Re.RatString())

	assert.Equal(t, "f1", cfg.Specs[1].Name)
	assert.Equal(t, big.NewRat(1, 1).RatString(), cfg.Specs[1].Re.RatString())
	assert.False(t, cfg.Specs[1].Complex())
}

func TestParseRationalConstant(t *testing.T) {
	src := "p:5\nDIMENSION\ng: -p^2*x - 1/3\n"
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cfg.Specs, 1)
	spec := cfg.Specs[0]
	assert.Equal(t, -1, spec.Sign)
	assert.Equal(t, 2, spec.K)
	assert.Equal(t, big.NewRat(-1, 3).RatString(), spec.Re.RatString())
}

func TestParseComplexConstant(t *testing.T) {
	src := "p:5\nA\nh: +p*x + 1 + 2i\n"
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cfg.Specs, 1)
	spec := cfg.Specs[0]
	require.True(t, spec.Complex())
	assert.Equal(t, big.NewRat(1, 1).RatString(), spec.Re.RatString())
	assert.Equal(t, big.NewRat(2, 1).RatString(), spec.Im.RatString())
	assert.True(t, cfg.Complex())
}

func TestParseComplexConstantJSpelling(t *testing.T) {
	src := "p:5\nA\nh: +p*x - 3j\n"
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	spec := cfg.Specs[0]
	require.True(t, spec.Complex())
	assert.Equal(t, big.NewRat(-3, 1).RatString(), spec.Im.RatString())
}

func TestParseRotationMarker(t *testing.T) {
	src := "p:5\nDFA\nf0: +p*x\nf1: -p*x\nf2: i*p*x\nf3: -i*p*x\n"
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cfg.Specs, 4)
	assert.Equal(t, 0, cfg.Specs[0].Rotation)
	assert.Equal(t, 2, cfg.Specs[1].Rotation)
	assert.Equal(t, 1, cfg.Specs[2].Rotation)
	assert.Equal(t, 3, cfg.Specs[3].Rotation)
}

func TestParseRotationMarkerJSpelling(t *testing.T) {
	src := "p:5\nDFA\nf0: -j*p*x\n"
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Specs[0].Rotation)
}

func TestInvalidPrimeRejected(t *testing.T) {
	_, err := Parse(strings.NewReader("p:1\ntransducer\n"))
	require.Error(t, err)
	assert.True(t, padicerr.Is(err, padicerr.InvalidPrime))
}

func TestMalformedMapLineReportsLineNumber(t *testing.T) {
	_, err := Parse(strings.NewReader("p:2\ntransducer\nnot a map expression\n"))
	require.Error(t, err)
	assert.True(t, padicerr.Is(err, padicerr.MalformedInput))
	assert.Contains(t, err.Error(), "line 3")
}

func TestMissingPrimeLine(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, padicerr.Is(err, padicerr.MalformedInput))
}
