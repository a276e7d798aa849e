package padicifs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S4: p=2, f0(x)=2x, f1(x)=2x+1 -> dimension 1, adjacency [[2]].
func TestPipelineDimensionS4(t *testing.T) {
	src := "p:2\nDIMENSION\nf0: +p*x\nf1: +p*x + 1\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "s4.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, "1", strings.TrimSpace(out.String()))
}

func TestPipelineAdjacencyS4(t *testing.T) {
	src := "p:2\nA\nf0: +p*x\nf1: +p*x + 1\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "s4.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, "[[2]]", strings.TrimSpace(out.String()))
}

// S5: p=3, A: 3x, B: 3x+1 -> dimension log(2)/log(3).
func TestPipelineDimensionS5(t *testing.T) {
	src := "p:3\nDIMENSION\nA: +p*x\nB: +p*x + 1\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "s5.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Contains(t, strings.TrimSpace(out.String()), "0.63")
}

func TestPipelineTransducerDOTDefaultDirective(t *testing.T) {
	src := "p:2\ntransducer\nf0: +p*x\nf1: +p*x + 1\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "s4.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Contains(t, out.String(), "digraph")
}

func TestPipelineSimplify(t *testing.T) {
	src := "p:2\nSIMPLIFY\nf0: +p*x\nf1: +p*x + 1\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "s4.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Contains(t, out.String(), "dimension")
	assert.Contains(t, out.String(), "digraph")
}

func TestPipelineRejectsMissingConfigPath(t *testing.T) {
	_, err := New(&Options{Output: &bytes.Buffer{}}, strings.NewReader("p:2\ntransducer\n"))
	require.Error(t, err)
}

// S4-style complex pipeline smoke test: maps with explicit zero imaginary
// constants still dispatch through the complex path once any map line uses
// i/j notation.
func TestPipelineComplexDOT(t *testing.T) {
	src := "p:2\ntransducer\nf0: +p*x + 0i\nf1: +p*x + 1 + 0i\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "c.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Contains(t, out.String(), "digraph")
}

// A complex map with a genuinely nonzero imaginary constant and an i/j
// rotation marker must drive the full pipeline without erroring: the
// first residue the transducer chases through ApplyComplexFunction adds
// this map's D, whose imaginary digit is nonzero.
func TestPipelineComplexDOTNonzeroImaginaryConstant(t *testing.T) {
	src := "p:3\ntransducer\nf0: +p*x\nf1: i*p*x + 1 + 2i\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "ci.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Contains(t, out.String(), "digraph")
}

func TestPipelineComplexDFANonzeroImaginaryConstant(t *testing.T) {
	src := "p:3\nDFA\nf0: +p*x\nf1: -i*p*x + 1 + 2i\n"
	var out bytes.Buffer
	pl, err := New(&Options{ConfigPath: "ci2.cfg", Output: &out}, strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Contains(t, out.String(), "digraph")
}
