package dotgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesDOTSourceWithLabelledEdges(t *testing.T) {
	spec := Spec{
		Nodes: []string{"s0"},
		Edges: []EdgeSpec{
			{From: "s0", To: "s0", Label: "0"},
			{From: "s0", To: "s0", Label: "1"},
		},
	}
	out, err := Render(spec, "transducer")
	require.NoError(t, err)
	assert.Contains(t, out, "s0")
	assert.Contains(t, out, `label="0"`)
	assert.Contains(t, out, `label="1"`)
	assert.True(t, strings.Contains(out, "digraph"))
}

func TestRenderRejectsUnknownNode(t *testing.T) {
	spec := Spec{
		Nodes: []string{"s0"},
		Edges: []EdgeSpec{{From: "s0", To: "ghost", Label: "0"}},
	}
	_, err := Render(spec, "g")
	require.Error(t, err)
}
