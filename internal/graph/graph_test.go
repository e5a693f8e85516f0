package graph

import (
	"testing"

	"github.com/leapstack-labs/dotviz/internal/attr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNode(t *testing.T) {
	g := New("G")
	g.AddNode("a", attr.Attrs{"label": `"A"`})
	g.AddNode("b", nil)
	g.AddNode("a", attr.Attrs{"shape": "box"})

	assert.Equal(t, 2, g.NodeCount())

	n, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, `"A"`, n.Attrs["label"])
	assert.Equal(t, "box", n.Attrs["shape"], "re-adding a node merges attributes")

	_, ok = g.Node("missing")
	assert.False(t, ok)
}

func TestGraph_NodesKeepDeclarationOrder(t *testing.T) {
	g := New("")
	for _, id := range []string{"zeta", "alpha", "mid"} {
		g.AddNode(id, nil)
	}

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ids)
}

func TestGraph_AddEdge(t *testing.T) {
	g := New("G")
	g.AddNode("a", nil)
	g.AddNode("b", nil)

	t.Run("parallel edges are kept", func(t *testing.T) {
		require.NoError(t, g.AddEdge("a", "b", attr.Attrs{"color": "red"}))
		require.NoError(t, g.AddEdge("a", "b", nil))
		assert.Equal(t, 2, g.EdgeCount())

		edges := g.Edges()
		assert.Equal(t, "red", edges[0].Attrs["color"])
		assert.Empty(t, edges[1].Attrs)
	})

	t.Run("unknown source", func(t *testing.T) {
		err := g.AddEdge("x", "b", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"x"`)
	})

	t.Run("unknown target", func(t *testing.T) {
		err := g.AddEdge("a", "y", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"y"`)
	})

	t.Run("self loop allowed", func(t *testing.T) {
		assert.NoError(t, g.AddEdge("a", "a", nil))
	})
}

func TestGraph_AttrsAreCopied(t *testing.T) {
	g := New("G")
	attrs := attr.Attrs{"label": "A"}
	g.AddNode("a", attrs)
	attrs["label"] = "changed"

	n, _ := g.Node("a")
	assert.Equal(t, "A", n.Attrs["label"])
}

func TestClusterMap(t *testing.T) {
	m := ClusterMap{
		"a": "Beta",
		"b": "Alpha",
		"c": "Beta",
	}

	assert.Equal(t, []string{"Alpha", "Beta"}, m.Labels())
	assert.Equal(t, map[string]int{"Alpha": 1, "Beta": 2}, m.Members())
	assert.Empty(t, ClusterMap{}.Labels())
}
