package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/dotviz/internal/inject"
	"github.com/leapstack-labs/dotviz/internal/loader"
	"github.com/leapstack-labs/dotviz/internal/palette"
	"github.com/leapstack-labs/dotviz/internal/render"
	"github.com/leapstack-labs/dotviz/internal/scene"
	"github.com/leapstack-labs/dotviz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoNodes = `digraph G {
    subgraph cluster_0 {
        label = "Group A";
        a;
        b;
    }
    a -> b;
}
`

func newTestEngine(t *testing.T, dot string, mutate func(*Config)) (*Engine, string) {
	t.Helper()

	cfg := Config{
		InputPath:  testutil.WriteDOT(t, "graph.dot", dot),
		OutputPath: filepath.Join(t.TempDir(), DefaultOutputPath),
		Seed:       palette.DefaultSeed,
		Inject:     true,
		Logger:     testutil.NewTestLogger(t),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg), cfg.OutputPath
}

func TestNew_Defaults(t *testing.T) {
	e := New(Config{InputPath: "graph.dot"})

	assert.Equal(t, DefaultOutputPath, e.outputPath)
	assert.Equal(t, render.DefaultPage(), e.page)
	assert.NotNil(t, e.logger)
	assert.False(t, e.inject)
}

func TestRun_TwoNodesOneCluster(t *testing.T) {
	e, out := newTestEngine(t, twoNodes, nil)

	result, err := e.Run()
	require.NoError(t, err)

	assert.Equal(t, out, result.OutputPath)
	assert.True(t, result.Injected)
	assert.NoError(t, result.InjectErr)

	require.Len(t, result.Scene.Options.Groups, 1)
	require.Contains(t, result.Scene.Options.Groups, "Group A")
	require.Len(t, result.Scene.Nodes, 2)
	for _, n := range result.Scene.Nodes {
		assert.Equal(t, "Group A", n.Group)
	}
	require.Len(t, result.Scene.Edges, 1)

	require.Len(t, result.Clusters, 1)
	assert.Equal(t, ClusterSummary{
		Label: "Group A",
		Color: result.Scene.Options.Groups["Group A"].Color.Background,
		Nodes: 2,
	}, result.Clusters[0])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)

	script, err := inject.Script(inject.Options{})
	require.NoError(t, err)
	pos := strings.LastIndex(html, inject.BodyMarker)
	require.NotEqual(t, -1, pos)
	assert.True(t, strings.HasSuffix(html[:pos], script))
}

func TestRun_Deterministic(t *testing.T) {
	first, _ := newTestEngine(t, twoNodes, nil)
	second, _ := newTestEngine(t, twoNodes, nil)

	r1, err := first.Run()
	require.NoError(t, err)
	r2, err := second.Run()
	require.NoError(t, err)

	assert.Equal(t, r1.Scene, r2.Scene)
	assert.Equal(t, r1.Clusters, r2.Clusters)
}

func TestRun_InjectionDisabled(t *testing.T) {
	e, out := newTestEngine(t, twoNodes, func(cfg *Config) {
		cfg.Inject = false
	})

	result, err := e.Run()
	require.NoError(t, err)
	assert.False(t, result.Injected)
	assert.NoError(t, result.InjectErr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "toggleNode")
}

func TestRun_Minify(t *testing.T) {
	e, out := newTestEngine(t, twoNodes, func(cfg *Config) {
		cfg.Minify = true
	})

	result, err := e.Run()
	require.NoError(t, err)
	require.True(t, result.Injected)

	script, err := inject.Script(inject.Options{Minify: true})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), script+inject.BodyMarker)
}

func TestRun_NoClusters(t *testing.T) {
	e, _ := newTestEngine(t, "digraph G { x -> y; }", nil)

	result, err := e.Run()
	require.NoError(t, err)

	assert.Empty(t, result.Clusters)
	assert.Empty(t, result.Scene.Options.Groups)
	for _, n := range result.Scene.Nodes {
		assert.Equal(t, scene.DefaultGroup, n.Group)
	}
}

func TestRun_PageSettings(t *testing.T) {
	e, out := newTestEngine(t, twoNodes, func(cfg *Config) {
		cfg.Page = render.Page{Title: "Service map", Heading: "Services"}
	})

	_, err := e.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Service map</title>")
	assert.Contains(t, string(data), "Services</h1>")
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		e := New(Config{
			InputPath:  filepath.Join(t.TempDir(), "missing.dot"),
			OutputPath: filepath.Join(t.TempDir(), "out.html"),
		})

		_, err := e.Run()
		var loadErr *loader.LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.True(t, errors.Is(err, loader.ErrNotExist))
	})

	t.Run("malformed input", func(t *testing.T) {
		e, out := newTestEngine(t, "digraph { a -> ", nil)

		_, err := e.Run()
		var loadErr *loader.LoadError
		require.True(t, errors.As(err, &loadErr))

		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr), "no artifact on load failure")
	})

	t.Run("unwritable output", func(t *testing.T) {
		e, _ := newTestEngine(t, twoNodes, func(cfg *Config) {
			cfg.OutputPath = filepath.Join(t.TempDir(), "missing", "out.html")
		})

		_, err := e.Run()
		var renderErr *render.RenderError
		require.True(t, errors.As(err, &renderErr))
	})
}

func TestRun_InjectionFailureIsQuiet(t *testing.T) {
	var logs bytes.Buffer
	e, out := newTestEngine(t, twoNodes, func(cfg *Config) {
		cfg.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	})
	e.injector = func(string, inject.Options) error {
		return &inject.InjectionError{Path: out, Err: inject.ErrBodyMarkerNotFound}
	}

	result, err := e.Run()
	require.NoError(t, err)

	assert.False(t, result.Injected)
	require.Error(t, result.InjectErr)
	assert.ErrorIs(t, result.InjectErr, inject.ErrBodyMarkerNotFound)
	assert.FileExists(t, out)
	assert.Empty(t, logs.String(), "the caller reports injection failures")
}
