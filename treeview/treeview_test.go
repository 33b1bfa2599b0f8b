package treeview_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/proclog/palette"
	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/registry"
	"go.jacobcolvin.com/proclog/stringtest"
	"go.jacobcolvin.com/proclog/style"
	"go.jacobcolvin.com/proclog/treeview"
)

func trimmedLines(s string) []string {
	lines := stringtest.Lines(s)
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}

	return lines
}

func newForest(t *testing.T) (*registry.Service, process.ID) {
	t.Helper()

	svc := registry.New(process.NewDatabase(), palette.New(style.Docker))

	api, err := svc.RegisterMain("API")
	require.NoError(t, err)

	worker, err := svc.RegisterSub("Worker", api)
	require.NoError(t, err)

	_, err = svc.RegisterSub("Job", worker)
	require.NoError(t, err)

	_, err = svc.RegisterSub("Cache", api)
	require.NoError(t, err)

	_, err = svc.RegisterMain("DB")
	require.NoError(t, err)

	return svc, worker
}

func TestRender(t *testing.T) {
	t.Parallel()

	svc, _ := newForest(t)

	got := treeview.Render(svc.Database(), treeview.Options{})
	assert.Equal(t, []string{
		"API (API_1)",
		"├── Worker (Worker_1)",
		"│   └── Job (Job_1)",
		"└── Cache (Cache_1)",
		"DB (DB_1)",
	}, trimmedLines(got))
}

func TestRenderRounded(t *testing.T) {
	t.Parallel()

	svc, _ := newForest(t)

	got := treeview.Render(svc.Database(), treeview.Options{Rounded: true})
	assert.Contains(t, got, "╰── Cache (Cache_1)")
}

func TestRenderColor(t *testing.T) {
	t.Parallel()

	svc, _ := newForest(t)

	got := treeview.Render(svc.Database(), treeview.Options{Color: true, Scheme: style.Light})
	assert.Contains(t, got, style.Apply("API (API_1)", style.Blue, nil, style.Light))
	assert.Contains(t, got, style.Apply("DB (DB_1)", style.Green, nil, style.Light))

	// Every node is present once colors are stripped.
	plain := stringtest.Strip(got)
	for _, label := range []string{"API (API_1)", "Worker (Worker_1)", "Job (Job_1)", "Cache (Cache_1)", "DB (DB_1)"} {
		assert.Equal(t, 1, strings.Count(plain, label), label)
	}
}

func TestRenderTree(t *testing.T) {
	t.Parallel()

	svc, worker := newForest(t)

	got, ok := treeview.RenderTree(svc.Database(), worker, treeview.Options{})
	require.True(t, ok)
	assert.Equal(t, "API (API_1)", trimmedLines(got)[0])
	assert.NotContains(t, got, "DB (DB_1)")

	_, ok = treeview.RenderTree(svc.Database(), "ghost_1", treeview.Options{})
	assert.False(t, ok)
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, treeview.Render(process.NewDatabase(), treeview.Options{}))
}
