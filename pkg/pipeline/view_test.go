package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/topicnet/pkg/filter"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
)

func TestRunnerView(t *testing.T) {
	opts := jsonOpts(t)
	view, err := NewRunner(nil, nil, nil).View(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 5, view.Rows)
	assert.Equal(t, 1, view.Skipped)
	assert.Len(t, view.Positions, 6)
	assert.Equal(t, filter.Unfiltered, view.Controller.State())

	require.NoError(t, view.Dispatch(context.Background(), filter.Click("i2")))
	l := view.Layout()
	assert.Equal(t, 4, l.HiddenCount())
	assert.Equal(t, []string{"s1", "i2"}, view.Controller.Visible())

	dot := view.DOT(nodelink.Options{})
	assert.Contains(t, dot, `"i2" -- "s1"`)
	assert.False(t, strings.Contains(dot, `"i1"`), "hidden nodes must not be drawn")

	require.NoError(t, view.Dispatch(context.Background(), filter.Stage()))
	assert.Equal(t, 0, view.Layout().HiddenCount())
}

func TestViewFromLayout(t *testing.T) {
	opts := jsonOpts(t)
	view, err := NewRunner(nil, nil, nil).View(context.Background(), opts)
	require.NoError(t, err)
	require.NoError(t, view.Dispatch(context.Background(), filter.Legend("7")))

	restored, err := ViewFromLayout(view.Layout())
	require.NoError(t, err)
	assert.Equal(t, view.Positions, restored.Positions)
	assert.Equal(t, 2, restored.Dataset.Graph.VisibleCount())

	require.NoError(t, restored.Dispatch(context.Background(), filter.Stage()))
	assert.Equal(t, 6, restored.Dataset.Graph.VisibleCount())
}
