package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/observability"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

const sampleCSV = `from_id,topic_from,topic_name_from,from_text,to_id,topic_to,topic_name_to,to_text
i1,3,Law,Sciences Po,s1,7,Elections,Voting
i1,3,Law,Sciences Po,s2,7,Elections,Parties
i2,4,Economics,LSE,s1,7,Elections,Voting
i3,4,Economics,Bocconi,s9,8,Trade,Tariffs
`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	srv := New(opts)
	err := srv.Load(context.Background(), pipeline.NewRunner(nil, nil, nil), pipeline.Options{
		Source:     path,
		Iterations: 50,
	})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestStatusWhileLoading(t *testing.T) {
	srv := New(Options{})

	w := do(t, srv, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[StatusResponse](t, w)
	assert.True(t, status.Loading)
	assert.Equal(t, srv.Session(), status.Session)
	assert.NotEmpty(t, status.Session)

	for _, path := range []string{"/graph", "/legend", "/render.svg"} {
		w := do(t, srv, http.MethodGet, path)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
	w = do(t, srv, http.MethodPost, "/events/stage")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusAfterFailedLoad(t *testing.T) {
	srv := New(Options{})
	err := srv.Load(context.Background(), pipeline.NewRunner(nil, nil, nil), pipeline.Options{
		Source: filepath.Join(t.TempDir(), "missing.csv"),
	})
	require.Error(t, err)

	status := decode[StatusResponse](t, do(t, srv, http.MethodGet, "/status"))
	assert.False(t, status.Loading)
	assert.NotEmpty(t, status.Error)

	w := do(t, srv, http.MethodGet, "/graph")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode[errorResponse](t, w)
	assert.Equal(t, string(errors.ErrCodeResourceUnavailable), body.Code)
}

func TestStatusReady(t *testing.T) {
	srv := newTestServer(t, Options{})

	status := decode[StatusResponse](t, do(t, srv, http.MethodGet, "/status"))
	assert.False(t, status.Loading)
	assert.Equal(t, "unfiltered", status.State)
	assert.Equal(t, 6, status.Nodes)
	assert.Equal(t, 6, status.Visible)
}

func TestEvents(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		event   string
		state   string
		visible []string
	}{
		{"click", "/events/click/i1", "node_click:i1", "neighbor_isolated", []string{"i1", "s1", "s2"}},
		{"click unknown", "/events/click/nobody", "node_click:nobody", "unfiltered", []string{"i1", "s1", "s2", "i2", "i3", "s9"}},
		{"double click", "/events/dblclick/s1", "node_double_click:s1", "topic_isolated", []string{"s1", "s2"}},
		{"legend", "/events/legend/4", "legend_row_click:4", "topic_isolated", []string{"i2", "i3"}},
		{"stage", "/events/stage", "stage_click", "unfiltered", []string{"i1", "s1", "s2", "i2", "i3", "s9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, Options{})

			w := do(t, srv, http.MethodPost, tt.path)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			resp := decode[EventResponse](t, w)
			assert.Equal(t, tt.event, resp.Event)
			assert.Equal(t, tt.state, resp.State)
			assert.Equal(t, tt.visible, resp.Visible)
		})
	}
}

func TestEventsRequirePost(t *testing.T) {
	srv := newTestServer(t, Options{})
	w := do(t, srv, http.MethodGet, "/events/stage")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGraphReflectsSelection(t *testing.T) {
	srv := newTestServer(t, Options{})

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/events/click/i2").Code)

	w := do(t, srv, http.MethodGet, "/graph")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	l, err := graph.UnmarshalLayout(w.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, l.Nodes, 6)
	assert.Equal(t, 4, l.HiddenCount())
	for _, n := range l.Nodes {
		assert.Equal(t, n.ID != "i2" && n.ID != "s1", n.Hidden, n.ID)
	}
}

func TestLegend(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, http.MethodGet, "/legend")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]attr.LegendRow](t, w)
	require.Len(t, rows, 4)

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.TopicID
	}
	assert.Equal(t, []string{"3", "4", "7", "8"}, ids)
	assert.Equal(t, "Law", rows[0].Name)
	assert.Equal(t, attr.ColorOf("3"), rows[0].Color)
}

func TestRenderSVG(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, http.MethodGet, "/render.svg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Body.String(), "<svg"))
}

func TestMetrics(t *testing.T) {
	t.Cleanup(observability.Reset)
	hooks := observability.NewPrometheusHooks(prometheus.NewRegistry())
	hooks.Install()

	srv := newTestServer(t, Options{Metrics: hooks.Handler()})
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/events/stage").Code)

	w := do(t, srv, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "topicnet_")
}

func TestMetricsNotMounted(t *testing.T) {
	srv := New(Options{})
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/metrics").Code)
}
