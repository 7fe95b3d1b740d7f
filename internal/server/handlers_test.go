package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/stateplane/internal/geo"
	"github.com/woozymasta/stateplane/internal/observability"
	"github.com/woozymasta/stateplane/internal/stateplane"
)

func newTestServer(t *testing.T) (*ServerContext, http.Handler) {
	t.Helper()

	conv, err := stateplane.New(stateplane.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conv.Close() })

	metrics, err := observability.NewConversionCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	s := NewServerContext(conv, metrics)
	return s, s.Routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandleProject(t *testing.T) {
	s, h := newTestServer(t)

	rr := get(t, h, "/api/project?lat=32.832521&lon=-96.828295")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ProjectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 2481939.93, resp.X, 0.01)
	assert.InDelta(t, 6989916.20, resp.Y, 0.01)
	assert.Equal(t, 2276, resp.EPSG)
	assert.Equal(t, "ft", resp.Units)

	ok := testutil.ToFloat64(s.Metrics.Conversions.WithLabelValues(observability.DirectionProject, observability.ResultOK))
	assert.Equal(t, 1.0, ok)
}

func TestHandleUnprojectReturnsGeoJSON(t *testing.T) {
	_, h := newTestServer(t)

	rr := get(t, h, "/api/unproject?x=2481939.934525765&y=6989916.200679892")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/geo+json", rr.Header().Get("Content-Type"))

	var feature geo.Feature
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &feature))
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "Point", feature.Geometry.Type)
	require.Len(t, feature.Geometry.Coordinates, 2)
	assert.InDelta(t, -96.828295, feature.Geometry.Coordinates[0], 1e-6)
	assert.InDelta(t, 32.832521, feature.Geometry.Coordinates[1], 1e-6)
	assert.EqualValues(t, 2276, feature.Properties["epsg"])
}

func TestHandleInvalidInput(t *testing.T) {
	s, h := newTestServer(t)

	cases := map[string]string{
		"out of range":  "/api/project?lat=200&lon=0",
		"missing":       "/api/project?lat=1",
		"unparsable":    "/api/project?lat=abc&lon=0",
		"nan":           "/api/project?lat=NaN&lon=0",
		"small inverse": "/api/unproject?x=100&y=100",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			rr := get(t, h, target)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}

	invalid := testutil.ToFloat64(s.Metrics.Conversions.WithLabelValues(observability.DirectionProject, observability.ResultInvalid))
	assert.Equal(t, 2.0, invalid)
}

func TestHandleProjectionFailure(t *testing.T) {
	_, h := newTestServer(t)

	rr := get(t, h, "/api/project?lat=120&lon=0")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandleFrames(t *testing.T) {
	_, h := newTestServer(t)

	rr := get(t, h, "/api/frames")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp FramesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "WGS84", resp.Geographic.Datum)
	assert.Equal(t, 2276, resp.Projected.EPSG)
	assert.Equal(t, stateplane.MetersToFeet, resp.MetersToFeet)
}

func TestMethodNotAllowed(t *testing.T) {
	_, h := newTestServer(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/project?lat=1&lon=1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
}

func TestMetricsRoute(t *testing.T) {
	_, h := newTestServer(t)

	get(t, h, "/api/project?lat=32.8&lon=-96.8")
	rr := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "stateplane_conversions_total")
}
