// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/stateplane/internal/geo"
	"github.com/woozymasta/stateplane/internal/observability"
	"github.com/woozymasta/stateplane/internal/stateplane"
)

// ProjectResponse is the body of a successful /api/project call.
type ProjectResponse struct {
	Units string  `json:"units"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	EPSG  int     `json:"epsg"`
}

// FramesResponse describes the converter reference frames.
type FramesResponse struct {
	Geographic   stateplane.GeographicFrame `json:"geographic"`
	Projected    stateplane.ProjectedFrame  `json:"projected"`
	MetersToFeet float64                    `json:"meters_to_feet"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleProject serves GET /api/project?lat=..&lon=..
func (s *ServerContext) HandleProject(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	lat, lon, err := queryPair(r, "lat", "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	p, err := s.Converter.Project(lat, lon)
	s.Metrics.Observe(observability.DirectionProject, time.Since(start), err)
	if err != nil {
		s.writeConversionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "application/json", ProjectResponse{
		X:     p.X,
		Y:     p.Y,
		EPSG:  s.Projected.EPSG,
		Units: s.Projected.Units,
	})
}

// HandleUnproject serves GET /api/unproject?x=..&y=.. as a GeoJSON Point feature.
func (s *ServerContext) HandleUnproject(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	x, y, err := queryPair(r, "x", "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	g, err := s.Converter.Unproject(x, y)
	s.Metrics.Observe(observability.DirectionUnproject, time.Since(start), err)
	if err != nil {
		s.writeConversionError(w, err)
		return
	}

	feature := geo.NewPoint(g.Lon, g.Lat, map[string]interface{}{
		"x":    x,
		"y":    y,
		"epsg": s.Projected.EPSG,
	})
	writeJSON(w, http.StatusOK, "application/geo+json", feature)
}

// HandleFrames serves the reference frame description.
func (s *ServerContext) HandleFrames(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	writeJSON(w, http.StatusOK, "application/json", FramesResponse{
		Geographic:   s.Geographic,
		Projected:    s.Projected,
		MetersToFeet: stateplane.MetersToFeet,
	})
}

func (s *ServerContext) writeConversionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stateplane.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, stateplane.ErrProjection):
		log.Warn().Err(err).Msg("Projection failed")
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		log.Error().Err(err).Msg("Conversion failed")
		writeError(w, http.StatusInternalServerError, err)
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

// queryPair parses two required float query parameters.
func queryPair(r *http.Request, a, b string) (float64, float64, error) {
	q := r.URL.Query()
	parse := func(name string) (float64, error) {
		raw := q.Get(name)
		if raw == "" {
			return 0, fmt.Errorf("missing query parameter %q", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("query parameter %q: %w", name, err)
		}
		return v, nil
	}

	va, err := parse(a)
	if err != nil {
		return 0, 0, err
	}
	vb, err := parse(b)
	if err != nil {
		return 0, 0, err
	}
	return va, vb, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, "application/json", errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}
