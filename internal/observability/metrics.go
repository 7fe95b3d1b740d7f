// Package observability exposes Prometheus metrics for coordinate conversions.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/woozymasta/stateplane/internal/stateplane"
)

// Conversion directions used as metric labels.
const (
	DirectionProject   = "project"
	DirectionUnproject = "unproject"
)

// Conversion results used as metric labels.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// ConversionCollector records conversion counts and latencies.
type ConversionCollector struct {
	gatherer prometheus.Gatherer

	Conversions *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewConversionCollector registers conversion metrics against the provided registerer.
func NewConversionCollector(reg prometheus.Registerer) (*ConversionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stateplane_conversions_total",
		Help: "Coordinate conversions by direction and result.",
	}, []string{"direction", "result"})
	conversions, err := registerCounterVec(reg, conversions, "stateplane_conversions_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stateplane_conversion_duration_seconds",
		Help:    "Duration of coordinate conversions by direction.",
		Buckets: []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3},
	}, []string{"direction"})
	duration, err = registerHistogramVec(reg, duration, "stateplane_conversion_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &ConversionCollector{
		gatherer:    gatherer,
		Conversions: conversions,
		Duration:    duration,
	}, nil
}

// Observe records one conversion and classifies its error.
func (c *ConversionCollector) Observe(direction string, d time.Duration, err error) {
	if c == nil {
		return
	}
	c.Conversions.WithLabelValues(direction, Result(err)).Inc()
	c.Duration.WithLabelValues(direction).Observe(d.Seconds())
}

// Result maps a conversion error to its metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, stateplane.ErrInvalidInput):
		return ResultInvalid
	default:
		return ResultError
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ConversionCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
