package server

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/stateplane/internal/observability"
	"github.com/woozymasta/stateplane/internal/stateplane"
)

// Projector is the conversion surface the handlers depend on.
type Projector interface {
	Project(lat, lon float64) (stateplane.Projected, error)
	Unproject(x, y float64) (stateplane.Geographic, error)
	Frames() (stateplane.GeographicFrame, stateplane.ProjectedFrame)
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Converter  Projector
	Metrics    *observability.ConversionCollector
	Geographic stateplane.GeographicFrame
	Projected  stateplane.ProjectedFrame
}

// NewServerContext captures the converter frames for the handlers.
// A nil metrics collector disables conversion metrics.
func NewServerContext(conv Projector, metrics *observability.ConversionCollector) *ServerContext {
	geographic, projected := conv.Frames()

	log.Info().
		Str("datum", geographic.Datum).
		Str("projected", projected.Code()).
		Str("projected_name", projected.Name).
		Msg("Server context initialized")

	return &ServerContext{
		Converter:  conv,
		Metrics:    metrics,
		Geographic: geographic,
		Projected:  projected,
	}
}
