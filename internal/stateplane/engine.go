package stateplane

import (
	"fmt"
	"io"
)

// Engine names accepted by Config.Engine.
const (
	EngineNative = "native"
	EngineProj   = "proj"
)

// Transformer is the geodesy collaborator behind a Converter.
// Forward takes longitude first and returns meters; Inverse returns longitude first.
type Transformer interface {
	Forward(lon, lat float64) (x, y float64, err error)
	Inverse(x, y float64) (lon, lat float64, err error)
	io.Closer
}

func newTransformer(engine string, frame ProjectedFrame) (Transformer, error) {
	switch engine {
	case "", EngineNative:
		l, err := newLCC(frame.Conic)
		if err != nil {
			return nil, err
		}
		return l, nil
	case EngineProj:
		return newProjTransformer(frame)
	default:
		return nil, fmt.Errorf("%w: engine %q", ErrUnsupportedFrame, engine)
	}
}
