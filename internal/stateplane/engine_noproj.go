//go:build !proj

package stateplane

import "fmt"

// ProjAvailable reports whether the PROJ engine is compiled in.
const ProjAvailable = false

func newProjTransformer(frame ProjectedFrame) (Transformer, error) {
	return nil, fmt.Errorf("%w: %s: engine %q requires the proj build tag", ErrUnsupportedFrame, frame.Code(), EngineProj)
}
