//go:build proj

package stateplane

import (
	"fmt"
	"sync"

	"github.com/pebbe/proj/v5"
)

// ProjAvailable reports whether the PROJ engine is compiled in.
const ProjAvailable = true

// projTransformer delegates to the PROJ library through cgo.
// A PROJ context is not safe for concurrent use, so calls are serialized.
type projTransformer struct {
	mu  sync.Mutex
	ctx *proj.Context
	pj  *proj.PJ
}

func newProjTransformer(frame ProjectedFrame) (Transformer, error) {
	definition := "+proj=pipeline" +
		" +step +proj=unitconvert +xy_in=deg +xy_out=rad" +
		" +step " + frame.Conic.ProjDefinition()

	ctx := proj.NewContext()
	pj, err := ctx.Create(definition)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFrame, frame.Code(), err)
	}

	return &projTransformer{ctx: ctx, pj: pj}, nil
}

func (p *projTransformer) Forward(lon, lat float64) (x, y float64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	x, y, _, _, err = p.pj.Trans(proj.Fwd, lon, lat, 0, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrProjection, err)
	}
	if !finite(x) || !finite(y) {
		return 0, 0, fmt.Errorf("%w: non-finite result for (%v, %v)", ErrProjection, lon, lat)
	}
	return x, y, nil
}

func (p *projTransformer) Inverse(x, y float64) (lon, lat float64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	lon, lat, _, _, err = p.pj.Trans(proj.Inv, x, y, 0, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrProjection, err)
	}
	if !finite(lon) || !finite(lat) {
		return 0, 0, fmt.Errorf("%w: non-finite result for (%v, %v)", ErrProjection, x, y)
	}
	return lon, lat, nil
}

func (p *projTransformer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pj.Close()
	p.ctx.Close()
	return nil
}
