package stateplane

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texasNorthCentral(t *testing.T) *lcc {
	t.Helper()
	frame, err := LookupProjected(2276)
	require.NoError(t, err)
	l, err := newLCC(frame.Conic)
	require.NoError(t, err)
	return l
}

func TestLCCOriginMapsToFalseOrigin(t *testing.T) {
	l := texasNorthCentral(t)

	x, y, err := l.Forward(-98.5, 31+40.0/60)
	require.NoError(t, err)
	assert.InDelta(t, 600000, x, 1e-6)
	assert.InDelta(t, 2000000, y, 1e-6)

	lon, lat, err := l.Inverse(600000, 2000000)
	require.NoError(t, err)
	assert.InDelta(t, -98.5, lon, 1e-9)
	assert.InDelta(t, 31+40.0/60, lat, 1e-9)
}

func TestLCCMeters(t *testing.T) {
	l := texasNorthCentral(t)

	x, y, err := l.Forward(-96.828295, 32.832521)
	require.NoError(t, err)
	assert.InDelta(t, 2481939.934525765/MetersToFeet, x, 1e-3)
	assert.InDelta(t, 6989916.200679892/MetersToFeet, y, 1e-3)
}

func TestLCCNorthPoleIsApex(t *testing.T) {
	l := texasNorthCentral(t)

	x, y, err := l.Forward(-98.5, 90)
	require.NoError(t, err)
	assert.InDelta(t, 600000, x, 1e-6)
	assert.InDelta(t, 2000000+l.rho0, y, 1e-6)

	_, lat, err := l.Inverse(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 90, lat, 1e-9)
}

func TestLCCSingleParallel(t *testing.T) {
	l, err := newLCC(LambertConic{
		Ellipsoid:       GRS80,
		StdParallel1:    40,
		StdParallel2:    40,
		OriginLat:       40,
		CentralMeridian: 0,
	})
	require.NoError(t, err)

	x, y, err := l.Forward(2, 41)
	require.NoError(t, err)
	lon, lat, err := l.Inverse(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2, lon, 1e-9)
	assert.InDelta(t, 41, lat, 1e-9)
}

func TestLCCRejectsDegenerateCones(t *testing.T) {
	_, err := newLCC(LambertConic{Ellipsoid: GRS80, StdParallel1: 30, StdParallel2: -30})
	require.ErrorIs(t, err, ErrUnsupportedFrame)

	_, err = newLCC(LambertConic{StdParallel1: 30, StdParallel2: 40})
	require.ErrorIs(t, err, ErrUnsupportedFrame)
}

func TestProjDefinition(t *testing.T) {
	frame, err := LookupProjected(2276)
	require.NoError(t, err)

	def := frame.Conic.ProjDefinition()
	assert.True(t, strings.HasPrefix(def, "+proj=lcc "))
	assert.Contains(t, def, "+lon_0=-98.5")
	assert.Contains(t, def, "+x_0=600000")
	assert.Contains(t, def, "+y_0=2000000")
	assert.Contains(t, def, "+rf=298.257222101")
	assert.Contains(t, def, "+units=m")
}

func TestLookupGeographicIsCaseInsensitive(t *testing.T) {
	frame, err := LookupGeographic(" wgs84 ")
	require.NoError(t, err)
	assert.Equal(t, WGS84Ellipsoid, frame.Ellipsoid)
}
