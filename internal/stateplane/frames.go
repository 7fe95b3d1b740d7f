package stateplane

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ellipsoid describes a reference ellipsoid by semi-major axis and inverse flattening.
type Ellipsoid struct {
	Name       string  `json:"name" yaml:"name"`
	SemiMajor  float64 `json:"semi_major_m" yaml:"semi_major_m"`
	InverseFlt float64 `json:"inverse_flattening" yaml:"inverse_flattening"`
}

// Eccentricity returns the first eccentricity of the ellipsoid.
func (e Ellipsoid) Eccentricity() float64 {
	f := 1 / e.InverseFlt
	return math.Sqrt(f * (2 - f))
}

var (
	// GRS80 is the ellipsoid of the NAD83 datum used by the state plane zones.
	GRS80 = Ellipsoid{Name: "GRS80", SemiMajor: 6378137.0, InverseFlt: 298.257222101}
	// WGS84Ellipsoid is the ellipsoid of the WGS84 datum.
	WGS84Ellipsoid = Ellipsoid{Name: "WGS84", SemiMajor: 6378137.0, InverseFlt: 298.257223563}
)

// GeographicFrame is a latitude/longitude frame in degrees on a named datum.
type GeographicFrame struct {
	Datum     string    `json:"datum" yaml:"datum"`
	Ellipsoid Ellipsoid `json:"ellipsoid" yaml:"ellipsoid"`
}

// LambertConic holds the defining parameters of a two-parallel Lambert Conformal Conic.
// Angles are degrees, offsets are meters.
type LambertConic struct {
	Ellipsoid       Ellipsoid `json:"ellipsoid" yaml:"ellipsoid"`
	StdParallel1    float64   `json:"lat_1" yaml:"lat_1"`
	StdParallel2    float64   `json:"lat_2" yaml:"lat_2"`
	OriginLat       float64   `json:"lat_0" yaml:"lat_0"`
	CentralMeridian float64   `json:"lon_0" yaml:"lon_0"`
	FalseEasting    float64   `json:"x_0" yaml:"x_0"`
	FalseNorthing   float64   `json:"y_0" yaml:"y_0"`
}

// ProjDefinition renders the parameters as a PROJ string with meter units.
func (l LambertConic) ProjDefinition() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	return strings.Join([]string{
		"+proj=lcc",
		"+lat_1=" + f(l.StdParallel1),
		"+lat_2=" + f(l.StdParallel2),
		"+lat_0=" + f(l.OriginLat),
		"+lon_0=" + f(l.CentralMeridian),
		"+x_0=" + f(l.FalseEasting),
		"+y_0=" + f(l.FalseNorthing),
		"+a=" + f(l.Ellipsoid.SemiMajor),
		"+rf=" + f(l.Ellipsoid.InverseFlt),
		"+units=m",
		"+no_defs",
	}, " ")
}

// ProjectedFrame is a state plane zone identified by its EPSG code.
// The engine works in meters; the converter publishes feet.
type ProjectedFrame struct {
	Name  string       `json:"name" yaml:"name"`
	Datum string       `json:"datum" yaml:"datum"`
	Units string       `json:"units" yaml:"units"`
	Conic LambertConic `json:"lcc" yaml:"lcc"`
	EPSG  int          `json:"epsg" yaml:"epsg"`
}

// Code returns the frame identifier in "EPSG:nnnn" form.
func (p ProjectedFrame) Code() string {
	return "EPSG:" + strconv.Itoa(p.EPSG)
}

var geographicFrames = map[string]GeographicFrame{
	"WGS84": {Datum: "WGS84", Ellipsoid: WGS84Ellipsoid},
}

// NAD83 / Texas North Central (ftUS). The plane is defined in meters and
// published in feet by the converter.
var projectedFrames = map[int]ProjectedFrame{
	2276: {
		EPSG:  2276,
		Name:  "NAD83 / Texas North Central (ftUS)",
		Datum: "NAD83",
		Units: "ft",
		Conic: LambertConic{
			Ellipsoid:       GRS80,
			StdParallel1:    33 + 58.0/60,
			StdParallel2:    32 + 8.0/60,
			OriginLat:       31 + 40.0/60,
			CentralMeridian: -98.5,
			FalseEasting:    600000,
			FalseNorthing:   2000000,
		},
	},
}

// LookupGeographic returns the geographic frame registered for a datum name.
func LookupGeographic(datum string) (GeographicFrame, error) {
	frame, ok := geographicFrames[strings.ToUpper(strings.TrimSpace(datum))]
	if !ok {
		return GeographicFrame{}, fmt.Errorf("%w: datum %q", ErrUnsupportedFrame, datum)
	}
	return frame, nil
}

// LookupProjected returns the projected frame registered for an EPSG code.
func LookupProjected(epsg int) (ProjectedFrame, error) {
	frame, ok := projectedFrames[epsg]
	if !ok {
		return ProjectedFrame{}, fmt.Errorf("%w: EPSG:%d", ErrUnsupportedFrame, epsg)
	}
	return frame, nil
}
