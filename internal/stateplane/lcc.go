package stateplane

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

const (
	lccMaxIterations = 15
	lccTolerance     = 1e-12
)

// lcc is an ellipsoidal Lambert Conformal Conic with two standard parallels.
// All fields are derived once at construction; the value is read-only afterwards.
type lcc struct {
	a, e   float64 // semi-major axis (m), eccentricity
	n      float64 // cone constant
	aF     float64 // a * F
	rho0   float64 // radius at the latitude of origin
	lon0   float64 // central meridian, radians
	x0, y0 float64 // false easting/northing, meters
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func degrees(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}

func newLCC(p LambertConic) (*lcc, error) {
	if p.Ellipsoid.SemiMajor <= 0 || p.Ellipsoid.InverseFlt <= 0 {
		return nil, fmt.Errorf("%w: ellipsoid %q", ErrUnsupportedFrame, p.Ellipsoid.Name)
	}
	phi1 := radians(p.StdParallel1)
	phi2 := radians(p.StdParallel2)
	phi0 := radians(p.OriginLat)
	if math.Abs(phi1+phi2) < lccTolerance {
		return nil, fmt.Errorf("%w: standard parallels opposite to the equator", ErrUnsupportedFrame)
	}

	l := &lcc{
		a:    p.Ellipsoid.SemiMajor,
		e:    p.Ellipsoid.Eccentricity(),
		lon0: radians(p.CentralMeridian),
		x0:   p.FalseEasting,
		y0:   p.FalseNorthing,
	}

	m1, t1 := l.msfn(phi1), l.tsfn(phi1)
	if math.Abs(phi1-phi2) < lccTolerance {
		l.n = math.Sin(phi1)
	} else {
		l.n = math.Log(m1/l.msfn(phi2)) / math.Log(t1/l.tsfn(phi2))
	}
	l.aF = l.a * m1 / (l.n * math.Pow(t1, l.n))
	l.rho0 = l.aF * math.Pow(l.tsfn(phi0), l.n)

	return l, nil
}

// m(phi) in Snyder's notation.
func (l *lcc) msfn(phi float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-l.e*l.e*s*s)
}

// t(phi) in Snyder's notation.
func (l *lcc) tsfn(phi float64) float64 {
	es := l.e * math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-es)/(1+es), l.e/2)
}

// Forward maps longitude/latitude in degrees to easting/northing in meters.
func (l *lcc) Forward(lon, lat float64) (x, y float64, err error) {
	phi := radians(lat)
	if math.Abs(phi) > math.Pi/2 {
		return 0, 0, fmt.Errorf("%w: latitude %v past the pole", ErrProjection, lat)
	}

	var rho float64
	if math.Abs(math.Abs(phi)-math.Pi/2) < lccTolerance {
		if phi*l.n <= 0 {
			return 0, 0, fmt.Errorf("%w: latitude %v maps to infinity", ErrProjection, lat)
		}
	} else {
		rho = l.aF * math.Pow(l.tsfn(phi), l.n)
	}

	theta := l.n * math.Remainder(radians(lon)-l.lon0, 2*math.Pi)
	x = l.x0 + rho*math.Sin(theta)
	y = l.y0 + l.rho0 - rho*math.Cos(theta)
	if !finite(x) || !finite(y) {
		return 0, 0, fmt.Errorf("%w: non-finite result for (%v, %v)", ErrProjection, lon, lat)
	}

	return x, y, nil
}

// Inverse maps easting/northing in meters to longitude/latitude in degrees.
func (l *lcc) Inverse(x, y float64) (lon, lat float64, err error) {
	dx := x - l.x0
	dy := l.rho0 - (y - l.y0)
	rho := math.Hypot(dx, dy)
	if l.n < 0 {
		rho, dx, dy = -rho, -dx, -dy
	}

	if rho == 0 {
		return degrees(l.lon0), math.Copysign(90, l.n), nil
	}

	t := math.Pow(rho/l.aF, 1/l.n)
	phi := math.Pi/2 - 2*math.Atan(t)
	converged := false
	for i := 0; i < lccMaxIterations; i++ {
		es := l.e * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-es)/(1+es), l.e/2))
		if math.Abs(next-phi) < lccTolerance {
			phi = next
			converged = true
			break
		}
		phi = next
	}
	if !converged || !finite(phi) {
		return 0, 0, fmt.Errorf("%w: latitude did not converge for (%v, %v)", ErrProjection, x, y)
	}

	lambda := math.Remainder(math.Atan2(dx, dy)/l.n+l.lon0, 2*math.Pi)
	return degrees(lambda), degrees(phi), nil
}

// Close is a no-op; the native engine holds no resources.
func (l *lcc) Close() error {
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
