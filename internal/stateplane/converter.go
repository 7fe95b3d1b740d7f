// Package stateplane converts coordinates between a geographic frame in degrees
// and a state plane zone in feet.
package stateplane

import (
	"fmt"
	"math"
	"strings"
)

// MetersToFeet scales the engine's meter output to feet.
const MetersToFeet = 3.280839895

// MaxDegrees bounds both latitude and longitude accepted by Project.
const MaxDegrees = 180.0

// Default minimum plausible magnitudes for Unproject, in feet.
const (
	DefaultMinEastingFt  = 2_000_000.0
	DefaultMinNorthingFt = 6_000_000.0
)

// InverseCheck selects how Unproject applies the minimum magnitudes.
type InverseCheck string

const (
	// CheckAll rejects a point only when both axes are below their minimum.
	CheckAll InverseCheck = "all"
	// CheckAny rejects a point when either axis is below its minimum.
	CheckAny InverseCheck = "any"
)

// Config names the reference frames and range policy of a Converter.
type Config struct {
	Datum         string
	Engine        string
	InverseCheck  InverseCheck
	EPSG          int
	MinEastingFt  float64
	MinNorthingFt float64
}

// DefaultConfig returns WGS84 to Texas North Central on the native engine.
func DefaultConfig() Config {
	return Config{
		Datum:         "WGS84",
		EPSG:          2276,
		Engine:        EngineNative,
		InverseCheck:  CheckAll,
		MinEastingFt:  DefaultMinEastingFt,
		MinNorthingFt: DefaultMinNorthingFt,
	}
}

// Geographic is a latitude/longitude pair in degrees.
type Geographic struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Projected is an easting/northing pair in feet.
type Projected struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Converter projects and unprojects between one geographic and one projected frame.
// It is immutable and safe for concurrent use.
type Converter struct {
	engine     Transformer
	geographic GeographicFrame
	projected  ProjectedFrame
	check      InverseCheck
	engineName string
	minX, minY float64
}

// New builds a Converter for the frames named in cfg.
func New(cfg Config) (*Converter, error) {
	geographic, err := LookupGeographic(cfg.Datum)
	if err != nil {
		return nil, err
	}
	projected, err := LookupProjected(cfg.EPSG)
	if err != nil {
		return nil, err
	}

	check := InverseCheck(strings.ToLower(string(cfg.InverseCheck)))
	switch check {
	case "":
		check = CheckAll
	case CheckAll, CheckAny:
	default:
		return nil, fmt.Errorf("%w: inverse check %q", ErrUnsupportedFrame, cfg.InverseCheck)
	}

	minX, minY := cfg.MinEastingFt, cfg.MinNorthingFt
	if minX < 0 || minY < 0 || !finite(minX) || !finite(minY) {
		return nil, fmt.Errorf("%w: minimum magnitudes must be finite and non-negative", ErrUnsupportedFrame)
	}

	engineName := strings.ToLower(cfg.Engine)
	if engineName == "" {
		engineName = EngineNative
	}
	engine, err := newTransformer(engineName, projected)
	if err != nil {
		return nil, err
	}

	return &Converter{
		engine:     engine,
		geographic: geographic,
		projected:  projected,
		check:      check,
		engineName: engineName,
		minX:       minX,
		minY:       minY,
	}, nil
}

// Project converts latitude/longitude in degrees to x/y in feet.
// Either magnitude above MaxDegrees yields a *RangeError matching ErrInvalidInput.
func (c *Converter) Project(lat, lon float64) (Projected, error) {
	if !finite(lat) || !finite(lon) {
		return Projected{}, &RangeError{Op: "project", A: lat, B: lon, Reason: "not a finite number"}
	}
	if math.Abs(lat) > MaxDegrees || math.Abs(lon) > MaxDegrees {
		return Projected{}, &RangeError{Op: "project", A: lat, B: lon, Reason: "magnitude above 180 degrees"}
	}

	x, y, err := c.engine.Forward(lon, lat)
	if err != nil {
		return Projected{}, fmt.Errorf("project(%v, %v): %w", lat, lon, err)
	}

	return Projected{X: x * MetersToFeet, Y: y * MetersToFeet}, nil
}

// Unproject converts x/y in feet to longitude/latitude in degrees.
// Points below the minimum plausible magnitudes yield a *RangeError.
func (c *Converter) Unproject(x, y float64) (Geographic, error) {
	if !finite(x) || !finite(y) {
		return Geographic{}, &RangeError{Op: "unproject", A: x, B: y, Reason: "not a finite number"}
	}

	lowX := math.Abs(x) < c.minX
	lowY := math.Abs(y) < c.minY
	if (c.check == CheckAny && (lowX || lowY)) || (c.check == CheckAll && lowX && lowY) {
		return Geographic{}, &RangeError{
			Op:     "unproject",
			A:      x,
			B:      y,
			Reason: fmt.Sprintf("below minimum magnitude (%s of |x| < %v, |y| < %v)", c.check, c.minX, c.minY),
		}
	}

	lon, lat, err := c.engine.Inverse(x/MetersToFeet, y/MetersToFeet)
	if err != nil {
		return Geographic{}, fmt.Errorf("unproject(%v, %v): %w", x, y, err)
	}

	return Geographic{Lat: lat, Lon: lon}, nil
}

// Frames returns the geographic and projected frames of the converter.
func (c *Converter) Frames() (GeographicFrame, ProjectedFrame) {
	return c.geographic, c.projected
}

// Engine returns the name of the projection engine in use.
func (c *Converter) Engine() string {
	return c.engineName
}

// Check returns the inverse range policy in use.
func (c *Converter) Check() InverseCheck {
	return c.check
}

// Close releases engine resources.
func (c *Converter) Close() error {
	return c.engine.Close()
}
