// Package geo holds the GeoJSON structures used to publish geographic results.
package geo

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   Geometry               `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature. Only Point is produced here.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// NewFeatureCollection returns an empty collection with room for n features.
func NewFeatureCollection(n int) FeatureCollection {
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, n),
	}
}

// NewPoint builds a Point feature. Coordinates are stored lon first.
func NewPoint(lon, lat float64, props map[string]interface{}) Feature {
	if props == nil {
		props = map[string]interface{}{}
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
		Properties: props,
	}
}

// Add appends a feature to the collection.
func (fc *FeatureCollection) Add(f Feature) {
	fc.Features = append(fc.Features, f)
}
