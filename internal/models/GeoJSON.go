package models

// FeatureCollection is a GeoJSON document of sight points for map views.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}

func NewFeatureCollection(sights []*Sight) *FeatureCollection {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]*Feature, 0, len(sights)),
	}
	for _, s := range sights {
		fc.Features = append(fc.Features, &Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{s.Lng, s.Lat},
			},
			Properties: map[string]any{
				"id":          s.ID,
				"name":        s.Name,
				"kind":        s.Kind,
				"description": s.Description,
				"imageName":   s.ImageName,
			},
		})
	}
	return fc
}
