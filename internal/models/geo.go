package models

// Coordinates is a WGS84 coordinate pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the pair carries no position. The upstream feeds
// leave both fields empty rather than reporting partial coordinates.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}
