package models

// Prediction is a single arrival prediction for a route at a stop.
type Prediction struct {
	Minutes   Minutes `json:"minutes"`
	StopsAway int     `json:"stopsAway,omitempty"`
	LowFloor  bool    `json:"lowFloor,omitempty"`
}

// Arrival is the per-route arrival forecast for a stop, with up to two
// ordered predictions: the next vehicle and the one after it. Second is nil
// when the feed reported no second vehicle.
type Arrival struct {
	RouteID  string      `json:"routeId"`
	LineNo   string      `json:"lineNo"`
	Category string      `json:"category,omitempty"`
	First    *Prediction `json:"first,omitempty"`
	Second   *Prediction `json:"second,omitempty"`
}

// HasSecond reports whether the trailing prediction is meaningful, which
// requires its minutes field to be present.
func (a Arrival) HasSecond() bool {
	return a.Second != nil && !a.Second.Minutes.IsZero()
}
