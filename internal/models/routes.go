package models

// Route is a BIMS bus line record (busInfo). Category is the upstream
// bustype label (ordinary, express, seat, village and so on).
type Route struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	Category   string `json:"category,omitempty"`
	StartPoint string `json:"startPoint,omitempty"`
	EndPoint   string `json:"endPoint,omitempty"`
	Headway    string `json:"headway,omitempty"`
	FirstTime  string `json:"firstTime,omitempty"`
	LastTime   string `json:"lastTime,omitempty"`
}

// RouteStop is one entry of a route's stop sequence (busInfoByRouteId).
// VehicleNo is set only while a live vehicle occupies the stop.
type RouteStop struct {
	NodeID    string  `json:"nodeId"`
	Name      string  `json:"name"`
	ARS       string  `json:"ars,omitempty"`
	Index     int     `json:"index"`
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
	VehicleNo string  `json:"vehicleNo,omitempty"`
	LowFloor  bool    `json:"lowFloor,omitempty"`
	LineNo    string  `json:"lineNo,omitempty"`
}

// Occupied reports whether a live vehicle is currently at this stop.
func (rs RouteStop) Occupied() bool {
	return rs.VehicleNo != ""
}
