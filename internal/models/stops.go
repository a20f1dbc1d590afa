package models

import "strings"

// Stop is a BIMS stop record (busStopList), keyed by the plain numeric
// bstopid. Latitude arrives in gpsy and longitude in gpsx.
type Stop struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ARS      string  `json:"ars,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	StopType string  `json:"stopType,omitempty"`
}

// NodeStop is a TAGO stop record (getCrdntPrxmtSttnList), keyed by the
// compound alphanumeric node id. A NodeStop is never merged with a Stop:
// when an id lookup fails the two are cross-referenced by name only.
type NodeStop struct {
	NodeID   string  `json:"nodeId"`
	NodeNo   string  `json:"nodeNo,omitempty"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	CityCode int     `json:"cityCode,omitempty"`
}

// StopNumber strips the alphabetic prefix from the compound node id, e.g.
// "BSB123456" -> "123456". The digits match the BIMS bstopid space.
func (s NodeStop) StopNumber() string {
	var b strings.Builder
	for _, r := range s.NodeID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasCoordinates reports whether the record carries a usable position.
func (s NodeStop) HasCoordinates() bool {
	return s.Lat != 0 && s.Lon != 0
}

// Position returns the stop's coordinate pair.
func (s NodeStop) Position() Coordinates {
	return Coordinates{Lat: s.Lat, Lon: s.Lon}
}
