package opendata

import (
	"context"
	"errors"
	"net/url"

	"github.com/jinsol-dev/busango/internal/models"
)

// ErrNotFound is returned by single-record lookups when the upstream list
// came back empty.
var ErrNotFound = errors.New("opendata: no matching record")

// StopQuery narrows a BIMS stop search by display name and/or ARS number.
// An empty query lists the first page of all stops.
type StopQuery struct {
	Name string
	ARS  string
}

// StopList queries the BIMS busStopList endpoint.
func (c *Client) StopList(ctx context.Context, q StopQuery) ([]models.Stop, error) {
	params := url.Values{
		"pageNo":    {"1"},
		"numOfRows": {"100"},
	}
	if q.Name != "" {
		params.Set("bstopnm", q.Name)
	}
	if q.ARS != "" {
		params.Set("arsno", q.ARS)
	}

	items, err := c.get(ctx, c.cfg.BIMSBaseURL, "busStopList", params)
	if err != nil {
		return nil, err
	}

	stops := make([]models.Stop, 0, len(items))
	for _, it := range items {
		stops = append(stops, stopFromItem(it))
	}
	return stops, nil
}

// RoutesByNumber queries busInfo by line number. Partial matches come back
// in upstream order, e.g. "1" also lists 10, 100 and so on.
func (c *Client) RoutesByNumber(ctx context.Context, lineNo string) ([]models.Route, error) {
	items, err := c.get(ctx, c.cfg.BIMSBaseURL, "busInfo", url.Values{"lineno": {lineNo}})
	if err != nil {
		return nil, err
	}

	routes := make([]models.Route, 0, len(items))
	for _, it := range items {
		routes = append(routes, routeFromItem(it))
	}
	return routes, nil
}

// RouteByID queries busInfo by line id and returns the single matching
// route, or ErrNotFound.
func (c *Client) RouteByID(ctx context.Context, lineID string) (models.Route, error) {
	items, err := c.get(ctx, c.cfg.BIMSBaseURL, "busInfo", url.Values{"lineid": {lineID}})
	if err != nil {
		return models.Route{}, err
	}
	if len(items) == 0 {
		return models.Route{}, ErrNotFound
	}
	return routeFromItem(items[0]), nil
}

// RouteStops queries busInfoByRouteId: the route's stop sequence, where an
// entry carries a vehicle number while a live vehicle occupies that stop.
func (c *Client) RouteStops(ctx context.Context, lineID string) ([]models.RouteStop, error) {
	items, err := c.get(ctx, c.cfg.BIMSBaseURL, "busInfoByRouteId", url.Values{"lineid": {lineID}})
	if err != nil {
		return nil, err
	}

	stops := make([]models.RouteStop, 0, len(items))
	for _, it := range items {
		stops = append(stops, routeStopFromItem(it))
	}
	return stops, nil
}

// ArrivalsByStopID queries stopArrByBstopid for a stop's per-route arrival
// forecasts.
func (c *Client) ArrivalsByStopID(ctx context.Context, stopID string) ([]models.Arrival, error) {
	return c.arrivals(ctx, "stopArrByBstopid", url.Values{"bstopid": {stopID}})
}

// ArrivalsByARS queries bitArrByArsno, the same forecast keyed by the
// stop's ARS number.
func (c *Client) ArrivalsByARS(ctx context.Context, ars string) ([]models.Arrival, error) {
	return c.arrivals(ctx, "bitArrByArsno", url.Values{"arsno": {ars}})
}

func (c *Client) arrivals(ctx context.Context, endpoint string, params url.Values) ([]models.Arrival, error) {
	items, err := c.get(ctx, c.cfg.BIMSBaseURL, endpoint, params)
	if err != nil {
		return nil, err
	}

	arrivals := make([]models.Arrival, 0, len(items))
	for _, it := range items {
		arrivals = append(arrivals, arrivalFromItem(it))
	}
	return arrivals, nil
}

// Field mappings per endpoint. Latitude is gpsy and longitude gpsx in the
// BIMS stop list; the route-stop endpoint uses lat and (misspelled
// upstream) lin.

func stopFromItem(it item) models.Stop {
	return models.Stop{
		ID:       it.text("bstopid"),
		Name:     it.text("bstopnm"),
		ARS:      it.text("arsno"),
		Lat:      it.float("gpsy"),
		Lon:      it.float("gpsx"),
		StopType: it.text("stoptype"),
	}
}

func routeFromItem(it item) models.Route {
	return models.Route{
		ID:         it.text("lineid"),
		Number:     it.text("buslinenum"),
		Category:   it.text("bustype"),
		StartPoint: it.text("startpoint"),
		EndPoint:   it.text("endpoint"),
		Headway:    it.text("headway"),
		FirstTime:  it.text("firsttime"),
		LastTime:   it.text("lasttime"),
	}
}

func routeStopFromItem(it item) models.RouteStop {
	return models.RouteStop{
		NodeID:    it.text("nodeid"),
		Name:      it.text("bstopnm"),
		ARS:       it.text("arsno"),
		Index:     it.int("bstopidx"),
		Lat:       it.float("lat"),
		Lon:       it.float("lin"),
		VehicleNo: it.text("carno"),
		LowFloor:  it.flag("lowplate"),
		LineNo:    it.text("lineno"),
	}
}

func arrivalFromItem(it item) models.Arrival {
	arrival := models.Arrival{
		RouteID:  it.text("lineid"),
		LineNo:   it.text("lineno"),
		Category: it.text("bustype"),
	}
	if min1 := it.minutes("min1"); !min1.IsZero() {
		arrival.First = &models.Prediction{
			Minutes:   min1,
			StopsAway: it.int("station1"),
			LowFloor:  it.flag("lowplate1"),
		}
	}
	if min2 := it.minutes("min2"); !min2.IsZero() {
		arrival.Second = &models.Prediction{
			Minutes:   min2,
			StopsAway: it.int("station2"),
			LowFloor:  it.flag("lowplate2"),
		}
	}
	return arrival
}
