package opendata

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jinsol-dev/busango/internal/models"
)

// NearbyStops queries the TAGO getCrdntPrxmtSttnList endpoint for stops
// around a coordinate (the service searches a fixed ~500m radius) and keeps
// only stops in the configured municipality. The radius search is not
// municipality-scoped upstream, so this is a hard post-filter.
func (c *Client) NearbyStops(ctx context.Context, pos models.Coordinates) ([]models.NodeStop, error) {
	params := url.Values{
		"gpsLati":   {strconv.FormatFloat(pos.Lat, 'f', -1, 64)},
		"gpsLong":   {strconv.FormatFloat(pos.Lon, 'f', -1, 64)},
		"numOfRows": {"50"},
		"pageNo":    {"1"},
		"_type":     {"xml"},
	}

	items, err := c.get(ctx, c.cfg.TAGOBaseURL, "getCrdntPrxmtSttnList", params)
	if err != nil {
		return nil, err
	}

	stops := make([]models.NodeStop, 0, len(items))
	for _, it := range items {
		stop := nodeStopFromItem(it)
		if stop.CityCode != c.cfg.CityCode {
			continue
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func nodeStopFromItem(it item) models.NodeStop {
	return models.NodeStop{
		NodeID:   it.text("nodeid"),
		NodeNo:   it.text("nodeno"),
		Name:     it.text("nodenm"),
		Lat:      it.float("gpslati"),
		Lon:      it.float("gpslong"),
		CityCode: it.int("citycode"),
	}
}
