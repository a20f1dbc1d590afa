package restapi

import (
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/utils"
)

// stopsForLocationHandler lists the stops near a coordinate. Stops outside
// the configured city are filtered out before they reach the response.
func (api *RestAPI) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.ParseFloatParam(queryParams, "lat", nil)
	lon, fieldErrors := utils.ParseFloatParam(queryParams, "lon", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if fieldErrors := utils.ValidateLocationParams(lat, lon); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	stops, err := api.OpenData.NearbyStops(r.Context(), models.Coordinates{Lat: lat, Lon: lon})
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(stops))
}
