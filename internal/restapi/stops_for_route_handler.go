package restapi

import (
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/utils"
)

// stopsForRouteHandler returns a route's stop sequence. Entries carrying a
// vehicle number mark where a live bus currently is.
func (api *RestAPI) stopsForRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	stops, err := api.OpenData.RouteStops(r.Context(), id)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(stops))
}
