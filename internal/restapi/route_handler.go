package restapi

import (
	"errors"
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/opendata"
	"github.com/jinsol-dev/busango/internal/utils"
)

// routeHandler returns one route by its line id.
func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	route, err := api.OpenData.RouteByID(r.Context(), id)
	if errors.Is(err, opendata.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(route))
}
