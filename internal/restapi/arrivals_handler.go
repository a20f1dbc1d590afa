package restapi

import (
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/utils"
)

// arrivalsForStopHandler returns the per-route arrival forecast for a stop
// id. Minutes pass through as reported, including the not-running and
// service-ended sentinel strings.
func (api *RestAPI) arrivalsForStopHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	arrivals, err := api.OpenData.ArrivalsByStopID(r.Context(), id)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(arrivals))
}

// arrivalsForARSHandler is the same forecast keyed by the stop's ARS number.
func (api *RestAPI) arrivalsForARSHandler(w http.ResponseWriter, r *http.Request) {
	ars := utils.ExtractIDFromParams(r, "ars")
	if err := utils.ValidateARS(ars); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"ars": {err.Error()}})
		return
	}

	arrivals, err := api.OpenData.ArrivalsByARS(r.Context(), ars)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(arrivals))
}
