package restapi

import (
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/opendata"
	"github.com/jinsol-dev/busango/internal/utils"
)

// stopsForNameHandler searches stops by display name (q) and/or ARS number
// (ars). With neither given it lists the first page of all stops.
func (api *RestAPI) stopsForNameHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	query, err := utils.ValidateAndSanitizeQuery(queryParams.Get("q"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"q": {err.Error()}})
		return
	}

	ars := queryParams.Get("ars")
	if ars != "" {
		if err := utils.ValidateARS(ars); err != nil {
			api.validationErrorResponse(w, r, map[string][]string{"ars": {err.Error()}})
			return
		}
	}

	stops, err := api.OpenData.StopList(r.Context(), opendata.StopQuery{Name: query, ARS: ars})
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(stops))
}
