package restapi

import (
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/utils"
)

// routesForNumberHandler searches routes by line number. The upstream match
// is a prefix search, so "1" also returns 10, 100 and so on.
func (api *RestAPI) routesForNumberHandler(w http.ResponseWriter, r *http.Request) {
	number := utils.ExtractIDFromParams(r, "number")
	if err := utils.ValidateID(number); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"number": {err.Error()}})
		return
	}

	routes, err := api.OpenData.RoutesByNumber(r.Context(), number)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(routes))
}
