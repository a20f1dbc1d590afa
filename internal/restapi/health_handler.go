package restapi

import (
	"encoding/json"
	"net/http"
)

// healthHandler reports liveness. It requires no API key so load balancers
// can probe it.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	if err != nil {
		api.Logger.Error("failed to encode health response", "error", err)
	}
}
