package restapi

import (
	"net/http"
	"time"

	"github.com/jinsol-dev/busango/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	currentTimeData := models.NewCurrentTimeData(time.Now())
	response := models.NewEntryResponse(currentTimeData)
	api.sendResponse(w, r, response)
}
