package restapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/utils"
)

// Session snapshots are small view states; reject anything bigger.
const maxSessionStateBytes = 64 << 10

// saveSessionStateHandler stores a named view snapshot for the owner,
// replacing any previous one under the same name.
func (api *RestAPI) saveSessionStateHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")
	if err := utils.ValidateID(name); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"name": {err.Error()}})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSessionStateBytes+1))
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if len(body) > maxSessionStateBytes {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"snapshot too large"}})
		return
	}
	if !json.Valid(body) {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}

	api.SessionState.Save(api.ownerID(), name, json.RawMessage(body))
	api.sendResponse(w, r, models.NewOKResponse(nil))
}

// takeSessionStateHandler returns a snapshot and removes it. A snapshot is
// restored at most once; a second read is a 404.
func (api *RestAPI) takeSessionStateHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")
	if err := utils.ValidateID(name); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"name": {err.Error()}})
		return
	}

	blob, ok := api.SessionState.Take(api.ownerID(), name)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(blob))
}
