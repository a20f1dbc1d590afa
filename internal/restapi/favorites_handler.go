package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jinsol-dev/busango/internal/favorites"
	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/utils"
)

// listFavoritesHandler returns the owner's favorites, newest first.
func (api *RestAPI) listFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := api.Favorites.List(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(list))
}

type addFavoriteRequest struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	Name     string `json:"name"`
}

// addFavoriteHandler bookmarks a bus line or a stop. Bookmarking the same
// target twice is a conflict, not a second record.
func (api *RestAPI) addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}

	fieldErrors := make(map[string][]string)
	kind := models.FavoriteKind(req.Kind)
	if !kind.Valid() {
		fieldErrors["kind"] = append(fieldErrors["kind"], "kind must be \"bus\" or \"stop\"")
	}
	if err := utils.ValidateID(req.TargetID); err != nil {
		fieldErrors["targetId"] = append(fieldErrors["targetId"], err.Error())
	}
	name, err := utils.ValidateAndSanitizeQuery(req.Name)
	if err != nil {
		fieldErrors["name"] = append(fieldErrors["name"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	favorite, err := api.Favorites.Add(r.Context(), kind, req.TargetID, name)
	if errors.Is(err, favorites.ErrExists) {
		api.conflictResponse(w, r, "already bookmarked")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(favorite))
}

// removeFavoriteHandler deletes a favorite by record id. Deleting an absent
// id succeeds.
func (api *RestAPI) removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	if err := api.Favorites.Remove(r.Context(), id); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(nil))
}
