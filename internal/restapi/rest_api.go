package restapi

import (
	"github.com/jinsol-dev/busango/internal/app"
)

type RestAPI struct {
	*app.Application
}

// NewRestAPI creates a new RestAPI instance
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
	}
}

// ownerID is the identity favorites and session snapshots are keyed by.
// Empty when the server has no durable identity.
func (api *RestAPI) ownerID() string {
	if api.Favorites == nil {
		return ""
	}
	return api.Favorites.OwnerID()
}
