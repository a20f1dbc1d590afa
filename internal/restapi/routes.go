package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// Router builds the API router. All /api/where routes require a valid key;
// /health and /metrics do not.
func (api *RestAPI) Router() http.Handler {
	router := httprouter.New()

	keyed := func(method, path string, h handlerFunc) {
		router.Handler(method, path, validateAPIKey(api, h))
	}

	keyed(http.MethodGet, "/api/where/stops-for-location.json", api.stopsForLocationHandler)
	keyed(http.MethodGet, "/api/where/stops-for-name.json", api.stopsForNameHandler)
	keyed(http.MethodGet, "/api/where/routes-for-number/:number", api.routesForNumberHandler)
	keyed(http.MethodGet, "/api/where/route/:id", api.routeHandler)
	keyed(http.MethodGet, "/api/where/stops-for-route/:id", api.stopsForRouteHandler)
	keyed(http.MethodGet, "/api/where/arrivals-for-stop/:id", api.arrivalsForStopHandler)
	keyed(http.MethodGet, "/api/where/arrivals-for-ars/:ars", api.arrivalsForARSHandler)
	keyed(http.MethodGet, "/api/where/favorites.json", api.listFavoritesHandler)
	keyed(http.MethodPost, "/api/where/favorites.json", api.addFavoriteHandler)
	keyed(http.MethodDelete, "/api/where/favorite/:id", api.removeFavoriteHandler)
	keyed(http.MethodPut, "/api/where/session-state/:name", api.saveSessionStateHandler)
	keyed(http.MethodGet, "/api/where/session-state/:name", api.takeSessionStateHandler)
	keyed(http.MethodGet, "/api/where/current-time.json", api.currentTimeHandler)

	router.HandlerFunc(http.MethodGet, "/health", api.healthHandler)
	if api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}

	return router
}
