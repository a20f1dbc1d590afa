// Package app wires together the dependencies shared by the HTTP handlers,
// helpers, and middleware.
package app

import (
	"log/slog"

	"github.com/jinsol-dev/busango/internal/appconf"
	"github.com/jinsol-dev/busango/internal/favorites"
	"github.com/jinsol-dev/busango/internal/metrics"
	"github.com/jinsol-dev/busango/internal/opendata"
	"github.com/jinsol-dev/busango/internal/sessionstate"
)

// Application holds the dependencies for the HTTP handlers, helpers, and
// middleware.
type Application struct {
	Config       appconf.Config
	Logger       *slog.Logger
	OpenData     *opendata.Client
	Favorites    *favorites.Store
	SessionState *sessionstate.Store
	Metrics      *metrics.Collector
}
