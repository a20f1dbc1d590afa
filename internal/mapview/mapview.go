// Package mapview synchronizes stop markers with a map rendered by an
// injected SDK. The controller owns marker lifecycle and the one-shot
// viewport seeding; re-querying stops on movement is the caller's job,
// helped by the Debouncer.
package mapview

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jinsol-dev/busango/internal/models"
)

// Icon is marker content handed to the SDK. The Naver SDK renders an HTML
// fragment anchored at a pixel offset.
type Icon struct {
	Content string
	AnchorX int
	AnchorY int
}

// MarkerOptions describe one marker to the SDK.
type MarkerOptions struct {
	Position models.Coordinates
	Title    string
	Icon     Icon
	ZIndex   int
}

// Marker is a live marker handle owned by the SDK.
type Marker interface {
	Remove()
}

// Map is the subset of the map SDK the controller needs.
type Map interface {
	AddMarker(opts MarkerOptions, onClick func()) Marker
	SetCenter(pos models.Coordinates)
	Center() models.Coordinates
	Zoom() int
	OnIdle(fn func())
	OnZoomChanged(fn func(zoom int))
}

// SDK constructs maps. Injected so the controller is testable without a
// real map backend.
type SDK interface {
	NewMap(center models.Coordinates, zoom int) (Map, error)
}

// Marker stacking order: selected above current location above ordinary.
const (
	zIndexStop            = 1
	zIndexCurrentLocation = 50
	zIndexSelected        = 100
)

// DefaultCenter is the Busan city hall viewport used until a real position
// arrives.
var DefaultCenter = models.Coordinates{Lat: 35.1796, Lon: 129.0756}

const (
	DefaultZoom = 17
	MinZoom     = 10
	MaxZoom     = 19
)

// Controller keeps the marker set in sync with live stop data and forwards
// user-driven viewport changes. Callbacks live in mutable cells so the
// newest handler is always the one invoked.
type Controller struct {
	sdk    SDK
	logger *slog.Logger

	mu              sync.Mutex
	m               Map
	seeded          bool
	markers         map[string]Marker
	currentLocation Marker

	onStopClick    func(stop models.NodeStop)
	onCenterChange func(center models.Coordinates)
	onZoomChange   func(zoom int)
}

func NewController(sdk SDK, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		sdk:     sdk,
		logger:  logger.With(slog.String("component", "mapview")),
		markers: make(map[string]Marker),
	}
}

// OnStopClick registers the stop marker click handler.
func (c *Controller) OnStopClick(fn func(stop models.NodeStop)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStopClick = fn
}

// OnCenterChange registers the handler invoked when movement has settled
// (the SDK's idle event), never per intermediate frame.
func (c *Controller) OnCenterChange(fn func(center models.Coordinates)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCenterChange = fn
}

// OnZoomChange registers the zoom change handler.
func (c *Controller) OnZoomChange(fn func(zoom int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onZoomChange = fn
}

// EnsureMap initializes the map once. The first non-zero center/zoom seeds
// the viewport; if the map was built before a position was known, the first
// real center pans it exactly once. After that, center values passed here
// are ignored so the controller never fights user pan/zoom.
func (c *Controller) EnsureMap(center models.Coordinates, zoom int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.m == nil {
		seeded := !center.IsZero()
		if center.IsZero() {
			center = DefaultCenter
		}
		if zoom == 0 {
			zoom = DefaultZoom
		}

		m, err := c.sdk.NewMap(center, zoom)
		if err != nil {
			return fmt.Errorf("mapview: create map: %w", err)
		}
		c.m = m
		c.seeded = seeded

		m.OnIdle(func() {
			c.mu.Lock()
			fn := c.onCenterChange
			mm := c.m
			c.mu.Unlock()
			if fn != nil && mm != nil {
				fn(mm.Center())
			}
		})
		m.OnZoomChanged(func(zoom int) {
			c.mu.Lock()
			fn := c.onZoomChange
			c.mu.Unlock()
			if fn != nil {
				fn(zoom)
			}
		})
		return nil
	}

	if !c.seeded && !center.IsZero() {
		c.seeded = true
		c.m.SetCenter(center)
	}
	return nil
}

// SetStops rebuilds the full marker set from the stop list. Previous stop
// markers are cleared first; stop lists are tens of entries, so a rebuild
// beats incremental diffing. Stops without both coordinates are skipped
// without failing the render. The selected stop (matched by digits-only
// stop number) gets the enlarged icon and the top stacking order.
func (c *Controller) SetStops(stops []models.NodeStop, selectedID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.m == nil {
		return
	}

	for _, marker := range c.markers {
		marker.Remove()
	}
	c.markers = make(map[string]Marker, len(stops))

	for _, stop := range stops {
		if !stop.HasCoordinates() {
			continue
		}

		number := stop.StopNumber()
		selected := number == selectedID
		zIndex := zIndexStop
		if selected {
			zIndex = zIndexSelected
		}

		clicked := stop
		marker := c.m.AddMarker(MarkerOptions{
			Position: stop.Position(),
			Title:    stop.Name,
			Icon:     stopIcon(selected),
			ZIndex:   zIndex,
		}, func() {
			c.mu.Lock()
			fn := c.onStopClick
			c.mu.Unlock()
			if fn != nil {
				fn(clicked)
			}
		})
		c.markers[number] = marker
	}
}

// SetCurrentLocation replaces the current-location marker.
func (c *Controller) SetCurrentLocation(pos models.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.m == nil || pos.IsZero() {
		return
	}
	if c.currentLocation != nil {
		c.currentLocation.Remove()
	}
	c.currentLocation = c.m.AddMarker(MarkerOptions{
		Position: pos,
		Icon:     currentLocationIcon(),
		ZIndex:   zIndexCurrentLocation,
	}, nil)
}

// MoveTo pans the map; used by the "go to current location" control.
func (c *Controller) MoveTo(pos models.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m != nil {
		c.m.SetCenter(pos)
	}
}

// Viewport returns the current center and zoom, or false before the map is
// initialized.
func (c *Controller) Viewport() (models.Coordinates, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		return models.Coordinates{}, 0, false
	}
	return c.m.Center(), c.m.Zoom(), true
}

// Close removes all owned markers. The map itself belongs to the SDK.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, marker := range c.markers {
		marker.Remove()
	}
	c.markers = make(map[string]Marker)
	if c.currentLocation != nil {
		c.currentLocation.Remove()
		c.currentLocation = nil
	}
}
