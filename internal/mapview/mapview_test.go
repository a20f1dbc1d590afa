package mapview

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinsol-dev/busango/internal/models"
)

// fakeSDK records map construction and marker churn.
type fakeSDK struct {
	maps []*fakeMap
}

func (s *fakeSDK) NewMap(center models.Coordinates, zoom int) (Map, error) {
	m := &fakeMap{center: center, zoom: zoom}
	s.maps = append(s.maps, m)
	return m, nil
}

type fakeMap struct {
	center        models.Coordinates
	zoom          int
	markers       []*fakeMarker
	idleFns       []func()
	zoomFns       []func(int)
	centerSetCnt  int
	removedInHist int
}

func (m *fakeMap) AddMarker(opts MarkerOptions, onClick func()) Marker {
	marker := &fakeMarker{m: m, opts: opts, onClick: onClick}
	m.markers = append(m.markers, marker)
	return marker
}

func (m *fakeMap) SetCenter(pos models.Coordinates) {
	m.center = pos
	m.centerSetCnt++
}

func (m *fakeMap) Center() models.Coordinates { return m.center }
func (m *fakeMap) Zoom() int                  { return m.zoom }
func (m *fakeMap) OnIdle(fn func())           { m.idleFns = append(m.idleFns, fn) }
func (m *fakeMap) OnZoomChanged(fn func(int)) { m.zoomFns = append(m.zoomFns, fn) }

func (m *fakeMap) fireIdle() {
	for _, fn := range m.idleFns {
		fn()
	}
}

// live returns markers that have not been removed.
func (m *fakeMap) live() []*fakeMarker {
	var out []*fakeMarker
	for _, marker := range m.markers {
		if !marker.removed {
			out = append(out, marker)
		}
	}
	return out
}

type fakeMarker struct {
	m       *fakeMap
	opts    MarkerOptions
	onClick func()
	removed bool
}

func (mk *fakeMarker) Remove() {
	mk.removed = true
	mk.m.removedInHist++
}

func testController(t *testing.T) (*Controller, *fakeSDK) {
	sdk := &fakeSDK{}
	return NewController(sdk, slog.New(slog.NewTextHandler(io.Discard, nil))), sdk
}

func TestEnsureMapSeedsOnce(t *testing.T) {
	c, sdk := testController(t)

	busan := models.Coordinates{Lat: 35.1796, Lon: 129.0756}
	require.NoError(t, c.EnsureMap(busan, 15))
	require.Len(t, sdk.maps, 1)
	assert.Equal(t, busan, sdk.maps[0].center)
	assert.Equal(t, 15, sdk.maps[0].zoom)

	// A later center must not re-seed: the user may have panned away.
	elsewhere := models.Coordinates{Lat: 35.1, Lon: 129.1}
	require.NoError(t, c.EnsureMap(elsewhere, 12))
	assert.Len(t, sdk.maps, 1, "map is constructed exactly once")
	assert.Equal(t, busan, sdk.maps[0].center)
	assert.Equal(t, 0, sdk.maps[0].centerSetCnt)
}

func TestEnsureMapLateCenterPansExactlyOnce(t *testing.T) {
	c, sdk := testController(t)

	// No position known yet: the map seeds at the default viewport.
	require.NoError(t, c.EnsureMap(models.Coordinates{}, 0))
	require.Len(t, sdk.maps, 1)
	assert.Equal(t, DefaultCenter, sdk.maps[0].center)
	assert.Equal(t, DefaultZoom, sdk.maps[0].zoom)

	// The first real center pans the map once.
	busan := models.Coordinates{Lat: 35.1578, Lon: 129.0594}
	require.NoError(t, c.EnsureMap(busan, 0))
	assert.Equal(t, 1, sdk.maps[0].centerSetCnt)
	assert.Equal(t, busan, sdk.maps[0].center)

	// Any further center is ignored.
	require.NoError(t, c.EnsureMap(models.Coordinates{Lat: 1, Lon: 2}, 0))
	assert.Equal(t, 1, sdk.maps[0].centerSetCnt)
}

func stopsFixture() []models.NodeStop {
	return []models.NodeStop{
		{NodeID: "BSB100001", Name: "시청앞", Lat: 35.1799, Lon: 129.0751},
		{NodeID: "BSB100002", Name: "시청뒤", Lat: 35.1803, Lon: 129.0760},
		{NodeID: "BSB100003", Name: "좌표없음"}, // no coordinates
	}
}

func TestSetStopsSkipsRecordsWithoutCoordinates(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	c.SetStops(stopsFixture(), "")

	live := sdk.maps[0].live()
	assert.Len(t, live, 2, "the record without coordinates is skipped, not fatal")
	for _, marker := range live {
		assert.Equal(t, zIndexStop, marker.opts.ZIndex)
	}
}

func TestSetStopsRebuildsAllMarkers(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	c.SetStops(stopsFixture(), "")
	c.SetStops(stopsFixture()[:1], "")

	m := sdk.maps[0]
	assert.Equal(t, 2, m.removedInHist, "previous markers are cleared before new ones are added")
	assert.Len(t, m.live(), 1)
}

func TestSelectedStopGetsDistinguishedMarker(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	c.SetStops(stopsFixture(), "100002")

	var selected, ordinary int
	for _, marker := range sdk.maps[0].live() {
		switch marker.opts.ZIndex {
		case zIndexSelected:
			selected++
			assert.Equal(t, "시청뒤", marker.opts.Title)
			assert.Contains(t, marker.opts.Icon.Content, "#EF4444")
		case zIndexStop:
			ordinary++
			assert.Contains(t, marker.opts.Icon.Content, "#3B82F6")
		}
	}
	assert.Equal(t, 1, selected)
	assert.Equal(t, 1, ordinary)
}

func TestCurrentLocationMarkerStacksBetween(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	pos := models.Coordinates{Lat: 35.18, Lon: 129.07}
	c.SetCurrentLocation(pos)
	c.SetCurrentLocation(models.Coordinates{Lat: 35.19, Lon: 129.08})

	live := sdk.maps[0].live()
	require.Len(t, live, 1, "previous current-location marker is replaced")
	assert.Equal(t, zIndexCurrentLocation, live[0].opts.ZIndex)
	assert.Greater(t, zIndexSelected, zIndexCurrentLocation)
	assert.Greater(t, zIndexCurrentLocation, zIndexStop)
	assert.Contains(t, live[0].opts.Icon.Content, "pulse")
}

func TestStopClickInvokesLatestHandler(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	var got models.NodeStop
	c.OnStopClick(func(stop models.NodeStop) { got = stop })
	c.SetStops(stopsFixture(), "")

	for _, marker := range sdk.maps[0].live() {
		if marker.opts.Title == "시청앞" {
			marker.onClick()
		}
	}
	assert.Equal(t, "BSB100001", got.NodeID)
}

func TestCenterChangeFiresOnIdle(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	var got models.Coordinates
	c.OnCenterChange(func(center models.Coordinates) { got = center })

	moved := models.Coordinates{Lat: 35.2, Lon: 129.1}
	sdk.maps[0].center = moved
	sdk.maps[0].fireIdle()

	assert.Equal(t, moved, got)
}

func TestCloseRemovesAllMarkers(t *testing.T) {
	c, sdk := testController(t)
	require.NoError(t, c.EnsureMap(DefaultCenter, DefaultZoom))

	c.SetStops(stopsFixture(), "")
	c.SetCurrentLocation(models.Coordinates{Lat: 35.18, Lon: 129.07})
	c.Close()

	assert.Empty(t, sdk.maps[0].live())
}

func TestSetStopsBeforeMapIsNoOp(t *testing.T) {
	c, sdk := testController(t)
	assert.NotPanics(t, func() {
		c.SetStops(stopsFixture(), "")
		c.SetCurrentLocation(models.Coordinates{Lat: 1, Lon: 2})
		c.MoveTo(models.Coordinates{Lat: 1, Lon: 2})
	})
	assert.Empty(t, sdk.maps)
}
