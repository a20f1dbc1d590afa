// Package geoloc resolves the device's current position once per request,
// with a two-tier accuracy fallback. The position source itself is an
// injected collaborator; this package owns the fallback policy and the
// failure classification.
package geoloc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jinsol-dev/busango/internal/models"
)

// Classified failures a position source reports. Anything else a source
// returns is treated as "unavailable" for messaging purposes.
var (
	ErrPermissionDenied    = errors.New("geoloc: permission denied")
	ErrPositionUnavailable = errors.New("geoloc: position unavailable")
	ErrTimeout             = errors.New("geoloc: timeout")
)

// DefaultPosition is the Busan city hall area, the fallback when no
// position is known at all.
var DefaultPosition = models.Coordinates{Lat: 35.1796, Lon: 129.0756}

// Options mirror the request knobs of the underlying source. MaximumAge is
// how old a cached position may be and still be accepted.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// PositionSource produces one position per request.
type PositionSource interface {
	CurrentPosition(ctx context.Context, opts Options) (models.Coordinates, error)
}

// Request profiles. The high-accuracy attempt is strict; the low-accuracy
// retry is generous because iOS sources routinely time out GPS requests, and
// a five-minute-old network fix beats no fix.
var (
	highAccuracyOptions = Options{HighAccuracy: true, Timeout: 10 * time.Second, MaximumAge: time.Minute}
	lowAccuracyOptions  = Options{HighAccuracy: false, Timeout: 15 * time.Second, MaximumAge: 5 * time.Minute}
)

// Provider runs the fallback state machine over a PositionSource.
type Provider struct {
	source PositionSource
	logger *slog.Logger
}

func NewProvider(source PositionSource, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		source: source,
		logger: logger.With(slog.String("component", "geoloc")),
	}
}

// Locate resolves the current position once: a high-accuracy attempt, then
// on any failure except permission-denied a low-accuracy attempt. A denied
// permission fails immediately; retrying after an explicit denial cannot
// succeed.
func (p *Provider) Locate(ctx context.Context) (models.Coordinates, error) {
	pos, err := p.source.CurrentPosition(ctx, highAccuracyOptions)
	if err == nil {
		return pos, nil
	}
	if errors.Is(err, ErrPermissionDenied) {
		return models.Coordinates{}, err
	}

	p.logger.Info("high accuracy attempt failed, retrying with low accuracy",
		slog.String("reason", err.Error()))

	pos, err = p.source.CurrentPosition(ctx, lowAccuracyOptions)
	if err != nil {
		return models.Coordinates{}, err
	}
	return pos, nil
}

// Message maps a classified failure to its user-facing description.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "위치 정보 접근이 거부되었습니다."
	case errors.Is(err, ErrPositionUnavailable):
		return "위치 정보를 사용할 수 없습니다."
	case errors.Is(err, ErrTimeout):
		return "위치 정보 요청 시간이 초과되었습니다."
	default:
		return "위치 정보를 가져올 수 없습니다."
	}
}

// FixedSource always reports the same position. It stands in for a device
// bridge in CLIs and tests.
type FixedSource struct {
	Position models.Coordinates
}

func (s FixedSource) CurrentPosition(ctx context.Context, opts Options) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return s.Position, nil
}
