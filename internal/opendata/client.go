// Package opendata implements the typed adapters over the two public open
// data services this system composes: the Busan BIMS route/arrival service
// and the nationwide TAGO nearby-stop service. Each call performs one
// request, decodes the XML envelope, and maps items into domain records.
// There is no caching or retry here; callers refresh via polling.
package opendata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jinsol-dev/busango/internal/logging"
	"github.com/jinsol-dev/busango/internal/metrics"
)

const (
	DefaultBIMSBaseURL = "https://apis.data.go.kr/6260000/BusanBIMS"
	DefaultTAGOBaseURL = "https://apis.data.go.kr/1613000/BusSttnInfoInqireService"

	// DefaultCityCode is Busan's municipality code in the TAGO stop data.
	DefaultCityCode = 21

	defaultTimeout = 10 * time.Second
)

// Config holds the upstream endpoints and credentials for a Client.
type Config struct {
	ServiceKey  string
	BIMSBaseURL string
	TAGOBaseURL string
	CityCode    int
	Timeout     time.Duration
}

// Client calls the BIMS and TAGO services.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// NewClient creates a Client, filling zero config fields with defaults.
// The metrics collector may be nil.
func NewClient(cfg Config, logger *slog.Logger, collector *metrics.Collector) *Client {
	if cfg.BIMSBaseURL == "" {
		cfg.BIMSBaseURL = DefaultBIMSBaseURL
	}
	if cfg.TAGOBaseURL == "" {
		cfg.TAGOBaseURL = DefaultTAGOBaseURL
	}
	if cfg.CityCode == 0 {
		cfg.CityCode = DefaultCityCode
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "opendata")),
		metrics:    collector,
	}
}

// get performs one request and decodes the envelope. The service key is
// appended here so endpoint methods only carry their own parameters.
func (c *Client) get(ctx context.Context, baseURL, endpoint string, params url.Values) ([]item, error) {
	params.Set("serviceKey", c.cfg.ServiceKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("opendata: build request for %s: %w", endpoint, err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, time.Since(started).Seconds(), true)
		return nil, fmt.Errorf("opendata: %s: %w", endpoint, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "opendata_response_body")

	if resp.StatusCode != http.StatusOK {
		c.metrics.ObserveUpstream(endpoint, time.Since(started).Seconds(), true)
		return nil, fmt.Errorf("opendata: %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	items, err := decodeEnvelope(resp.Body)
	c.metrics.ObserveUpstream(endpoint, time.Since(started).Seconds(), err != nil)
	if err != nil {
		logging.LogError(c.logger, "upstream call failed", err,
			slog.String("endpoint", endpoint))
		return nil, err
	}
	return items, nil
}
