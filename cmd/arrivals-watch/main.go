package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jinsol-dev/busango/internal/geoloc"
	"github.com/jinsol-dev/busango/internal/logging"
	"github.com/jinsol-dev/busango/internal/models"
	"github.com/jinsol-dev/busango/internal/opendata"
	"github.com/jinsol-dev/busango/internal/refresh"
)

// arrivals-watch follows the arrival board of one stop, reprinting it every
// refresh interval. The stop comes from -stop or -ars; with neither given
// the nearest stop to -lat/-lon is picked.
func main() {
	_ = godotenv.Load()

	var (
		stopID     = flag.String("stop", "", "Stop id to watch")
		ars        = flag.String("ars", "", "ARS number to watch, used when -stop is empty")
		lat        = flag.Float64("lat", geoloc.DefaultPosition.Lat, "Latitude for nearest-stop lookup")
		lon        = flag.Float64("lon", geoloc.DefaultPosition.Lon, "Longitude for nearest-stop lookup")
		interval   = flag.Duration("interval", refresh.DefaultInterval, "Refresh interval")
		serviceKey = flag.String("service-key", os.Getenv("SERVICE_KEY"), "data.go.kr service key")
	)
	flag.Parse()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)
	client := opendata.NewClient(opendata.Config{ServiceKey: *serviceKey}, logger, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	label := *stopID
	var fetch refresh.Fetch[[]models.Arrival]
	switch {
	case *stopID != "":
		fetch = func(ctx context.Context) ([]models.Arrival, error) {
			return client.ArrivalsByStopID(ctx, *stopID)
		}
	case *ars != "":
		label = *ars
		fetch = func(ctx context.Context) ([]models.Arrival, error) {
			return client.ArrivalsByARS(ctx, *ars)
		}
	default:
		provider := geoloc.NewProvider(geoloc.FixedSource{
			Position: models.Coordinates{Lat: *lat, Lon: *lon},
		}, logger)
		pos, err := provider.Locate(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, geoloc.Message(err))
			os.Exit(1)
		}

		stops, err := client.NearbyStops(ctx, pos)
		if err != nil {
			logging.LogError(logger, "nearby stop lookup failed", err)
			os.Exit(1)
		}
		if len(stops) == 0 {
			fmt.Fprintln(os.Stderr, "no stops near the given position")
			os.Exit(1)
		}

		nearest := stops[0]
		id := nearest.StopNumber()
		label = fmt.Sprintf("%s (%s)", nearest.Name, id)
		fetch = func(ctx context.Context) ([]models.Arrival, error) {
			return client.ArrivalsByStopID(ctx, id)
		}
	}

	poller := refresh.New(fetch, refresh.Options{
		Interval: *interval,
		Enabled:  true,
	}, logger, nil)
	poller.Start(ctx)
	defer poller.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poller.Updates():
			printBoard(label, poller.Snapshot())
		}
	}
}

func printBoard(label string, snap refresh.Snapshot[[]models.Arrival]) {
	if snap.Err != nil && !snap.HasData {
		fmt.Printf("%s: %v\n", label, snap.Err)
		return
	}
	if !snap.HasData {
		return
	}

	fmt.Printf("-- %s at %s --\n", label, snap.LastUpdated.Format(time.Kitchen))
	if snap.Err != nil {
		fmt.Printf("   (stale, last refresh failed: %v)\n", snap.Err)
	}
	if len(snap.Data) == 0 {
		fmt.Println("   no arrivals")
		return
	}
	for _, a := range snap.Data {
		fmt.Printf("   %-6s %s", a.LineNo, describe(a.First))
		if a.HasSecond() {
			fmt.Printf(", then %s", describe(a.Second))
		}
		fmt.Println()
	}
}

func describe(p *models.Prediction) string {
	if p == nil || p.Minutes.IsZero() {
		return "no forecast"
	}
	if minutes, ok := p.Minutes.Value(); ok {
		s := fmt.Sprintf("%d min", minutes)
		if p.StopsAway > 0 {
			s += fmt.Sprintf(" (%d stops)", p.StopsAway)
		}
		if p.LowFloor {
			s += " [low-floor]"
		}
		return s
	}
	return p.Minutes.Raw
}
