package probe

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-mcp-server/internal/weather"
)

// Probe periodically checks that the upstream provider is reachable and logs
// the outcome. It stores nothing and shares nothing with request handling
// beyond the weather client.
type Probe struct {
	scheduler *gocron.Scheduler
	client    *weather.Client
	interval  time.Duration
}

// New creates a Probe. An interval of zero disables it.
func New(client *weather.Client, interval time.Duration) *Probe {
	return &Probe{
		scheduler: gocron.NewScheduler(time.UTC),
		client:    client,
		interval:  interval,
	}
}

// Start schedules the periodic check and starts the underlying scheduler.
func (p *Probe) Start() error {
	if p.interval <= 0 {
		log.Println("probe: disabled; no interval configured")
		return nil
	}

	_, err := p.scheduler.Every(p.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		coord := weather.Coordinate{
			Latitude:  weather.DefaultLatitude,
			Longitude: weather.DefaultLongitude,
		}
		if _, err := p.client.FetchCurrent(ctx, coord); err != nil {
			log.Printf("ERROR: probe: upstream check failed: %v", err)
			return
		}
		log.Printf("INFO: probe: upstream reachable")
	})
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future checks.
func (p *Probe) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}
