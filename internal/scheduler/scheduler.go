// FilePath: internal/scheduler/scheduler.go

// Package scheduler runs the periodic hourly aggregation job.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/agrosense/agrohub/internal/reports"
	nuts "github.com/vaudience/go-nuts"
)

// Scheduler re-runs the hourly aggregation on a fixed interval. Each tick
// recomputes the last fully completed UTC hour; because the upsert converges,
// overlapping runs are harmless.
type Scheduler struct {
	reports  *reports.Service
	interval time.Duration
	events   *nuts.EventEmitter

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a scheduler around the reports service.
func New(reportsService *reports.Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		reports:  reportsService,
		interval: interval,
		events:   nuts.NewEventEmitter(),
	}
}

// Start launches the background loop. It runs one aggregation immediately and
// then on every interval tick until Stop is called.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		nuts.L.Infof("[Scheduler] Hourly aggregation job started (interval %s)", s.interval)

		s.runOnce(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the current run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		nuts.L.Infof("[Scheduler] Hourly aggregation job stopped")
	}
}

// runOnce aggregates the last fully completed UTC hour. Errors are logged and
// the loop continues; the next tick retries the same data.
func (s *Scheduler) runOnce(ctx context.Context) {
	to := time.Now().UTC().Truncate(time.Hour)
	from := to.Add(-time.Hour)
	if !from.Before(to) {
		return
	}

	result, err := s.reports.UpsertHourlyAverages(ctx, reports.UpsertParams{From: from, To: to})
	if err != nil {
		nuts.L.Errorf("[Scheduler] Hourly aggregation failed for [%s, %s): %v", from, to, err)
		s.events.Emit("aggregation.failed", from.Format(time.RFC3339))
		return
	}

	nuts.L.Infof("[Scheduler] Aggregated [%s, %s): %d rows upserted", from, to, result.Upserted)
	s.events.Emit("aggregation.completed", from.Format(time.RFC3339))
}

// OnAggregation registers a callback for aggregation lifecycle events.
func (s *Scheduler) OnAggregation(event string, handler func(hour string)) {
	s.events.On(event, "scheduler_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if hour, ok := args[0].(string); ok {
				handler(hour)
			}
		}
	})
}
