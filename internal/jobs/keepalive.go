package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Pinger is the connection the keepalive job keeps usable
type Pinger interface {
	EnsureLive(ctx context.Context) error
}

// Keepalive periodically verifies the database connection so an idle
// connection dropped by the server is reopened before a request needs it.
type Keepalive struct {
	mu       sync.Mutex
	cron     *cron.Cron
	schedule string
	timeout  time.Duration
	db       Pinger
	logger   zerolog.Logger
	running  bool
}

// NewKeepalive creates a keepalive job for a cron expression such as "@every 1m"
func NewKeepalive(schedule string, timeout time.Duration, db Pinger, logger zerolog.Logger) *Keepalive {
	return &Keepalive{
		schedule: schedule,
		timeout:  timeout,
		db:       db,
		logger:   logger,
	}
}

// Start schedules the job. It fails on an invalid expression.
func (k *Keepalive) Start() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.running {
		k.logger.Warn().Msg("Keepalive is already running")
		return nil
	}

	k.cron = cron.New()
	if _, err := k.cron.AddFunc(k.schedule, k.Run); err != nil {
		return fmt.Errorf("invalid keepalive schedule %q: %w", k.schedule, err)
	}

	k.cron.Start()
	k.running = true

	if entries := k.cron.Entries(); len(entries) > 0 {
		k.logger.Info().Str("schedule", k.schedule).Time("next", entries[0].Next).Msg("Keepalive started")
	}
	return nil
}

// Run checks the connection once
func (k *Keepalive) Run() {
	ctx := context.Background()
	if k.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, k.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := k.db.EnsureLive(ctx); err != nil {
		k.logger.Error().Err(err).Msg("Keepalive could not restore the database connection")
		return
	}
	k.logger.Debug().Dur("took", time.Since(start)).Msg("Database connection is live")
}

// Stop unschedules the job and waits for a running check to finish
func (k *Keepalive) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.running || k.cron == nil {
		return
	}
	<-k.cron.Stop().Done()
	k.running = false
	k.logger.Info().Msg("Keepalive stopped")
}
