package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/metrics"
	"github.com/MKhiriev/go-repa/internal/store"
)

// UserStatsWorker periodically publishes the number of accounts per
// lifecycle state to the users gauge.
type UserStatsWorker struct {
	users    store.UserRepository
	metrics  *metrics.Metrics
	interval time.Duration
	logger   *logger.Logger
}

func NewUserStatsWorker(users store.UserRepository, m *metrics.Metrics, interval time.Duration, log *logger.Logger) *UserStatsWorker {
	return &UserStatsWorker{
		users:    users,
		metrics:  m,
		interval: interval,
		logger:   log,
	}
}

// Run refreshes the gauge once right away and then on every tick until ctx
// is done.
func (w *UserStatsWorker) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.refresh(ctx)
			}
		}
	}()
}

func (w *UserStatsWorker) refresh(ctx context.Context) {
	stats, err := w.users.CountUsersByState(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Str("func", "*UserStatsWorker.refresh").Msg("error counting users")
		}
		return
	}
	w.metrics.SetUserStats(stats)
}
