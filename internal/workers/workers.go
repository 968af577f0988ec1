package workers

import (
	"context"

	"github.com/MKhiriev/go-repa/internal/config"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/metrics"
	"github.com/MKhiriev/go-repa/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the server's background workers. A zero interval
// disables the user statistics worker.
func NewWorkers(cfg config.Workers, users store.UserRepository, m *metrics.Metrics, log *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.UserStatsInterval > 0 && m != nil {
		w.workers = append(w.workers, NewUserStatsWorker(users, m, cfg.UserStatsInterval, log))
	}
	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
