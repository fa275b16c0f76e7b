package workers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"chat-store/observability"

	"github.com/dgraph-io/badger/v4"
)

// maintainedStore is the part of *badger.DB the maintenance loop needs.
type maintainedStore interface {
	Size() (lsm, vlog int64)
	RunValueLogGC(discardRatio float64) error
}

// StoreMaintenanceWorker reclaims value log space left behind by replaced and
// deleted documents, and reports the on-disk size of the store.
type StoreMaintenanceWorker struct {
	db           maintainedStore
	interval     time.Duration
	discardRatio float64
	log          *slog.Logger
}

func NewStoreMaintenanceWorker(db maintainedStore, interval time.Duration, discardRatio float64, log *slog.Logger) *StoreMaintenanceWorker {
	return &StoreMaintenanceWorker{db: db, interval: interval, discardRatio: discardRatio, log: log}
}

func (w *StoreMaintenanceWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.report()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.collect()
			w.report()
		}
	}
}

// collect rewrites value log files until badger finds nothing worth it.
func (w *StoreMaintenanceWorker) collect() {
	rewritten := 0
	for {
		err := w.db.RunValueLogGC(w.discardRatio)
		if err == nil {
			rewritten++
			continue
		}
		if !stderrors.Is(err, badger.ErrNoRewrite) && !stderrors.Is(err, badger.ErrRejected) {
			w.log.Warn("Value log GC failed", "error", err)
		}
		break
	}
	if rewritten > 0 {
		observability.ValueLogRewrites.Add(float64(rewritten))
		w.log.Debug("Value log GC", "rewritten", rewritten)
	}
}

func (w *StoreMaintenanceWorker) report() {
	lsm, vlog := w.db.Size()
	observability.StoreBytes.WithLabelValues("lsm").Set(float64(lsm))
	observability.StoreBytes.WithLabelValues("vlog").Set(float64(vlog))
}
