package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/questforge/shopkeeper-service/internal/domain"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/metrics"
	"github.com/questforge/shopkeeper-service/internal/registry"
	"github.com/questforge/shopkeeper-service/internal/tickloop"
)

// BackgroundTasks owns the persistence flush cycle. The snapshot is
// taken on the tick loop; only the plain records cross into this
// goroutine, so the store never sees live registry state.
type BackgroundTasks struct {
	Registry      *registry.Registry
	Loop          *tickloop.Loop
	SnapshotRepo  domain.ShopRecordRepository
	Metrics       *metrics.TradeMetrics
	FlushInterval time.Duration
}

func NewBackgroundTasks(
	shopRegistry *registry.Registry,
	loop *tickloop.Loop,
	snapshotRepo domain.ShopRecordRepository,
	tradeMetrics *metrics.TradeMetrics,
	flushInterval time.Duration) *BackgroundTasks {

	return &BackgroundTasks{
		Registry:      shopRegistry,
		Loop:          loop,
		SnapshotRepo:  snapshotRepo,
		Metrics:       tradeMetrics,
		FlushInterval: flushInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startSnapshotFlush(ctx)
}

func (bt *BackgroundTasks) startSnapshotFlush(ctx context.Context) {
	ticker := time.NewTicker(bt.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.FlushIfDirty(ctx); err != nil {
				slog.Error("snapshot flush failed", "error", err.Error())
			}
		}
	}
}

// FlushIfDirty persists the registry if anything changed since the last
// flush. The dirty flag clears when the snapshot is taken; a failed
// write re-marks it so the next tick retries.
func (bt *BackgroundTasks) FlushIfDirty(ctx context.Context) error {
	var (
		records []domain.ShopRecord
		dirty   bool
	)
	err := bt.Loop.Do(ctx, func() {
		if !bt.Registry.Dirty() {
			return
		}
		dirty = true
		records = bt.Registry.Snapshot()
		bt.Registry.ClearDirty()
	})
	if err != nil || !dirty {
		return err
	}

	started := time.Now()
	err = bt.SnapshotRepo.ReplaceAll(records)
	if bt.Metrics != nil {
		bt.Metrics.RecordFlush(time.Since(started).Seconds(), err)
	}
	if err != nil {
		if markErr := bt.Loop.Do(ctx, bt.Registry.MarkDirty); markErr != nil {
			return err
		}
		return err
	}
	slog.Info("registry snapshot flushed", "shops", len(records))
	return nil
}
