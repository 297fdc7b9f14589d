package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ShellWatch/internal/domain/models"
	domrepo "ShellWatch/internal/domain/repository"
	"ShellWatch/internal/services/pricing"
	"ShellWatch/pkg/cache"
	applogger "ShellWatch/pkg/logger"
	"ShellWatch/pkg/util"
)

// BuilderConfig holds the pricing parameters threaded into every build.
type BuilderConfig struct {
	ReferenceBasePrice int
	EventEndHour       int64
	AlertThreshold     float64
	AlertTopic         string
}

// SnapshotBuilder turns a pasted shop payload into a ranked, cached snapshot:
// validate intake, recover each item's base price, simulate purchase windows
// through the end of the event, and rank items for display.
type SnapshotBuilder struct {
	cache   cache.Service
	store   domrepo.ObservationStore // nil when history is disabled
	alerts  domrepo.AlertPublisher   // nil when alerts are disabled
	metrics domrepo.Metrics
	logger  *applogger.Logger
	cfg     BuilderConfig
}

// NewSnapshotBuilder creates the snapshot pipeline. store and alerts may be nil.
func NewSnapshotBuilder(
	c cache.Service,
	store domrepo.ObservationStore,
	alerts domrepo.AlertPublisher,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	cfg BuilderConfig,
) *SnapshotBuilder {
	return &SnapshotBuilder{
		cache:   c,
		store:   store,
		alerts:  alerts,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// Build validates the raw payload and computes a snapshot for the given hour.
// Items that fail base price recovery keep the unknown sentinel and an intact
// schedule; only structurally malformed payloads fail the whole build.
func (b *SnapshotBuilder) Build(ctx context.Context, identityID string, payload json.RawMessage, pinned []string, nowHour int64) (*models.Snapshot, error) {
	if identityID == "" {
		return nil, fmt.Errorf("identity id required")
	}

	items, err := models.ParseIntake(payload)
	if err != nil {
		b.metrics.RecordError("intake")
		return nil, err
	}

	start := time.Now()
	toHour := b.cfg.EventEndHour
	if toHour < nowHour {
		toHour = nowHour
	}

	// Each item is an independent pure computation; fan out like the rest of
	// the pipeline and reassemble by index to keep the intake order.
	type result struct {
		idx  int
		item models.Item
	}
	ch := make(chan result, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(idx int, item models.Item) {
			defer wg.Done()
			item.BasePrice = pricing.RecoverBasePrice(identityID, item.ID, item.Price, nowHour)
			item.BestTimesToBuy = pricing.BuildSchedule(identityID, item.ID, nowHour, toHour, b.cfg.ReferenceBasePrice)
			ch <- result{idx: idx, item: item}
		}(i, items[i])
	}
	go func() { wg.Wait(); close(ch) }()

	for r := range ch {
		items[r.idx] = r.item
		if r.item.HasKnownBasePrice() {
			b.metrics.RecordRecovery("found")
		} else {
			b.metrics.RecordRecovery("not_found")
			b.logger.Warn("base price not recovered",
				applogger.String("item", r.item.ID),
				applogger.Int("observed", r.item.Price),
				applogger.Int64("hour", nowHour),
			)
		}
	}

	snapshot := &models.Snapshot{
		IdentityID:          identityID,
		Items:               pricing.Rank(items, pinned),
		Pinned:              pinned,
		LastUpdatedUnixHour: nowHour,
	}

	b.cacheSnapshot(ctx, snapshot)
	b.storeObservations(ctx, snapshot, nowHour)
	b.publishAlerts(ctx, snapshot)

	b.metrics.RecordSnapshotBuilt(len(items), time.Since(start).Seconds())
	b.logger.Info("snapshot built",
		applogger.String("identity", identityID),
		applogger.Int("items", len(items)),
		applogger.Int64("hour", nowHour),
	)
	return snapshot, nil
}

// Cached returns the snapshot previously built for this identity and hour.
// A snapshot from an earlier hour is stale and reported as a miss.
func (b *SnapshotBuilder) Cached(ctx context.Context, identityID string, nowHour int64) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := b.cache.Get(ctx, snapshotKey(identityID, nowHour), &snapshot); err != nil {
		return nil, err
	}
	if snapshot.LastUpdatedUnixHour != nowHour {
		return nil, cache.ErrCacheMiss
	}
	return &snapshot, nil
}

// Refresh advances a snapshot to a new hour without fresh intake. Recovered
// base prices are stable, so every current price is recomputable from them;
// items with an unknown base keep their last observed price.
func (b *SnapshotBuilder) Refresh(ctx context.Context, snapshot *models.Snapshot, nowHour int64) *models.Snapshot {
	toHour := b.cfg.EventEndHour
	if toHour < nowHour {
		toHour = nowHour
	}

	items := make([]models.Item, len(snapshot.Items))
	bounds := models.DefaultPriceBounds()
	for i, item := range snapshot.Items {
		if item.HasKnownBasePrice() {
			item.Price = pricing.Price(snapshot.IdentityID, item.ID, item.BasePrice, nowHour, bounds)
		}
		item.BestTimesToBuy = pricing.BuildSchedule(snapshot.IdentityID, item.ID, nowHour, toHour, b.cfg.ReferenceBasePrice)
		items[i] = item
	}

	refreshed := &models.Snapshot{
		IdentityID:          snapshot.IdentityID,
		Items:               pricing.Rank(items, snapshot.Pinned),
		Pinned:              snapshot.Pinned,
		LastUpdatedUnixHour: nowHour,
	}
	b.cacheSnapshot(ctx, refreshed)
	return refreshed
}

func (b *SnapshotBuilder) cacheSnapshot(ctx context.Context, snapshot *models.Snapshot) {
	ttl := time.Until(util.HourStart(snapshot.LastUpdatedUnixHour + 1))
	if ttl <= 0 {
		ttl = time.Minute
	}
	key := snapshotKey(snapshot.IdentityID, snapshot.LastUpdatedUnixHour)
	if err := b.cache.Set(ctx, key, snapshot, ttl); err != nil {
		b.metrics.RecordError("cache")
		b.logger.Warn("snapshot cache write failed", applogger.Error(err))
	}
}

func (b *SnapshotBuilder) storeObservations(ctx context.Context, snapshot *models.Snapshot, hour int64) {
	if b.store == nil {
		return
	}

	obs := make([]models.Observation, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		obs = append(obs, models.Observation{
			IdentityID:    snapshot.IdentityID,
			ItemID:        item.ID,
			Hour:          hour,
			ObservedPrice: item.Price,
			BasePrice:     item.BasePrice,
		})
	}
	if err := b.store.StoreBatch(ctx, obs); err != nil {
		b.metrics.RecordError("history")
		b.logger.Warn("observation store failed", applogger.Error(err))
	}
}

func (b *SnapshotBuilder) publishAlerts(ctx context.Context, snapshot *models.Snapshot) {
	if b.alerts == nil {
		return
	}

	for _, item := range snapshot.Items {
		if !item.HasKnownBasePrice() || len(item.BestTimesToBuy) == 0 {
			continue
		}
		best := item.BestTimesToBuy[0]
		if best.DiscountPercent < b.cfg.AlertThreshold {
			continue
		}
		alert := &models.DiscountAlert{
			IdentityID:      snapshot.IdentityID,
			ItemID:          item.ID,
			ItemName:        item.Name,
			Time:            best.Time,
			DiscountPercent: best.DiscountPercent,
		}
		if err := b.alerts.Publish(ctx, alert); err != nil {
			b.metrics.RecordError("alert")
			b.logger.Warn("alert publish failed", applogger.Error(err), applogger.String("item", item.ID))
			continue
		}
		b.metrics.RecordAlertPublished(b.cfg.AlertTopic)
	}
}

func snapshotKey(identityID string, hour int64) string {
	return fmt.Sprintf("snapshot:%s:%d", identityID, hour)
}
