package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"ShellWatch/internal/domain/models"
	"ShellWatch/pkg/cache"
	applogger "ShellWatch/pkg/logger"
	"ShellWatch/pkg/util"
)

type fakeMetrics struct {
	mu         sync.Mutex
	recoveries map[string]int
	snapshots  int
	alerts     int
	errors     map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{recoveries: map[string]int{}, errors: map[string]int{}}
}

func (m *fakeMetrics) RecordRecovery(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recoveries[outcome]++
}

func (m *fakeMetrics) RecordSnapshotBuilt(items int, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots++
}

func (m *fakeMetrics) RecordAlertPublished(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) WatchSessionStarted() {}

func (m *fakeMetrics) WatchSessionEnded() {}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []*models.DiscountAlert
}

func (f *fakeAlerts) Publish(_ context.Context, a *models.DiscountAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
	return nil
}

func (f *fakeAlerts) Close() error { return nil }

func testBuilder(t *testing.T, alerts *fakeAlerts, metrics *fakeMetrics) *SnapshotBuilder {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })

	var pub *fakeAlerts
	cfg := BuilderConfig{
		ReferenceBasePrice: 250,
		EventEndHour:       487005,
		AlertThreshold:     5,
		AlertTopic:         "shellwatch.alerts",
	}
	if alerts != nil {
		pub = alerts
	}
	if pub == nil {
		return NewSnapshotBuilder(mc, nil, nil, metrics, log, cfg)
	}
	return NewSnapshotBuilder(mc, nil, pub, metrics, log, cfg)
}

// Price 101 at hour 487000 recovers base 100 for user123/item456.
const intakePayload = `{"items":[{"id":"item456","name":"Compass","description":"d","image":"i","price":101}]}`

func TestBuildSnapshot(t *testing.T) {
	metrics := newFakeMetrics()
	b := testBuilder(t, nil, metrics)

	snap, err := b.Build(context.Background(), "user123", json.RawMessage(intakePayload), nil, 487000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(snap.Items))
	}

	item := snap.Items[0]
	if item.BasePrice != 100 {
		t.Fatalf("recovered base %d, want 100", item.BasePrice)
	}
	if len(item.BestTimesToBuy) != 6 {
		t.Fatalf("expected 6 schedule entries, got %d", len(item.BestTimesToBuy))
	}
	if !item.BestTimesToBuy[0].Time.Equal(util.HourStart(487001)) {
		t.Fatalf("best window %v, want hour 487001", item.BestTimesToBuy[0].Time)
	}
	if snap.LastUpdatedUnixHour != 487000 {
		t.Fatalf("unexpected snapshot hour %d", snap.LastUpdatedUnixHour)
	}
	if metrics.recoveries["found"] != 1 {
		t.Fatalf("expected 1 found recovery, got %v", metrics.recoveries)
	}
}

func TestBuildRejectsMalformedPayload(t *testing.T) {
	b := testBuilder(t, nil, newFakeMetrics())

	for _, payload := range []string{
		``,
		`not json`,
		`[]`,
		`{"items":"nope"}`,
		`{"items":[]}`,
		`{"items":[{"name":"no id","price":5}]}`,
		`{"items":[{"id":"a","name":"no price"}]}`,
	} {
		_, err := b.Build(context.Background(), "user123", json.RawMessage(payload), nil, 487000)
		if !errors.Is(err, models.ErrMalformedIntake) {
			t.Fatalf("payload %q: expected malformed intake error, got %v", payload, err)
		}
	}
}

func TestBuildCachesSnapshot(t *testing.T) {
	b := testBuilder(t, nil, newFakeMetrics())
	ctx := context.Background()

	if _, err := b.Cached(ctx, "user123", 487000); !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("expected miss before build, got %v", err)
	}

	built, err := b.Build(ctx, "user123", json.RawMessage(intakePayload), nil, 487000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	cached, err := b.Cached(ctx, "user123", 487000)
	if err != nil {
		t.Fatalf("cached: %v", err)
	}
	if cached.IdentityID != built.IdentityID || len(cached.Items) != len(built.Items) {
		t.Fatalf("cached snapshot differs: %+v", cached)
	}

	// A different hour is stale by definition.
	if _, err := b.Cached(ctx, "user123", 487001); !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("expected miss for other hour, got %v", err)
	}
}

func TestBuildPublishesAlerts(t *testing.T) {
	alerts := &fakeAlerts{}
	b := testBuilder(t, alerts, newFakeMetrics())

	_, err := b.Build(context.Background(), "user123", json.RawMessage(intakePayload), nil, 487000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Best discount in 487000..487005 is 9.2% at hour 487001, above the 5% threshold.
	if len(alerts.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts.alerts))
	}
	a := alerts.alerts[0]
	if a.ItemID != "item456" || !a.Time.Equal(util.HourStart(487001)) {
		t.Fatalf("unexpected alert %+v", a)
	}
}

func TestRefreshAdvancesHour(t *testing.T) {
	b := testBuilder(t, nil, newFakeMetrics())
	ctx := context.Background()

	snap, err := b.Build(ctx, "user123", json.RawMessage(intakePayload), nil, 487000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if snap.Items[0].Price != 101 {
		t.Fatalf("observed price %d, want 101", snap.Items[0].Price)
	}

	refreshed := b.Refresh(ctx, snap, 487001)
	if refreshed.LastUpdatedUnixHour != 487001 {
		t.Fatalf("refresh hour %d, want 487001", refreshed.LastUpdatedUnixHour)
	}
	// Base 100 prices at 91 for hour 487001.
	if refreshed.Items[0].Price != 91 {
		t.Fatalf("refreshed price %d, want 91", refreshed.Items[0].Price)
	}
	if len(refreshed.Items[0].BestTimesToBuy) != 5 {
		t.Fatalf("expected 5 remaining hours, got %d", len(refreshed.Items[0].BestTimesToBuy))
	}

	if _, err := b.Cached(ctx, "user123", 487001); err != nil {
		t.Fatalf("refresh should cache new hour: %v", err)
	}
}

func TestBuildRequiresIdentity(t *testing.T) {
	b := testBuilder(t, nil, newFakeMetrics())
	if _, err := b.Build(context.Background(), "", json.RawMessage(intakePayload), nil, 487000); err == nil {
		t.Fatalf("expected error for empty identity")
	}
}
