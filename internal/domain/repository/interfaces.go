package repository

import (
	"context"

	"ShellWatch/internal/domain/models"
)

// ObservationStore keeps intake observations for later analysis.
type ObservationStore interface {
	Init(ctx context.Context) error
	StoreBatch(ctx context.Context, obs []models.Observation) error
	Health(ctx context.Context) error
	Close() error
}

// AlertPublisher announces favorable purchase windows.
type AlertPublisher interface {
	Publish(ctx context.Context, alert *models.DiscountAlert) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordRecovery(outcome string)
	RecordSnapshotBuilt(items int, seconds float64)
	RecordAlertPublished(topic string)
	RecordError(kind string)
	WatchSessionStarted()
	WatchSessionEnded()
}
