package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ShellWatch/internal/domain/models"
	"ShellWatch/internal/domain/repository"
)

// ClickHouseObservationStore keeps intake observations in ClickHouse so that
// recovered base prices can be audited across hours.
type ClickHouseObservationStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseObservationStore creates ClickHouse-backed observation storage.
func NewClickHouseObservationStore(db *sql.DB, table string) repository.ObservationStore {
	return &ClickHouseObservationStore{db: db, table: table}
}

func (s *ClickHouseObservationStore) Init(ctx context.Context) error {
	return nil // schema init in pkg/clickhouse
}

func (s *ClickHouseObservationStore) StoreBatch(ctx context.Context, obs []models.Observation) error {
	if len(obs) == 0 {
		return nil
	}

	values := make([]string, 0, len(obs))
	args := make([]interface{}, 0, len(obs)*5)
	for _, o := range obs {
		if o.IdentityID == "" || o.ItemID == "" {
			continue
		}
		values = append(values, "(?, ?, ?, ?, ?)")
		args = append(args,
			o.IdentityID,
			o.ItemID,
			time.Unix(o.Hour*3600, 0),
			o.ObservedPrice,
			o.BasePrice,
		)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (identity_id, item_id, hour, observed_price, base_price) VALUES %s",
		s.table, strings.Join(values, ","),
	)
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *ClickHouseObservationStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseObservationStore) Close() error {
	return nil // connection pool managed by pkg/clickhouse client
}
