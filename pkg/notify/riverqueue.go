package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// riverQueueSink enqueues each notification as a river job; a river worker
// (see example/riverqueue) picks it up and performs the actual delivery.
type riverQueueSink struct {
	db  *sql.DB
	cfg RiverQueueConfig
}

func newRiverQueueSink(cfg RiverQueueConfig) (*riverQueueSink, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "postgres"
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("riverqueue dsn is required")
	}
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &riverQueueSink{db: db, cfg: cfg}, nil
}

// Send inserts a new job into the river jobs table.
func (s *riverQueueSink) Send(ctx context.Context, destination string, msg Message) error {
	argsPayload, err := json.Marshal(struct {
		Destination string  `json:"destination"`
		Message     Message `json:"message"`
	}{Destination: destination, Message: msg})
	if err != nil {
		return err
	}

	metadata := map[string]interface{}{
		"tenant":      msg.Tenant,
		"kind":        msg.Kind,
		"destination": destination,
	}
	metadataPayload, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	table := strings.TrimSpace(s.cfg.Table)
	if table == "" {
		table = "river_job"
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (args, kind, max_attempts, metadata, priority, queue, scheduled_at, tags)
VALUES ($1, $2, $3, $4, $5, $6, now(), $7)`,
		table,
	)

	_, err = s.db.ExecContext(
		ctx,
		query,
		string(argsPayload),
		s.cfg.Kind,
		s.cfg.MaxAttempts,
		string(metadataPayload),
		s.cfg.Priority,
		s.cfg.Queue,
		pq.Array(s.cfg.Tags),
	)
	return err
}

// Close closes the underlying database connection.
func (s *riverQueueSink) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
