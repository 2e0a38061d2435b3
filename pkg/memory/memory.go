// Package memory persists long-lived conversation summaries per customer in
// Postgres. Banking state itself is session-scoped and in-memory; only the
// cross-conversation memory summary lives here.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
)

type Config struct {
	DSN     string        `envconfig:"DSN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type summaryRow struct {
	bun.BaseModel `bun:"table:conversation_summaries"`

	CustomerRef string    `bun:"customer_ref,pk"`
	Summary     string    `bun:"summary,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// Store implements contract.MemoryStore on top of bun/Postgres.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

var _ contractx.MemoryStore = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("memory store dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &Store{db: db, now: time.Now}, nil
}

// EnsureSchema creates the summaries table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*summaryRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create conversation_summaries table: %w", err)
	}
	return nil
}

func (s *Store) ReadSummary(ctx context.Context, customerRef string) (string, error) {
	if strings.TrimSpace(customerRef) == "" {
		return "", errors.New("customer ref is empty")
	}

	var row summaryRow
	err := s.db.NewSelect().
		Model(&row).
		Where("customer_ref = ?", customerRef).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read summary for %s: %w", customerRef, err)
	}
	return row.Summary, nil
}

func (s *Store) WriteSummary(ctx context.Context, customerRef string, update string) error {
	if strings.TrimSpace(customerRef) == "" {
		return errors.New("customer ref is empty")
	}
	if strings.TrimSpace(update) == "" {
		return nil
	}

	row := summaryRow{
		CustomerRef: customerRef,
		Summary:     update,
		UpdatedAt:   s.now().UTC(),
	}
	_, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (customer_ref) DO UPDATE").
		Set("summary = EXCLUDED.summary").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("write summary for %s: %w", customerRef, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
