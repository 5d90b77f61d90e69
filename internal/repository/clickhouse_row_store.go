package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"QuantCore/internal/domain/models"
	pkgch "QuantCore/pkg/clickhouse"
	applogger "QuantCore/pkg/logger"
)

const trainingRowsDDL = `
CREATE TABLE IF NOT EXISTS training_rows (
    symbol      LowCardinality(String),
    basis_date  Date,
    target_date Date,
    label       LowCardinality(String),
    change_pct  Float64,
    features    String,
    inserted_at DateTime DEFAULT now()
) ENGINE = ReplacingMergeTree(inserted_at)
ORDER BY (symbol, target_date)
`

// CHRowStore persists labeled training rows in ClickHouse. The feature
// map is stored as a JSON string so new feature names never require a
// schema migration.
type CHRowStore struct {
	client *pkgch.Client
	db     *sql.DB
	logger *applogger.Logger
}

func NewCHRowStore(client *pkgch.Client, logger *applogger.Logger) *CHRowStore {
	return &CHRowStore{client: client, db: client.DB(), logger: logger}
}

func (s *CHRowStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, []string{trainingRowsDDL})
}

func (s *CHRowStore) StoreBatch(ctx context.Context, rows []*models.TrainingRow) error {
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()

	const chunkSize = 2000
	for lo := 0; lo < len(rows); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(rows) {
			hi = len(rows)
		}
		values := make([]string, 0, hi-lo)
		args := make([]any, 0, (hi-lo)*6)
		for _, r := range rows[lo:hi] {
			if r == nil || r.Symbol == "" {
				continue
			}
			featJSON, err := json.Marshal(r.Features)
			if err != nil {
				return fmt.Errorf("marshal features: %w", err)
			}
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args, r.Symbol, r.BasisDate, r.TargetDate, r.Label, r.ChangePct, string(featJSON))
		}
		if len(values) == 0 {
			continue
		}
		q := "INSERT INTO training_rows (symbol, basis_date, target_date, label, change_pct, features) VALUES " +
			strings.Join(values, ", ")
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.logger.Error("clickhouse store rows failed",
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
			return fmt.Errorf("store training rows: %w", err)
		}
	}

	s.logger.Debug("clickhouse store rows ok",
		applogger.Int("rows", len(rows)),
		applogger.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (s *CHRowStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.TrainingRow, error) {
	const q = `
        SELECT symbol, basis_date, target_date, label, change_pct, features
        FROM training_rows
        WHERE symbol = ? AND target_date >= ? AND target_date <= ?
        ORDER BY target_date ASC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query training rows: %w", err)
	}
	defer rows.Close()

	out := make([]*models.TrainingRow, 0, limit)
	for rows.Next() {
		var (
			r        models.TrainingRow
			featJSON string
		)
		if err := rows.Scan(&r.Symbol, &r.BasisDate, &r.TargetDate, &r.Label, &r.ChangePct, &featJSON); err != nil {
			return nil, fmt.Errorf("scan training row: %w", err)
		}
		if err := json.Unmarshal([]byte(featJSON), &r.Features); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHRowStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *CHRowStore) Close() error {
	return s.client.Close()
}
