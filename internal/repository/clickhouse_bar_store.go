package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"IndexBoard/internal/domain/models"
	pkgch "IndexBoard/pkg/clickhouse"
	applogger "IndexBoard/pkg/logger"
	"IndexBoard/pkg/util"
)

// Schema statements run on startup (idempotent).
var SchemaStatements = []string{
	"CREATE DATABASE IF NOT EXISTS indexboard",
	`CREATE TABLE IF NOT EXISTS indexboard.daily_bars (
        symbol String,
        day Date,
        open Float64,
        high Float64,
        low Float64,
        close Float64,
        volume Float64
    ) ENGINE=ReplacingMergeTree ORDER BY (symbol, day)`,
}

// CHBarStore implements BarStore backed by ClickHouse.
type CHBarStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHBarStore) UpsertDailyBars(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO indexboard.daily_bars (symbol, day, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		day := util.TruncateToDay(b.Time)
		if _, err := stmt.ExecContext(ctx, symbol, day, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse upsert_daily_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(bars)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHBarStore) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	start := time.Now()
	const q = `
        SELECT day, open, high, low, close, volume
        FROM indexboard.daily_bars FINAL
        WHERE symbol = ? AND day >= ? AND day <= ?
        ORDER BY day ASC
    `
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily_bars query error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get daily bars: %w", err)
	}
	defer rows.Close()

	out := make([]models.Bar, 0, 1024)
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Time, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse get_daily_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHBarStore) GetLatestClose(ctx context.Context, symbol string) (models.Bar, error) {
	const q = `
        SELECT day, open, high, low, close, volume
        FROM indexboard.daily_bars FINAL
        WHERE symbol = ?
        ORDER BY day DESC
        LIMIT 1
    `
	var b models.Bar
	row := s.db.QueryRowContext(ctx, q, symbol)
	if err := row.Scan(&b.Time, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
		if err == sql.ErrNoRows {
			return models.Bar{}, fmt.Errorf("no history for %s", symbol)
		}
		return models.Bar{}, fmt.Errorf("latest close: %w", err)
	}
	return b, nil
}

func (s *CHBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
