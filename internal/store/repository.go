// Package store persists raw provider records to Postgres. Records are
// kept for audit and offline backtesting; computed metrics are derived
// on demand and never written here.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/equimetrics/backend/internal/contracts"
)

// Period identifies the reporting cadence of a stored record.
const (
	PeriodQuarter = "quarter"
	PeriodAnnual  = "annual"
)

// Kind separates reported figures from analyst estimates.
const (
	KindActual   = "actual"
	KindEstimate = "estimate"
)

// RecordRepository persists DatedRecords keyed by
// (ticker, period, kind, report_date).
type RecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository creates a record repository backed by the given pool.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// EnsureSchema creates the records table when it does not exist yet.
// Safe to call on every startup.
func (r *RecordRepository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE SCHEMA IF NOT EXISTS data;
		CREATE TABLE IF NOT EXISTS data.financial_records (
			ticker       TEXT NOT NULL,
			period       TEXT NOT NULL,
			kind         TEXT NOT NULL,
			report_date  DATE NOT NULL,
			revenue                  DOUBLE PRECISION,
			cost_of_revenue          DOUBLE PRECISION,
			gross_profit             DOUBLE PRECISION,
			net_income               DOUBLE PRECISION,
			eps                      DOUBLE PRECISION,
			diluted_eps              DOUBLE PRECISION,
			estimated_eps_avg        DOUBLE PRECISION,
			estimated_revenue_avg    DOUBLE PRECISION,
			estimated_net_income_avg DOUBLE PRECISION,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (ticker, period, kind, report_date)
		);
	`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure records schema: %w", err)
	}
	return nil
}

// Save upserts a single record. Nil fields are stored as NULL so a
// reload round-trips the missing-vs-zero distinction.
func (r *RecordRepository) Save(ctx context.Context, ticker, period, kind string, rec contracts.DatedRecord) error {
	query := `
		INSERT INTO data.financial_records (
			ticker, period, kind, report_date,
			revenue, cost_of_revenue, gross_profit, net_income,
			eps, diluted_eps,
			estimated_eps_avg, estimated_revenue_avg, estimated_net_income_avg,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
		ON CONFLICT (ticker, period, kind, report_date) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			cost_of_revenue = EXCLUDED.cost_of_revenue,
			gross_profit = EXCLUDED.gross_profit,
			net_income = EXCLUDED.net_income,
			eps = EXCLUDED.eps,
			diluted_eps = EXCLUDED.diluted_eps,
			estimated_eps_avg = EXCLUDED.estimated_eps_avg,
			estimated_revenue_avg = EXCLUDED.estimated_revenue_avg,
			estimated_net_income_avg = EXCLUDED.estimated_net_income_avg,
			updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query,
		ticker, period, kind, rec.ReportDate,
		rec.Revenue, rec.CostOfRevenue, rec.GrossProfit, rec.NetIncome,
		rec.EPS, rec.DilutedEPS,
		rec.EstimatedEPSAvg, rec.EstimatedRevenueAvg, rec.EstimatedNetIncomeAvg,
	)
	if err != nil {
		return fmt.Errorf("save record %s/%s/%s: %w", ticker, period, kind, err)
	}
	return nil
}

// SaveBatch upserts a slice of records for one series.
func (r *RecordRepository) SaveBatch(ctx context.Context, ticker, period, kind string, recs []contracts.DatedRecord) error {
	for _, rec := range recs {
		if err := r.Save(ctx, ticker, period, kind, rec); err != nil {
			return err
		}
	}
	return nil
}

// Recent returns up to limit records for one series, most recent first.
func (r *RecordRepository) Recent(ctx context.Context, ticker, period, kind string, limit int) ([]contracts.DatedRecord, error) {
	query := `
		SELECT ticker, report_date,
		       revenue, cost_of_revenue, gross_profit, net_income,
		       eps, diluted_eps,
		       estimated_eps_avg, estimated_revenue_avg, estimated_net_income_avg
		FROM data.financial_records
		WHERE ticker = $1 AND period = $2 AND kind = $3
		ORDER BY report_date DESC
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, ticker, period, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("query records %s/%s/%s: %w", ticker, period, kind, err)
	}
	defer rows.Close()

	var out []contracts.DatedRecord
	for rows.Next() {
		var rec contracts.DatedRecord
		if err := rows.Scan(
			&rec.Ticker, &rec.ReportDate,
			&rec.Revenue, &rec.CostOfRevenue, &rec.GrossProfit, &rec.NetIncome,
			&rec.EPS, &rec.DilutedEPS,
			&rec.EstimatedEPSAvg, &rec.EstimatedRevenueAvg, &rec.EstimatedNetIncomeAvg,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
