// Package provider composes the FMP client, the quote-page scraper and
// the Redis cache into a single contracts.DataProvider. FMP is the
// primary source for every series; the scraper only backs up the price
// snapshot. Fetched series are optionally written through to Postgres.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/external/fmp"
	"github.com/equimetrics/backend/internal/store"
	"github.com/equimetrics/backend/pkg/logger"
	"github.com/equimetrics/backend/pkg/redis"
)

// snapshotSource fetches price snapshots. Both the FMP profile endpoint
// and the quote-page scraper satisfy it.
type snapshotSource interface {
	Snapshot(ctx context.Context, ticker string) (*contracts.CompanySnapshot, error)
}

// statementSource fetches statement and estimate series from FMP.
type statementSource interface {
	QuarterlyIncomeStatements(ctx context.Context, ticker string) ([]contracts.DatedRecord, error)
	AnnualIncomeStatements(ctx context.Context, ticker string) ([]contracts.DatedRecord, error)
	QuarterlyEstimates(ctx context.Context, ticker string) ([]contracts.DatedRecord, error)
	AnnualEstimates(ctx context.Context, ticker string) ([]contracts.DatedRecord, error)
	Profile(ctx context.Context, ticker string) (*contracts.CompanySnapshot, error)
}

// CachingProvider is the production DataProvider. Every series goes
// through the Redis cache; a disabled cache degrades to pass-through.
type CachingProvider struct {
	fmp      statementSource
	fallback snapshotSource
	cache    *redis.Cache
	repo     *store.RecordRepository
	logger   *logger.Logger
}

// Option configures optional provider collaborators.
type Option func(*CachingProvider)

// WithSnapshotFallback installs a secondary snapshot source used when
// the FMP profile call fails.
func WithSnapshotFallback(src snapshotSource) Option {
	return func(p *CachingProvider) { p.fallback = src }
}

// WithStore enables write-through persistence of fetched series.
func WithStore(repo *store.RecordRepository) Option {
	return func(p *CachingProvider) { p.repo = repo }
}

// New creates a caching provider on top of the FMP client.
func New(fmpClient *fmp.Client, cache *redis.Cache, log *logger.Logger, opts ...Option) *CachingProvider {
	p := &CachingProvider{
		fmp:    fmpClient,
		cache:  cache,
		logger: log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ contracts.DataProvider = (*CachingProvider)(nil)

// QuarterlyActuals returns reported quarterly statements, cached daily.
func (p *CachingProvider) QuarterlyActuals(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return p.series(ctx, ticker,
		redis.StatementsKey(normalize(ticker), store.PeriodQuarter),
		store.PeriodQuarter, store.KindActual,
		p.fmp.QuarterlyIncomeStatements)
}

// QuarterlyEstimates returns quarterly analyst estimates, cached hourly.
func (p *CachingProvider) QuarterlyEstimates(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return p.estimateSeries(ctx, ticker,
		redis.EstimatesKey(normalize(ticker), store.PeriodQuarter),
		store.PeriodQuarter,
		p.fmp.QuarterlyEstimates)
}

// AnnualActuals returns reported annual statements, cached daily.
func (p *CachingProvider) AnnualActuals(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return p.series(ctx, ticker,
		redis.StatementsKey(normalize(ticker), store.PeriodAnnual),
		store.PeriodAnnual, store.KindActual,
		p.fmp.AnnualIncomeStatements)
}

// AnnualEstimates returns annual analyst estimates, cached hourly.
func (p *CachingProvider) AnnualEstimates(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return p.estimateSeries(ctx, ticker,
		redis.EstimatesKey(normalize(ticker), store.PeriodAnnual),
		store.PeriodAnnual,
		p.fmp.AnnualEstimates)
}

// Snapshot returns price and market-cap data, FMP first with scraper
// fallback, cached for a few minutes.
func (p *CachingProvider) Snapshot(ctx context.Context, ticker string) (*contracts.CompanySnapshot, error) {
	ticker = normalize(ticker)

	var snapshot contracts.CompanySnapshot
	err := p.cache.GetOrSet(ctx, redis.SnapshotKey(ticker), &snapshot, redis.TTLMedium, func() (interface{}, error) {
		s, err := p.fmp.Profile(ctx, ticker)
		if err == nil {
			return s, nil
		}
		if p.fallback == nil {
			return nil, err
		}

		p.logger.WithError(err).WithField("ticker", ticker).Warn("profile fetch failed, trying quote page")
		s, ferr := p.fallback.Snapshot(ctx, ticker)
		if ferr != nil {
			return nil, fmt.Errorf("profile failed (%v), quote page failed: %w", err, ferr)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// series runs one statement series through cache, fetch and write-through.
func (p *CachingProvider) series(ctx context.Context, ticker, key, period, kind string, fetch func(context.Context, string) ([]contracts.DatedRecord, error)) ([]contracts.DatedRecord, error) {
	ticker = normalize(ticker)

	var records []contracts.DatedRecord
	err := p.cache.GetOrSet(ctx, key, &records, redis.TTLDaily, func() (interface{}, error) {
		recs, err := fetch(ctx, ticker)
		if err != nil {
			return nil, err
		}
		p.persist(ctx, ticker, period, kind, recs)
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// estimateSeries is series with the shorter estimate TTL. Estimates get
// revised intraday; reported statements do not.
func (p *CachingProvider) estimateSeries(ctx context.Context, ticker, key, period string, fetch func(context.Context, string) ([]contracts.DatedRecord, error)) ([]contracts.DatedRecord, error) {
	ticker = normalize(ticker)

	var records []contracts.DatedRecord
	err := p.cache.GetOrSet(ctx, key, &records, redis.TTLLong, func() (interface{}, error) {
		recs, err := fetch(ctx, ticker)
		if err != nil {
			return nil, err
		}
		p.persist(ctx, ticker, period, store.KindEstimate, recs)
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// persist writes fetched records through to Postgres. Persistence is
// best effort; a storage failure never blocks a read.
func (p *CachingProvider) persist(ctx context.Context, ticker, period, kind string, recs []contracts.DatedRecord) {
	if p.repo == nil || len(recs) == 0 {
		return
	}
	if err := p.repo.SaveBatch(ctx, ticker, period, kind, recs); err != nil {
		p.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
			"period": period,
			"kind":   kind,
		}).Warn("record write-through failed")
	}
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
