package contracts

import "context"

// DataProvider supplies the per-ticker source data the metrics engine
// consumes. An empty slice and a transport error are equivalent at the
// calculation boundary: metrics that need the series fail individually.
type DataProvider interface {
	// QuarterlyActuals returns reported quarterly income statements,
	// most recent first.
	QuarterlyActuals(ctx context.Context, ticker string) ([]DatedRecord, error)

	// QuarterlyEstimates returns quarterly analyst estimates keyed by
	// expected report date.
	QuarterlyEstimates(ctx context.Context, ticker string) ([]DatedRecord, error)

	// AnnualActuals returns reported annual income statements, most
	// recent first.
	AnnualActuals(ctx context.Context, ticker string) ([]DatedRecord, error)

	// AnnualEstimates returns annual analyst estimates.
	AnnualEstimates(ctx context.Context, ticker string) ([]DatedRecord, error)

	// Snapshot returns current price and market-cap data.
	Snapshot(ctx context.Context, ticker string) (*CompanySnapshot, error)
}
