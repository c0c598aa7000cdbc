package rates

import "context"

type (
	Fetcher interface {
		// Fetch resolves every query and returns the records that were found,
		// in query order. A single failed query fails the whole batch.
		Fetch(ctx context.Context, queries []Query) ([]RateRecord, error)
	}
)
