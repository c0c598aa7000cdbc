package rates

import "context"

type (
	Service interface {
		GetExchangeRates(ctx context.Context, currencies []string, days int) (ResultSet, error)
	}
)
