package rates

import "context"

type Storage interface {
	Store(ctx context.Context, records []RateRecord) ([]RateRecordWithID, error)
	GetStorageProviderName() string
	Migrate(ctx context.Context) error
	Drop(ctx context.Context) error
	Close() error
}
