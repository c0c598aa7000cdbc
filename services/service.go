package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	rates "github.com/malusev998/privatbank-rates"
)

type Service struct {
	Fetcher rates.Fetcher
	Storage []rates.Storage
	// Now is read once per call; every date offset is computed from it.
	Now    func() time.Time
	Logger logrus.FieldLogger
}

func (s Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}

func (s Service) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}

	return s.Logger
}

func saveToStorage(
	ctx context.Context,
	records []rates.RateRecord,
	data map[string][]rates.RateRecordWithID,
	storage rates.Storage,
	mutex sync.Locker,
) error {
	saved, err := storage.Store(ctx, records)
	if err != nil {
		return fmt.Errorf("error while saving to %s: %w", storage.GetStorageProviderName(), err)
	}

	mutex.Lock()
	data[storage.GetStorageProviderName()] = saved
	mutex.Unlock()

	return nil
}

func (s Service) save(ctx context.Context, records []rates.RateRecord) (map[string][]rates.RateRecordWithID, error) {
	mutex := &sync.Mutex{}
	data := make(map[string][]rates.RateRecordWithID, len(s.Storage))

	g, gctx := errgroup.WithContext(ctx)
	for _, storage := range s.Storage {
		storage := storage
		g.Go(func() error {
			return saveToStorage(gctx, records, data, storage, mutex)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// GetExchangeRates fetches sale and purchase rates of currencies for today and
// the days-1 days before it, grouped by date. Any failed request fails the
// whole call.
func (s Service) GetExchangeRates(ctx context.Context, currencies []string, days int) (rates.ResultSet, error) {
	log := s.logger().WithField("batch", uuid.NewString())

	dates := rates.Dates(s.now(), days)
	queries := rates.BuildQueries(currencies, dates)

	log.WithFields(logrus.Fields{
		"currencies": currencies,
		"days":       days,
		"queries":    len(queries),
	}).Debug("fetching exchange rates")

	records, err := s.Fetcher.Fetch(ctx, queries)
	if err != nil {
		log.WithError(err).Debug("batch failed")
		return nil, err
	}

	if len(s.Storage) > 0 && len(records) > 0 {
		saved, err := s.save(ctx, records)
		if err != nil {
			return nil, err
		}

		for storage, r := range saved {
			log.WithField("storage", storage).Debugf("%d records saved", len(r))
		}
	}

	log.WithField("records", len(records)).Debug("batch finished")

	return rates.Aggregate(records), nil
}
