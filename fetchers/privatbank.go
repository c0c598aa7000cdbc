package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	rates "github.com/malusev998/privatbank-rates"
)

type PrivatBankFetcher struct {
	URL            string
	Timeout        time.Duration
	MaxConcurrency int
	// Client is shared by every request of a batch. A fresh client is
	// created per batch when nil.
	Client *http.Client
	Logger logrus.FieldLogger
}

func (p PrivatBankFetcher) baseURL() string {
	u := p.URL
	if u == "" {
		u = PrivatBankURL
	}

	if !strings.HasSuffix(u, "/") {
		u += "/"
	}

	return u
}

func (p PrivatBankFetcher) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}

	return p.Logger
}

func (p PrivatBankFetcher) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}

	return &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
		Timeout:   p.Timeout,
	}
}

// FetchExchangeRate asks the archive for every rate published on date and
// picks out currency. A nil record with a nil error means the currency was
// not quoted that day.
func (p PrivatBankFetcher) FetchExchangeRate(ctx context.Context, date, currency string) (*rates.RateRecord, error) {
	client := p.client()
	if p.Client == nil {
		defer client.CloseIdleConnections()
	}

	return p.fetchExchangeRate(ctx, client, date, currency)
}

func (p PrivatBankFetcher) fetchExchangeRate(ctx context.Context, client *http.Client, date, currency string) (*rates.RateRecord, error) {
	// The archive expects the bare "json" flag, so the query is not built with url.Values.
	endpoint := p.baseURL() + "exchange_rates?json&date=" + url.QueryEscape(date)

	req, err := getData(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data for %s on %s: %w", currency, date, err)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data for %s on %s: %w", currency, date, err)
	}
	defer func() { _ = res.Body.Close() }()

	p.logger().WithFields(logrus.Fields{
		"currency": currency,
		"date":     date,
		"status":   res.StatusCode,
	}).Debug("archive responded")

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Currency: currency, Date: date, StatusCode: res.StatusCode}
	}

	var data exchangeRatesResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode data for %s on %s: %w", currency, date, err)
	}

	for _, item := range data.ExchangeRate {
		if item.Currency != currency {
			continue
		}

		return &rates.RateRecord{
			Date:         date,
			Currency:     currency,
			SaleRate:     item.SaleRate,
			PurchaseRate: item.PurchaseRate,
		}, nil
	}

	return nil, nil
}

// Fetch runs every query concurrently over one client. The first failure
// cancels the requests still in flight and is returned on its own; no
// partial result is produced.
func (p PrivatBankFetcher) Fetch(ctx context.Context, queries []rates.Query) ([]rates.RateRecord, error) {
	client := p.client()
	if p.Client == nil {
		defer client.CloseIdleConnections()
	}

	limit := p.MaxConcurrency
	if limit == 0 {
		limit = DefaultMaxConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make([]*rates.RateRecord, len(queries))

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			record, err := p.fetchExchangeRate(gctx, client, q.Date, q.Currency)
			if err != nil {
				return err
			}

			results[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]rates.RateRecord, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}

	return records, nil
}
