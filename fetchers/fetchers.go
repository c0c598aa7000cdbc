package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

const (
	PrivatBankURL         = "https://api.privatbank.ua/p24api/"
	DefaultMaxConcurrency = 32
)

type (
	exchangeRateItem struct {
		BaseCurrency   string              `json:"baseCurrency"`
		Currency       string              `json:"currency"`
		SaleRateNB     decimal.NullDecimal `json:"saleRateNB"`
		PurchaseRateNB decimal.NullDecimal `json:"purchaseRateNB"`
		SaleRate       decimal.NullDecimal `json:"saleRate"`
		PurchaseRate   decimal.NullDecimal `json:"purchaseRate"`
	}

	exchangeRatesResponse struct {
		Date            string             `json:"date"`
		Bank            string             `json:"bank"`
		BaseCurrency    int                `json:"baseCurrency"`
		BaseCurrencyLit string             `json:"baseCurrencyLit"`
		ExchangeRate    []exchangeRateItem `json:"exchangeRate"`
	}

	// StatusError is returned when the API answers a query with anything but 200.
	StatusError struct {
		Currency   string
		Date       string
		StatusCode int
	}
)

var (
	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch data for %s on %s: %d", e.Currency, e.Date, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}

func getData(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}
