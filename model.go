package rates

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type (
	// Query is a single (date, currency) pair that maps to one API request.
	Query struct {
		Date     string
		Currency string
	}

	// RateRecord is the parsed answer to one Query. Rates missing from the
	// response stay invalid instead of being defaulted to zero.
	RateRecord struct {
		Date         string
		Currency     string
		SaleRate     decimal.NullDecimal
		PurchaseRate decimal.NullDecimal
	}

	RateRecordWithID struct {
		RateRecord
		ID interface{}
	}

	Rate struct {
		Sale     decimal.NullDecimal
		Purchase decimal.NullDecimal
	}

	CurrencyRate struct {
		Currency string
		Rate     Rate
	}

	// DayRates holds every currency rate known for one date. It marshals to a
	// single-key object: {"01.01.2024": {"USD": {"sale": 39.5, "purchase": 39}}}.
	DayRates struct {
		Date  string
		Rates []CurrencyRate
	}

	ResultSet []DayRates
)

func (r Rate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"sale":`)
	buf.WriteString(jsonNumber(r.Sale))
	buf.WriteString(`,"purchase":`)
	buf.WriteString(jsonNumber(r.Purchase))
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func jsonNumber(d decimal.NullDecimal) string {
	if !d.Valid {
		return "null"
	}

	return d.Decimal.String()
}

func (d DayRates) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	date, err := json.Marshal(d.Date)
	if err != nil {
		return nil, err
	}

	buf.WriteByte('{')
	buf.Write(date)
	buf.WriteString(":{")

	for i, cr := range d.Rates {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(cr.Currency)
		if err != nil {
			return nil, err
		}

		value, err := cr.Rate.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteString("}}")

	return buf.Bytes(), nil
}

func (rs ResultSet) MarshalJSON() ([]byte, error) {
	if rs == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]DayRates(rs))
}

// Lookup returns the rate stored for currency on date.
func (rs ResultSet) Lookup(date, currency string) (Rate, bool) {
	for _, day := range rs {
		if day.Date != date {
			continue
		}

		for _, cr := range day.Rates {
			if cr.Currency == currency {
				return cr.Rate, true
			}
		}
	}

	return Rate{}, false
}
