package rates_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	rates "github.com/malusev998/privatbank-rates"
)

func rate(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("GroupsByDateInFirstSeenOrder", func(t *testing.T) {
		asserts := require.New(t)
		records := []rates.RateRecord{
			{Date: "01.01.2024", Currency: "USD", SaleRate: rate("39.5"), PurchaseRate: rate("39.0")},
			{Date: "31.12.2023", Currency: "USD", SaleRate: rate("39.4"), PurchaseRate: rate("38.9")},
			{Date: "01.01.2024", Currency: "EUR", SaleRate: rate("43.1"), PurchaseRate: rate("42.2")},
		}

		result := rates.Aggregate(records)

		asserts.Len(result, 2)
		asserts.Equal("01.01.2024", result[0].Date)
		asserts.Equal("31.12.2023", result[1].Date)
		asserts.Len(result[0].Rates, 2)
		asserts.Equal("USD", result[0].Rates[0].Currency)
		asserts.Equal("EUR", result[0].Rates[1].Currency)

		usd, ok := result.Lookup("31.12.2023", "USD")
		asserts.True(ok)
		asserts.True(usd.Sale.Decimal.Equal(decimal.RequireFromString("39.4")))
		asserts.True(usd.Purchase.Decimal.Equal(decimal.RequireFromString("38.9")))

		_, ok = result.Lookup("31.12.2023", "EUR")
		asserts.False(ok)
	})

	t.Run("DuplicatePairOverwrites", func(t *testing.T) {
		asserts := require.New(t)
		result := rates.Aggregate([]rates.RateRecord{
			{Date: "01.01.2024", Currency: "USD", SaleRate: rate("1")},
			{Date: "01.01.2024", Currency: "USD", SaleRate: rate("2")},
		})

		asserts.Len(result, 1)
		asserts.Len(result[0].Rates, 1)
		asserts.Equal("2", result[0].Rates[0].Rate.Sale.Decimal.String())
	})

	t.Run("Empty", func(t *testing.T) {
		asserts := require.New(t)
		result := rates.Aggregate(nil)

		asserts.NotNil(result)
		asserts.Empty(result)
	})
}

func TestResultSet_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("SingleKeyRecordsPerDate", func(t *testing.T) {
		asserts := require.New(t)
		result := rates.Aggregate([]rates.RateRecord{
			{Date: "01.01.2024", Currency: "USD", SaleRate: rate("39.5"), PurchaseRate: rate("39.0")},
			{Date: "31.12.2023", Currency: "USD", SaleRate: rate("39.4"), PurchaseRate: rate("38.9")},
		})

		data, err := json.Marshal(result)

		asserts.NoError(err)
		asserts.JSONEq(`[
			{"01.01.2024": {"USD": {"sale": 39.5, "purchase": 39}}},
			{"31.12.2023": {"USD": {"sale": 39.4, "purchase": 38.9}}}
		]`, string(data))
	})

	t.Run("AbsentRatesAreNull", func(t *testing.T) {
		asserts := require.New(t)
		result := rates.Aggregate([]rates.RateRecord{
			{Date: "01.01.2024", Currency: "PLN", PurchaseRate: rate("9.1")},
		})

		data, err := json.Marshal(result)

		asserts.NoError(err)
		asserts.Equal(`[{"01.01.2024":{"PLN":{"sale":null,"purchase":9.1}}}]`, string(data))
	})

	t.Run("KeepsCurrencyOrder", func(t *testing.T) {
		asserts := require.New(t)
		result := rates.Aggregate([]rates.RateRecord{
			{Date: "01.01.2024", Currency: "USD", SaleRate: rate("1"), PurchaseRate: rate("1")},
			{Date: "01.01.2024", Currency: "EUR", SaleRate: rate("2"), PurchaseRate: rate("2")},
		})

		data, err := json.Marshal(result)

		asserts.NoError(err)
		asserts.Equal(`[{"01.01.2024":{"USD":{"sale":1,"purchase":1},"EUR":{"sale":2,"purchase":2}}}]`, string(data))
	})

	t.Run("NilIsEmptyArray", func(t *testing.T) {
		asserts := require.New(t)
		data, err := json.Marshal(rates.ResultSet(nil))

		asserts.NoError(err)
		asserts.Equal("[]", string(data))
	})
}
