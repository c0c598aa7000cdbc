package rates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rates "github.com/malusev998/privatbank-rates"
)

func TestDates(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	today := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

	t.Run("CrossesYearBoundary", func(t *testing.T) {
		asserts.Equal([]string{"02.01.2024", "01.01.2024", "31.12.2023"}, rates.Dates(today, 3))
	})

	t.Run("SingleDay", func(t *testing.T) {
		asserts.Equal([]string{"02.01.2024"}, rates.Dates(today, 1))
	})

	t.Run("NonPositive", func(t *testing.T) {
		asserts.Empty(rates.Dates(today, 0))
		asserts.Empty(rates.Dates(today, -4))
	})

	t.Run("LeapDay", func(t *testing.T) {
		march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
		asserts.Equal([]string{"01.03.2024", "29.02.2024"}, rates.Dates(march, 2))
	})
}

func TestBuildQueries(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	dates := []string{"02.01.2024", "01.01.2024"}
	queries := rates.BuildQueries([]string{"USD", "EUR", "PLN"}, dates)

	asserts.Len(queries, 6)
	asserts.Equal([]rates.Query{
		{Date: "02.01.2024", Currency: "USD"},
		{Date: "01.01.2024", Currency: "USD"},
		{Date: "02.01.2024", Currency: "EUR"},
		{Date: "01.01.2024", Currency: "EUR"},
		{Date: "02.01.2024", Currency: "PLN"},
		{Date: "01.01.2024", Currency: "PLN"},
	}, queries)

	for days := 1; days <= 10; days++ {
		d := rates.Dates(time.Now(), days)
		asserts.Len(rates.BuildQueries([]string{"USD", "EUR"}, d), days*2)
	}
}
