package rates

// Aggregate groups records by date. Dates keep the order in which they were
// first seen in records, and so do currencies within a date. A repeated
// (date, currency) pair overwrites the earlier rate in place.
func Aggregate(records []RateRecord) ResultSet {
	result := make(ResultSet, 0)
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(result)
			index[r.Date] = i
			result = append(result, DayRates{Date: r.Date})
		}

		rate := Rate{Sale: r.SaleRate, Purchase: r.PurchaseRate}
		day := &result[i]

		replaced := false
		for j := range day.Rates {
			if day.Rates[j].Currency == r.Currency {
				day.Rates[j].Rate = rate
				replaced = true
				break
			}
		}

		if !replaced {
			day.Rates = append(day.Rates, CurrencyRate{Currency: r.Currency, Rate: rate})
		}
	}

	return result
}
