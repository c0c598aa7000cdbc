package rates

import "time"

// DateLayout is the DD.MM.YYYY format the archive API expects.
const DateLayout = "02.01.2006"

// Dates returns today and the days-1 calendar days before it, newest first.
func Dates(today time.Time, days int) []string {
	if days <= 0 {
		return []string{}
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, today.AddDate(0, 0, -i).Format(DateLayout))
	}

	return dates
}

func BuildQueries(currencies, dates []string) []Query {
	queries := make([]Query, 0, len(currencies)*len(dates))

	for _, c := range currencies {
		for _, d := range dates {
			queries = append(queries, Query{Date: d, Currency: c})
		}
	}

	return queries
}
