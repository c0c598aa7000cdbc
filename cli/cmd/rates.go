package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	Usage          = "Usage: privatbank-rates DAYS [ADDITIONAL_CURRENCY]"
	DefaultMaxDays = 10
)

var DefaultCurrencies = []string{"USD", "EUR"}

// parseDays reads DAYS and clamps it to [1, maxDays]. A non-empty warning is
// returned whenever the value had to be changed.
func parseDays(arg string, maxDays int) (int, string, error) {
	days, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, "", fmt.Errorf("DAYS must be an integer")
	}

	if days > maxDays {
		return maxDays, fmt.Sprintf("DAYS cannot be more than %d. Setting days to %d.", maxDays, maxDays), nil
	}

	if days < 1 {
		return 1, "DAYS cannot be less than 1. Setting days to 1.", nil
	}

	return days, "", nil
}

func mergeCurrencies(defaults []string, additional string) []string {
	currencies := make([]string, len(defaults), len(defaults)+1)
	copy(currencies, defaults)

	additional = strings.ToUpper(strings.TrimSpace(additional))
	if additional == "" {
		return currencies
	}

	for _, c := range currencies {
		if c == additional {
			return currencies
		}
	}

	return append(currencies, additional)
}

func printError(out io.Writer, err error) {
	_, _ = fmt.Fprintf(out, "An error occurred: %v\n", err)
}

func runRates(config *Config) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) < 1 {
			_, _ = fmt.Fprintln(out, Usage)
			return nil
		}

		defaults := config.DefaultCurrencies
		if len(defaults) == 0 {
			defaults = DefaultCurrencies
		}

		additional := ""
		if len(args) > 1 {
			additional = args[1]
		}

		currencies := mergeCurrencies(defaults, additional)

		maxDays := config.MaxDays
		if maxDays <= 0 {
			maxDays = DefaultMaxDays
		}

		days, warning, err := parseDays(args[0], maxDays)
		if err != nil {
			_, _ = fmt.Fprintln(out, err.Error())
			return nil
		}

		if warning != "" {
			_, _ = fmt.Fprintln(out, warning)
		}

		ctx := config.Ctx
		if ctx == nil {
			ctx = context.Background()
		}

		service, release, err := config.NewService(ctx)
		if err != nil {
			printError(out, err)
			return nil
		}
		defer release()

		result, err := service.GetExchangeRates(ctx, currencies, days)
		if err != nil {
			logrus.WithError(err).Debug("fetching exchange rates failed")
			printError(out, err)
			return nil
		}

		data, err := json.MarshalIndent(result, "", "    ")
		if err != nil {
			printError(out, err)
			return nil
		}

		_, _ = fmt.Fprintln(out, string(data))

		return nil
	}
}
