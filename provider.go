package rates

import (
	"fmt"
	"strings"
)

type Provider string

const (
	PrivatBankProvider Provider = "PrivatBank"
	EmptyProvider      Provider = ""
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "privatbank", "privat24":
		return PrivatBankProvider, nil
	}

	return EmptyProvider, fmt.Errorf("value %s is not valid Provider", str)
}

func (p Provider) String() string {
	return string(p)
}
