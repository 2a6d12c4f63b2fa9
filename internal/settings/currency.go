package settings

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Base prices in the data files stay in USD so older records keep working;
// display conversion happens on the way out.
const (
	CurrencyUSD = "USD"
	CurrencyPHP = "PHP"

	keyCurrency  = "currency"
	keyPHPPerUSD = "php_per_usd"

	defaultPHPPerUSD = 56.0
)

var printer = message.NewPrinter(language.English)

// Currency returns the display currency, defaulting to USD for unset or
// unrecognized values.
func (s *Store) Currency() string {
	switch strings.ToUpper(strings.TrimSpace(s.Get(keyCurrency, CurrencyUSD))) {
	case CurrencyPHP:
		return CurrencyPHP
	default:
		return CurrencyUSD
	}
}

func (s *Store) SetCurrency(currency string) error {
	return s.Set(keyCurrency, strings.ToUpper(strings.TrimSpace(currency)))
}

func currencySymbol(currency string) string {
	if currency == CurrencyPHP {
		return "₱"
	}
	return "$"
}

// ConvertFromUSD maps a stored USD amount into the display currency.
func (s *Store) ConvertFromUSD(amountUSD float64) float64 {
	if s.Currency() == CurrencyPHP {
		return amountUSD * s.GetFloat(keyPHPPerUSD, defaultPHPPerUSD)
	}
	return amountUSD
}

// FormatAmount renders a stored USD amount in the display currency with the
// symbol and thousands grouping, e.g. "$1,234.50".
func (s *Store) FormatAmount(amountUSD float64) string {
	currency := s.Currency()
	return currencySymbol(currency) + printer.Sprintf("%.2f", s.ConvertFromUSD(amountUSD))
}
