// Package currency handles amount formatting, country-to-currency detection,
// and the conversion lookup used when an invoice is displayed in a currency
// other than EUR.
package currency

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// Symbol returns the display symbol for a currency code. The second return
// value reports whether the code is one of the mapped currencies.
func Symbol(code string) (string, bool) {
	s, ok := symbols[code]
	return s, ok
}

// Formatter renders amounts with two decimal places and locale-appropriate
// digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter creates a Formatter for a BCP 47 locale hint such as "en" or
// "de". Unparseable locales fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Format renders amount with the symbol for code, or with the raw code as
// prefix when the currency is not mapped. Negative amounts carry a leading
// minus sign before the symbol, as on discount rows.
func (f *Formatter) Format(amount float64, code string) string {
	if amount < 0 {
		return "-" + f.Format(-amount, code)
	}
	n := f.p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
	if sym, ok := symbols[code]; ok {
		return sym + n
	}
	return code + " " + n
}

// countryCurrencies maps billing countries to the currency their invoices
// are displayed in. Everything not listed bills in EUR.
var countryCurrencies = map[string]string{
	"United States":            "USD",
	"United States of America": "USD",
	"USA":                      "USD",
	"US":                       "USD",
	"United Kingdom":           "GBP",
	"Great Britain":            "GBP",
	"UK":                       "GBP",
	"England":                  "GBP",
	"Scotland":                 "GBP",
	"Wales":                    "GBP",
	"Northern Ireland":         "GBP",
}

// ForCountry returns the display currency for a billing country: an exact
// table match first, then a case-insensitive one, then EUR.
func ForCountry(country string) string {
	if code, ok := countryCurrencies[country]; ok {
		return code
	}
	for name, code := range countryCurrencies {
		if strings.EqualFold(name, country) {
			return code
		}
	}
	return "EUR"
}
