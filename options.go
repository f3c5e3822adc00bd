package invoicepdf

import (
	"time"

	"github.com/fasehq/invoicepdf/currency"
	"github.com/fasehq/invoicepdf/letterhead"
)

// Option is a functional option for configuring an Engine via New.
type Option func(*Engine)

// WithTemplate sets the letterhead stamped onto every page. The template's
// page geometry drives all layout math.
func WithTemplate(t *letterhead.Template) Option {
	return func(e *Engine) {
		e.tpl = t
	}
}

// WithTheme replaces the default layout theme.
func WithTheme(t Theme) Option {
	return func(e *Engine) {
		e.theme = t
	}
}

// WithLocale sets the display locale for amount formatting. Default "en".
func WithLocale(locale string) Option {
	return func(e *Engine) {
		e.locale = locale
	}
}

// WithConverter sets the currency rate source used when an invoice displays
// in a currency other than EUR.
func WithConverter(c currency.Converter) Option {
	return func(e *Engine) {
		e.conv = c
	}
}

// WithNumberPrefix sets the prefix used when the engine has to generate an
// invoice number itself.
func WithNumberPrefix(prefix string) Option {
	return func(e *Engine) {
		e.numberPrefix = prefix
	}
}

// WithPaymentQR enables a QR code next to the bank details carrying the
// payment reference.
func WithPaymentQR(enabled bool) Option {
	return func(e *Engine) {
		e.paymentQR = enabled
	}
}

// WithPageSize sets the page size in points for engines without a template.
// Ignored when a template is set.
func WithPageSize(w, h float64) Option {
	return func(e *Engine) {
		e.pageW = w
		e.pageH = h
	}
}

// WithNow overrides the clock, for reproducible documents in tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}
