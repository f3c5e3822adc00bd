package currency

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoRate is returned when a converter has no rate for the requested
// currency code.
var ErrNoRate = errors.New("currency: no conversion rate")

// Rate is the result of a conversion lookup: the applied rate and the
// payment-rounded converted amount.
type Rate struct {
	Code   string
	Rate   float64
	Amount float64
}

// ConversionError reports a failed rate lookup. A render that needs a
// conversion fails outright on it; a financial document with a missing or
// wrong converted amount is worse than an error.
type ConversionError struct {
	Code string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("currency: converting to %s: %v", e.Code, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Converter looks up the conversion of an EUR amount into a target currency.
// Implementations are external collaborators (a rate service, a cached
// table); StaticRates is the in-process implementation.
type Converter interface {
	Rate(ctx context.Context, code string, amount float64) (Rate, error)
}

// StaticRates is a fixed EUR-to-target rate table.
type StaticRates map[string]float64

// DefaultRates are the fallback rates used when no external converter is
// configured.
var DefaultRates = StaticRates{
	"USD": 1.09,
	"GBP": 0.86,
}

// Rate implements Converter.
func (s StaticRates) Rate(ctx context.Context, code string, amount float64) (Rate, error) {
	if err := ctx.Err(); err != nil {
		return Rate{}, err
	}
	r, ok := s[code]
	if !ok {
		return Rate{}, fmt.Errorf("%w for %s", ErrNoRate, code)
	}
	return Rate{Code: code, Rate: r, Amount: RoundPayment(amount * r)}, nil
}

// RoundPayment applies the payment rounding rule for converted totals:
// round down to the nearest 10 units, with a floor of 1.
func RoundPayment(v float64) float64 {
	r := math.Floor(v/10) * 10
	if r < 1 {
		return 1
	}
	return r
}

type timeoutConverter struct {
	c Converter
	d time.Duration
}

// WithTimeout bounds every lookup of c with a deadline so that a hung rate
// service cannot block a render indefinitely.
func WithTimeout(c Converter, d time.Duration) Converter {
	return &timeoutConverter{c: c, d: d}
}

func (t *timeoutConverter) Rate(ctx context.Context, code string, amount float64) (Rate, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.c.Rate(ctx, code, amount)
}
