package invoicepdf

import (
	"context"
	"time"

	"github.com/fasehq/invoicepdf/currency"
	"github.com/fasehq/invoicepdf/layout"
	"github.com/fasehq/invoicepdf/letterhead"
)

// A4 page size in points, used when no letterhead template is configured.
const (
	defaultPageWidth  = 595.28
	defaultPageHeight = 841.89
)

// Engine renders invoices and letters. It is immutable after New and safe
// for concurrent use: every render call builds its own working document and
// cursor.
type Engine struct {
	tpl          *letterhead.Template
	theme        Theme
	locale       string
	fm           *currency.Formatter
	conv         currency.Converter
	numberPrefix string
	paymentQR    bool
	pageW        float64
	pageH        float64
	now          func() time.Time
}

// New creates an Engine with the default theme, English locale, and static
// conversion rates.
func New(opts ...Option) *Engine {
	e := &Engine{
		theme:        DefaultTheme(),
		locale:       "en",
		conv:         currency.DefaultRates,
		numberPrefix: "FASE",
		pageW:        defaultPageWidth,
		pageH:        defaultPageHeight,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fm = currency.NewFormatter(e.locale)
	return e
}

// renderState is the per-call working set threaded through the section
// renderers.
type renderState struct {
	*layout.Canvas
	eng     *Engine
	inv     *Invoice
	number  string
	date    time.Time
	display *currency.Rate
	paid    bool
}

// section is one named step of a document's fixed render sequence.
type section struct {
	name string
	draw func(*renderState) error
}

// RenderInvoice renders a standard invoice: line-item table, discount rows,
// totals box (dual-currency when DisplayCode is set and not EUR), and the
// payment-instructions block.
func (e *Engine) RenderInvoice(ctx context.Context, inv *Invoice) (*Rendered, error) {
	return e.renderInvoice(ctx, inv, false, false)
}

// RenderPaidInvoice renders the receipt variant: the status reads PAID, the
// payment block is a confirmation instead of bank details, the filename
// carries a -PAID suffix, and the display currency defaults from the billing
// country.
func (e *Engine) RenderPaidInvoice(ctx context.Context, inv *Invoice) (*Rendered, error) {
	return e.renderInvoice(ctx, inv, true, false)
}

// RenderRendezvousInvoice renders an event invoice with the numbered
// attendee list after the totals box.
func (e *Engine) RenderRendezvousInvoice(ctx context.Context, inv *Invoice) (*Rendered, error) {
	return e.renderInvoice(ctx, inv, false, true)
}

func (e *Engine) renderInvoice(ctx context.Context, inv *Invoice, paid, rendezvous bool) (*Rendered, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	number := inv.Number
	if number == "" {
		number = RandomInvoiceNumber(e.numberPrefix, e.now().Year())
	}
	date := inv.Date
	if date.IsZero() {
		date = e.now()
	}

	// The conversion lookup happens exactly once, before any drawing. A
	// failed or missing rate fails the whole render; the renderers only
	// format the already-converted number.
	code := inv.DisplayCode
	if paid && code == "" {
		code = currency.ForCountry(inv.BillTo.Country)
	}
	var display *currency.Rate
	if code != "" && code != "EUR" {
		r, err := e.conv.Rate(ctx, code, inv.Total.Amount)
		if err != nil {
			return nil, &currency.ConversionError{Code: code, Err: err}
		}
		display = &r
	}

	st := &renderState{
		Canvas:  e.newCanvas(),
		eng:     e,
		inv:     inv,
		number:  number,
		date:    date,
		display: display,
		paid:    paid,
	}
	return e.run(st, invoiceSections(paid, rendezvous), invoiceFilename(number, paid))
}

// invoiceSections is the fixed execution order for the invoice variants.
// The variants differ only in configuration, never in drawing code.
func invoiceSections(paid, rendezvous bool) []section {
	secs := []section{
		{"header", drawHeader},
		{"billTo", drawBillTo},
		{"lineItemTable", drawItemTable},
		{"totalsBox", drawTotalsBox},
	}
	if rendezvous {
		secs = append(secs, section{"attendees", drawAttendees})
	}
	return append(secs, section{"payment", drawPayment})
}

// run executes the section sequence and serializes the document. Any
// section failure aborts without output.
func (e *Engine) run(st *renderState, secs []section, filename string) (*Rendered, error) {
	for _, s := range secs {
		if err := s.draw(st); err != nil {
			return nil, &RenderError{Section: s.name, Err: err}
		}
		if err := st.Err(); err != nil {
			return nil, &RenderError{Section: s.name, Err: err}
		}
	}
	b, err := st.Output()
	if err != nil {
		return nil, &RenderError{Section: "output", Err: err}
	}
	return &Rendered{Bytes: b, Number: st.number, Filename: filename}, nil
}

// newCanvas builds the working document for one render call. With a
// template, its geometry wins and every page gets stamped; without one,
// pages are blank at the configured size.
func (e *Engine) newCanvas() *layout.Canvas {
	if e.tpl != nil {
		return layout.NewCanvas(e.tpl.PageWidth(), e.tpl.PageHeight(), e.theme.Margins, e.tpl.Stamper())
	}
	return layout.NewCanvas(e.pageW, e.pageH, e.theme.Margins, nil)
}
