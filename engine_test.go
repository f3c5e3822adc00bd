package invoicepdf_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/fasehq/invoicepdf"
	"github.com/fasehq/invoicepdf/currency"
	"github.com/fasehq/invoicepdf/letterhead"
)

func pageCount(t *testing.T, b []byte) int {
	t.Helper()
	ctx, err := api.ReadContext(bytes.NewReader(b), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	// pdfcpu populates PageCount during validation, not while reading.
	if err := api.ValidateContext(ctx); err != nil {
		t.Fatalf("validating rendered PDF: %v", err)
	}
	return ctx.PageCount
}

func extractText(t *testing.T, b []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("opening rendered PDF: %v", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		t.Fatalf("extracting text: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(plain); err != nil {
		t.Fatalf("reading extracted text: %v", err)
	}
	return buf.String()
}

func memberInvoice() *invoicepdf.Invoice {
	return &invoicepdf.Invoice{
		Number: "FASE-2026-0001",
		Date:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		BillTo: invoicepdf.BillTo{
			Name:         "Example Member Ltd",
			AddressLines: []string{"Rue de la Loi 42", "1040 Brussels"},
			Country:      "Belgium",
		},
		LineItems: []invoicepdf.LineItem{{
			Description: "FASE Annual Membership",
			Quantity:    1,
			UnitPrice:   invoicepdf.Money{Amount: 1500},
			Total:       invoicepdf.Money{Amount: 1500},
		}},
		Subtotal: invoicepdf.Money{Amount: 1500},
		VAT:      invoicepdf.VAT{Pending: true},
		Total:    invoicepdf.Money{Amount: 1500},
		PaymentInstructions: []string{
			"Bank: Example Bank Brussels",
			"IBAN: BE00 0000 0000 0000",
			"Reference: FASE-2026-0001",
		},
	}
}

func TestRenderInvoiceSinglePage(t *testing.T) {
	eng := invoicepdf.New()
	out, err := eng.RenderInvoice(context.Background(), memberInvoice())
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	if out.Filename != "FASE-2026-0001.pdf" {
		t.Errorf("filename = %s, want FASE-2026-0001.pdf", out.Filename)
	}
	if n := pageCount(t, out.Bytes); n != 1 {
		t.Errorf("page count = %d, want 1", n)
	}

	text := extractText(t, out.Bytes)
	for _, want := range []string{
		"Invoice",
		"FASE Annual Membership",
		"Invoice No: FASE-2026-0001",
		"Date: 15 March 2026",
		"VAT: pending",
		"Total Amount Due:",
		"IBAN: BE00 0000 0000 0000",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q", want)
		}
	}
}

func TestRenderInvoiceDiscountRows(t *testing.T) {
	inv := memberInvoice()
	inv.LineItems = invoicepdf.DiscountedItems(
		"FASE Annual Membership", "Member discount (20%)", 1, 500, 20, "EUR")
	inv.Subtotal = invoicepdf.Money{Amount: 500}
	inv.Total = invoicepdf.Money{Amount: 500}

	out, err := invoicepdf.New().RenderInvoice(context.Background(), inv)
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	text := extractText(t, out.Bytes)
	for _, want := range []string{"625.00", "125.00", "500.00", "Member discount (20%)"} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q", want)
		}
	}
}

func TestRenderPaidInvoiceConvertsByCountry(t *testing.T) {
	inv := memberInvoice()
	inv.BillTo.Country = "United States"

	out, err := invoicepdf.New().RenderPaidInvoice(context.Background(), inv)
	if err != nil {
		t.Fatalf("RenderPaidInvoice: %v", err)
	}
	if out.Filename != "FASE-2026-0001-PAID.pdf" {
		t.Errorf("filename = %s, want FASE-2026-0001-PAID.pdf", out.Filename)
	}
	text := extractText(t, out.Bytes)
	if !strings.Contains(text, "PAID") {
		t.Error("rendered text missing PAID status")
	}
	// 1500 EUR at the default 1.09 USD rate, rounded down to tens. Both
	// amounts must be present in the dual-currency box.
	if !strings.Contains(text, "1,630.00") {
		t.Error("rendered text missing converted USD total")
	}
	if !strings.Contains(text, "Total (EUR):") {
		t.Error("rendered text missing EUR base line")
	}
	if !strings.Contains(text, "Payment Confirmation") {
		t.Error("rendered text missing confirmation heading")
	}
}

func TestRenderInvoiceFailsOnUnknownDisplayCurrency(t *testing.T) {
	inv := memberInvoice()
	inv.DisplayCode = "CHF"

	_, err := invoicepdf.New().RenderInvoice(context.Background(), inv)
	var ce *currency.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *currency.ConversionError", err)
	}
	if ce.Code != "CHF" {
		t.Errorf("code = %s, want CHF", ce.Code)
	}
	if !errors.Is(err, currency.ErrNoRate) {
		t.Errorf("err = %v, want wrapped ErrNoRate", err)
	}
}

func TestRenderInvoiceRejectsInvalidInput(t *testing.T) {
	inv := memberInvoice()
	inv.BillTo.Name = ""

	out, err := invoicepdf.New().RenderInvoice(context.Background(), inv)
	var ve *invoicepdf.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if out != nil {
		t.Error("got partial output for invalid invoice")
	}
}

func TestRenderRendezvousInvoiceListsAttendees(t *testing.T) {
	inv := memberInvoice()
	inv.Event = "FASE Annual Rendezvous 2026"
	inv.Attendees = []invoicepdf.Attendee{
		{FirstName: "Jane", LastName: "Doe", Email: "jane@example.org", JobTitle: "Delegate"},
		{FirstName: "John", LastName: "Smith"},
	}

	out, err := invoicepdf.New().RenderRendezvousInvoice(context.Background(), inv)
	if err != nil {
		t.Fatalf("RenderRendezvousInvoice: %v", err)
	}
	text := extractText(t, out.Bytes)
	for _, want := range []string{
		"FASE Annual Rendezvous 2026",
		"Attendees",
		"1. Jane Doe, jane@example.org (Delegate)",
		"2. John Smith",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q", want)
		}
	}
}

func TestRenderInvoiceGeneratesNumberWhenMissing(t *testing.T) {
	inv := memberInvoice()
	inv.Number = ""

	fixed := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	eng := invoicepdf.New(invoicepdf.WithNow(func() time.Time { return fixed }))
	out, err := eng.RenderInvoice(context.Background(), inv)
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if !strings.HasPrefix(out.Number, "FASE-2026-") {
		t.Errorf("number = %s, want FASE-2026- prefix", out.Number)
	}
	if out.Filename != out.Number+".pdf" {
		t.Errorf("filename = %s does not match number %s", out.Filename, out.Number)
	}
}

func TestRenderInvoiceWithCustomConverter(t *testing.T) {
	inv := memberInvoice()
	inv.DisplayCode = "GBP"

	eng := invoicepdf.New(invoicepdf.WithConverter(currency.StaticRates{"GBP": 0.86}))
	out, err := eng.RenderInvoice(context.Background(), inv)
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	// 1500 * 0.86 = 1290, already a multiple of ten.
	if text := extractText(t, out.Bytes); !strings.Contains(text, "1,290.00") {
		t.Error("rendered text missing converted GBP total")
	}
}

func TestRenderLetterPaginates(t *testing.T) {
	para := strings.Repeat("The federation coordinates safety standards across member states. ", 8)
	l := &invoicepdf.Letter{
		Title: "Membership Renewal Notice",
		Date:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	l.Blocks = append(l.Blocks, invoicepdf.Block{Kind: invoicepdf.BlockHeading, Text: "Background"})
	for i := 0; i < 30; i++ {
		l.Blocks = append(l.Blocks, invoicepdf.Block{Kind: invoicepdf.BlockParagraph, Text: para})
	}

	out, err := invoicepdf.New().RenderLetter(context.Background(), l)
	if err != nil {
		t.Fatalf("RenderLetter: %v", err)
	}
	if out.Filename != "membership-renewal-notice.pdf" {
		t.Errorf("filename = %s, want membership-renewal-notice.pdf", out.Filename)
	}
	if n := pageCount(t, out.Bytes); n < 2 {
		t.Errorf("page count = %d, want at least 2", n)
	}
}

func TestRenderLetterValidation(t *testing.T) {
	eng := invoicepdf.New()
	if _, err := eng.RenderLetter(context.Background(), &invoicepdf.Letter{Body: "x"}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := eng.RenderLetter(context.Background(), &invoicepdf.Letter{Title: "T"}); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestRenderInvoiceOnLetterhead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letterhead.pdf")
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFillColor(0, 51, 102)
	doc.Rect(0, 0, 595.28, 60, "F")
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(255, 255, 255)
	doc.Text(54, 40, "FASE")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing letterhead fixture: %v", err)
	}

	tpl, err := letterhead.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	eng := invoicepdf.New(invoicepdf.WithTemplate(tpl))
	out, err := eng.RenderInvoice(context.Background(), memberInvoice())
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if n := pageCount(t, out.Bytes); n != 1 {
		t.Errorf("page count = %d, want 1", n)
	}
	if !strings.Contains(extractText(t, out.Bytes), "FASE Annual Membership") {
		t.Error("rendered text missing line item on letterhead")
	}
}

func TestBase64RoundTrip(t *testing.T) {
	out, err := invoicepdf.New().RenderInvoice(context.Background(), memberInvoice())
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	enc := out.Base64()
	if enc == "" || strings.ContainsAny(enc, "\n ") {
		t.Fatal("base64 output malformed")
	}
}
