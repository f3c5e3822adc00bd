// Command invoicepdf renders invoices and letters from JSON input onto the
// association letterhead.
//
//	invoicepdf render --kind invoice --in invoice.json --out INV-2026-0001.pdf
//	invoicepdf render --kind letter --in letter.json --base64
//	invoicepdf sample --template assets/letterhead.pdf
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fasehq/invoicepdf"
	"github.com/fasehq/invoicepdf/letterhead"
)

var (
	flagIn       string
	flagOut      string
	flagKind     string
	flagTemplate string
	flagTheme    string
	flagLocale   string
	flagBase64   bool
	flagQR       bool
)

func main() {
	root := &cobra.Command{
		Use:           "invoicepdf",
		Short:         "Render invoices and letters as letterhead PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagTemplate, "template", "", "letterhead PDF to stamp onto every page")
	root.PersistentFlags().StringVar(&flagTheme, "theme", "", "YAML theme overrides")
	root.PersistentFlags().StringVar(&flagLocale, "locale", "en", "display locale for amounts")
	root.PersistentFlags().BoolVar(&flagQR, "qr", false, "draw a payment-reference QR code")

	render := &cobra.Command{
		Use:   "render",
		Short: "Render a JSON document to a PDF",
		RunE:  runRender,
	}
	render.Flags().StringVar(&flagIn, "in", "", "input JSON file (required)")
	render.Flags().StringVar(&flagOut, "out", "", "output PDF path (default: suggested filename)")
	render.Flags().StringVar(&flagKind, "kind", "invoice", "document kind: invoice, paid, rendezvous, letter")
	render.Flags().BoolVar(&flagBase64, "base64", false, "write base64 to stdout instead of a file")
	render.MarkFlagRequired("in")

	sample := &cobra.Command{
		Use:   "sample",
		Short: "Render a sample invoice for letterhead preview",
		RunE:  runSample,
	}
	sample.Flags().StringVar(&flagOut, "out", "sample.pdf", "output PDF path")

	root.AddCommand(render, sample)

	if err := root.Execute(); err != nil {
		slog.Error("invoicepdf failed", "error", err)
		os.Exit(1)
	}
}

func newEngine() (*invoicepdf.Engine, error) {
	opts := []invoicepdf.Option{
		invoicepdf.WithLocale(flagLocale),
		invoicepdf.WithPaymentQR(flagQR),
	}
	if flagTemplate != "" {
		tpl, err := letterhead.Load(flagTemplate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, invoicepdf.WithTemplate(tpl))
	}
	if flagTheme != "" {
		theme, err := invoicepdf.LoadTheme(flagTheme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, invoicepdf.WithTheme(theme))
	}
	return invoicepdf.New(opts...), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(flagIn)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	var doc *invoicepdf.Rendered
	switch flagKind {
	case "invoice", "paid", "rendezvous":
		var inv invoicepdf.Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return fmt.Errorf("parsing %s: %w", flagIn, err)
		}
		switch flagKind {
		case "paid":
			doc, err = eng.RenderPaidInvoice(ctx, &inv)
		case "rendezvous":
			doc, err = eng.RenderRendezvousInvoice(ctx, &inv)
		default:
			doc, err = eng.RenderInvoice(ctx, &inv)
		}
	case "letter":
		var l invoicepdf.Letter
		if err := json.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("parsing %s: %w", flagIn, err)
		}
		doc, err = eng.RenderLetter(ctx, &l)
	default:
		return fmt.Errorf("unknown kind %q", flagKind)
	}
	if err != nil {
		return err
	}
	return write(doc)
}

func runSample(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	inv := &invoicepdf.Invoice{
		Number: invoicepdf.RandomInvoiceNumber("FASE", time.Now().Year()),
		BillTo: invoicepdf.BillTo{
			Name:         "Example Member Ltd",
			AddressLines: []string{"1 Example Street", "1000 Brussels"},
			Country:      "Belgium",
		},
		LineItems: []invoicepdf.LineItem{{
			Description: "Annual Membership",
			Quantity:    1,
			UnitPrice:   invoicepdf.Money{Amount: 1500},
			Total:       invoicepdf.Money{Amount: 1500},
		}},
		Subtotal: invoicepdf.Money{Amount: 1500},
		VAT:      invoicepdf.VAT{Pending: true},
		Total:    invoicepdf.Money{Amount: 1500},
		PaymentInstructions: []string{
			"Bank: Example Bank",
			"IBAN: BE00 0000 0000 0000",
			"BIC: EXAMPLEX",
			"Reference: use the invoice number",
		},
	}
	doc, err := eng.RenderInvoice(cmd.Context(), inv)
	if err != nil {
		return err
	}
	doc.Filename = flagOut
	return write(doc)
}

func write(doc *invoicepdf.Rendered) error {
	if flagBase64 {
		fmt.Println(doc.Base64())
		return nil
	}
	out := flagOut
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Bytes, 0o644); err != nil {
		return err
	}
	slog.Info("rendered", "file", out, "bytes", len(doc.Bytes))
	return nil
}
