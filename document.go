package invoicepdf

import (
	"math"
	"time"

	"github.com/samber/lo"
)

// Money is an amount in a specific currency. Amounts are non-negative
// except on discount line items.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

func (m Money) code() string {
	if m.Currency == "" {
		return "EUR"
	}
	return m.Currency
}

// BillTo is the invoice recipient block.
type BillTo struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"addressLines,omitempty"`
	Country      string   `json:"country,omitempty"`
}

// LineItem is one row of the invoice table. Insertion order is display
// order. A discount is a synthetic line item with a negative total, placed
// immediately after the charge it discounts; it renders without quantity or
// unit price.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity,omitempty"`
	UnitPrice   Money  `json:"unitPrice,omitempty"`
	Total       Money  `json:"total"`
	Discount    bool   `json:"discount,omitempty"`
}

// VAT is the tax block. Pending means the amount is not yet determined and
// the invoice shows "pending" instead of a figure.
type VAT struct {
	Pending bool    `json:"pending,omitempty"`
	Rate    float64 `json:"rate,omitempty"`
	Amount  Money   `json:"amount,omitempty"`
}

// Attendee is one delegate on a rendezvous invoice.
type Attendee struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
}

// Invoice is the input record for a single render call. It is never
// modified by the engine.
type Invoice struct {
	Number    string    `json:"invoiceNumber,omitempty"`
	Date      time.Time `json:"date,omitempty"`
	Event     string    `json:"event,omitempty"`
	BillTo    BillTo    `json:"billTo"`
	LineItems []LineItem `json:"lineItems"`
	Subtotal  Money     `json:"subtotal"`
	VAT       VAT       `json:"vat,omitempty"`
	Total     Money     `json:"total"`

	// DisplayCode is the target display currency. Empty or "EUR" renders a
	// single-currency total; anything else triggers one conversion lookup
	// before rendering and a dual-currency totals box.
	DisplayCode string `json:"displayCurrency,omitempty"`

	Attendees           []Attendee `json:"attendees,omitempty"`
	PaymentInstructions []string   `json:"paymentInstructions,omitempty"`
}

// amountEpsilon absorbs float drift when cross-checking money sums.
const amountEpsilon = 0.01

// Validate checks the invoice for the fields every renderer requires.
// Rendering never starts on an invalid invoice: a partially drawn financial
// document is worse than no document.
func (inv *Invoice) Validate() error {
	if inv.BillTo.Name == "" {
		return &ValidationError{Field: "billTo.name", Reason: "required"}
	}
	if len(inv.LineItems) == 0 {
		return &ValidationError{Field: "lineItems", Reason: "at least one line item is required"}
	}
	for _, it := range inv.LineItems {
		if it.Description == "" {
			return &ValidationError{Field: "lineItems.description", Reason: "required"}
		}
		if !it.Discount && it.Quantity < 1 {
			return &ValidationError{Field: "lineItems.quantity", Reason: "must be at least 1"}
		}
		if it.Discount && it.Total.Amount >= 0 {
			return &ValidationError{Field: "lineItems.total", Reason: "discount line must have a negative total"}
		}
	}

	sum := lo.SumBy(inv.LineItems, func(it LineItem) float64 { return it.Total.Amount })
	if math.Abs(sum-inv.Subtotal.Amount) > amountEpsilon {
		return &ValidationError{Field: "subtotal", Reason: "does not match the sum of line item totals"}
	}
	if !inv.VAT.Pending {
		if math.Abs(inv.Subtotal.Amount+inv.VAT.Amount.Amount-inv.Total.Amount) > amountEpsilon {
			return &ValidationError{Field: "total", Reason: "does not equal subtotal plus VAT"}
		}
	}
	return nil
}

// DiscountedItems builds the line items for a charge whose net total already
// has pct percent taken off. The base row displays the pre-discount unit
// price, and the discount row shows the difference between the pre-discount
// total and the net total. The discount is computed by subtraction rather
// than by multiplying the percentage out again, so the two rows always sum
// back to net exactly.
func DiscountedItems(description, discountLabel string, qty int, net, pct float64, code string) []LineItem {
	if qty < 1 {
		qty = 1
	}
	if pct <= 0 || pct >= 100 {
		return []LineItem{{
			Description: description,
			Quantity:    qty,
			UnitPrice:   Money{Amount: net / float64(qty), Currency: code},
			Total:       Money{Amount: net, Currency: code},
		}}
	}

	preUnit := net / float64(qty) / (1 - pct/100)
	preTotal := preUnit * float64(qty)
	discount := preTotal - net

	return []LineItem{
		{
			Description: description,
			Quantity:    qty,
			UnitPrice:   Money{Amount: preUnit, Currency: code},
			Total:       Money{Amount: preTotal, Currency: code},
		},
		{
			Description: discountLabel,
			Total:       Money{Amount: -discount, Currency: code},
			Discount:    true,
		},
	}
}
