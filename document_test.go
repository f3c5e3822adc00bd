package invoicepdf

import (
	"errors"
	"math"
	"testing"
)

func validInvoice() *Invoice {
	return &Invoice{
		Number: "FASE-2026-0001",
		BillTo: BillTo{Name: "Example Member Ltd", Country: "Belgium"},
		LineItems: []LineItem{{
			Description: "Annual Membership",
			Quantity:    1,
			UnitPrice:   Money{Amount: 1500},
			Total:       Money{Amount: 1500},
		}},
		Subtotal: Money{Amount: 1500},
		VAT:      VAT{Pending: true},
		Total:    Money{Amount: 1500},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Invoice)
		wantField string
	}{
		{"valid", func(inv *Invoice) {}, ""},
		{"missing name", func(inv *Invoice) { inv.BillTo.Name = "" }, "billTo.name"},
		{"no items", func(inv *Invoice) { inv.LineItems = nil }, "lineItems"},
		{"blank description", func(inv *Invoice) { inv.LineItems[0].Description = "" }, "lineItems.description"},
		{"zero quantity", func(inv *Invoice) { inv.LineItems[0].Quantity = 0 }, "lineItems.quantity"},
		{"subtotal mismatch", func(inv *Invoice) { inv.Subtotal.Amount = 999 }, "subtotal"},
		{"total mismatch", func(inv *Invoice) {
			inv.VAT = VAT{Rate: 21, Amount: Money{Amount: 315}}
			inv.Total.Amount = 1500
		}, "total"},
		{"positive discount row", func(inv *Invoice) {
			inv.LineItems = append(inv.LineItems, LineItem{
				Description: "Discount",
				Total:       Money{Amount: 10},
				Discount:    true,
			})
		}, "lineItems.total"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInvoice()
			tc.mutate(inv)
			err := inv.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("field = %s, want %s", ve.Field, tc.wantField)
			}
		})
	}
}

func TestDiscountedItems(t *testing.T) {
	items := DiscountedItems("Annual Membership", "Member discount (20%)", 1, 500, 20, "EUR")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if math.Abs(items[0].UnitPrice.Amount-625) > 1e-9 {
		t.Errorf("pre-discount unit price = %v, want 625", items[0].UnitPrice.Amount)
	}
	if math.Abs(items[1].Total.Amount+125) > 1e-9 {
		t.Errorf("discount total = %v, want -125", items[1].Total.Amount)
	}
	if sum := items[0].Total.Amount + items[1].Total.Amount; math.Abs(sum-500) > 1e-9 {
		t.Errorf("items sum to %v, want 500", sum)
	}
}

// The discount shown must be the subtraction preTotal-net, never the
// percentage multiplied out again, so the two always agree to within float
// epsilon for any price/quantity/percentage combination.
func TestDiscountArithmeticInvariant(t *testing.T) {
	prices := []float64{1, 19.99, 500, 1500, 12345.67}
	quantities := []int{1, 2, 7, 40}
	percentages := []float64{5, 10, 20, 33.3, 50, 99}

	for _, net := range prices {
		for _, qty := range quantities {
			for _, pct := range percentages {
				items := DiscountedItems("x", "d", qty, net, pct, "EUR")
				base, disc := items[0], items[1]

				preTotal := base.UnitPrice.Amount * float64(qty)
				if math.Abs(preTotal-base.Total.Amount) > 1e-6 {
					t.Fatalf("net=%v qty=%d pct=%v: base total %v != unit*qty %v",
						net, qty, pct, base.Total.Amount, preTotal)
				}
				if math.Abs((preTotal-net)-(-disc.Total.Amount)) > 1e-6 {
					t.Fatalf("net=%v qty=%d pct=%v: discount %v != preTotal-net %v",
						net, qty, pct, -disc.Total.Amount, preTotal-net)
				}
				back := preTotal * (1 - pct/100)
				if math.Abs(back-net) > 1e-6 {
					t.Fatalf("net=%v qty=%d pct=%v: round trip gives %v", net, qty, pct, back)
				}
			}
		}
	}
}

func TestDiscountedItemsZeroPercent(t *testing.T) {
	items := DiscountedItems("Annual Membership", "d", 2, 1000, 0, "EUR")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].UnitPrice.Amount != 500 {
		t.Errorf("unit price = %v, want 500", items[0].UnitPrice.Amount)
	}
}
