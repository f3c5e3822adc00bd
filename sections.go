package invoicepdf

import (
	"fmt"

	"github.com/fasehq/invoicepdf/layout"
)

var black = layout.RGB{R: 0, G: 0, B: 0}

// lineHeight is the vertical advance for a line of text at the given size.
func lineHeight(size float64) float64 {
	return size * 1.4
}

// drawHeader renders the document title and the optional event subtitle.
func drawHeader(st *renderState) error {
	th := st.eng.theme
	left := th.Margins.Left

	need := lineHeight(th.TitleSize)
	if st.inv.Event != "" {
		need += lineHeight(th.SubtitleSize)
	}
	st.EnsureSpace(need + 10)

	title := "Invoice"
	f := th.bold(th.TitleSize)
	st.Text(left, st.Y()+th.TitleSize, title, f)
	st.Advance(lineHeight(th.TitleSize))

	if st.inv.Event != "" {
		sub := th.body(th.SubtitleSize)
		st.SetTextColor(th.MutedColor)
		st.Text(left, st.Y()+th.SubtitleSize, st.inv.Event, sub)
		st.SetTextColor(black)
		st.Advance(lineHeight(th.SubtitleSize))
	}
	st.Advance(10)
	return nil
}

// drawBillTo renders the two-column recipient block: wrapped name and
// address on the left, right-aligned invoice metadata on the right. The
// address wraps at BillToWidth so it cannot collide with the meta column.
func drawBillTo(st *renderState) error {
	th := st.eng.theme
	inv := st.inv
	left := th.Margins.Left
	right := st.PageWidth() - th.Margins.Right
	lh := lineHeight(th.BodySize)

	body := th.body(th.BodySize)
	bold := th.bold(th.BodySize)

	var leftLines []string
	leftLines = append(leftLines, st.Wrap(inv.BillTo.Name, th.BillToWidth, bold)...)
	nameLines := len(leftLines)
	for _, al := range inv.BillTo.AddressLines {
		leftLines = append(leftLines, st.Wrap(al, th.BillToWidth, body)...)
	}
	if inv.BillTo.Country != "" {
		leftLines = append(leftLines, inv.BillTo.Country)
	}

	status := "Due upon receipt"
	if st.paid {
		status = "PAID"
	}
	meta := []string{
		"Invoice No: " + st.number,
		"Date: " + st.date.Format("2 January 2006"),
		"Status: " + status,
	}

	rows := len(leftLines)
	if len(meta) > rows {
		rows = len(meta)
	}
	st.EnsureSpace(float64(rows)*lh + 16)
	top := st.Y()

	y := top
	for i, line := range leftLines {
		f := body
		if i < nameLines {
			f = bold
		}
		st.Text(left, y+th.BodySize, line, f)
		y += lh
	}

	y = top
	for i, line := range meta {
		f := body
		if i == len(meta)-1 && st.paid {
			f = bold
			st.SetTextColor(th.DiscountColor)
		}
		st.TextRight(right, y+th.BodySize, line, f)
		st.SetTextColor(black)
		y += lh
	}

	st.SetY(top + float64(rows)*lh + 16)
	return nil
}

// drawItemTable renders the line-item table: a filled header row, one
// fixed-height row per item, then the subtotal and VAT lines. Discount rows
// are green and show only description and negative total; regular
// descriptions are clamped to the column width, not wrapped.
func drawItemTable(st *renderState) error {
	th := st.eng.theme
	fm := st.eng.fm
	cols := th.Columns
	left := th.Margins.Left

	xDesc := left + 6
	xQty := left + cols.Description + cols.Quantity/2
	xUnit := left + cols.Description + cols.Quantity + cols.UnitPrice - 6
	xTotal := left + cols.total() - 6

	headerH := 22.0
	st.EnsureSpace(headerH + th.RowHeight)

	bold := th.bold(th.BodySize)
	body := th.body(th.BodySize)

	y := st.Y()
	st.SetFillColor(th.HeaderFill)
	st.Rect(left, y, cols.total(), headerH, "F")
	base := y + headerH/2 + th.BodySize/3
	st.Text(xDesc, base, "Description", bold)
	st.TextCenter(xQty, base, "Qty", bold)
	st.TextRight(xUnit, base, "Unit Price", bold)
	st.TextRight(xTotal, base, "Total", bold)
	st.Advance(headerH)

	for _, it := range st.inv.LineItems {
		st.EnsureSpace(th.RowHeight)
		y = st.Y()
		base = y + th.RowHeight/2 + th.BodySize/3

		if it.Discount {
			st.SetTextColor(th.DiscountColor)
			st.Text(xDesc, base, it.Description, body)
			st.TextRight(xTotal, base, fm.Format(it.Total.Amount, it.Total.code()), body)
			st.SetTextColor(black)
		} else {
			desc := st.Truncate(it.Description, cols.Description-12, body)
			st.Text(xDesc, base, desc, body)
			st.TextCenter(xQty, base, fmt.Sprintf("%d", it.Quantity), body)
			st.TextRight(xUnit, base, fm.Format(it.UnitPrice.Amount, it.UnitPrice.code()), body)
			st.TextRight(xTotal, base, fm.Format(it.Total.Amount, it.Total.code()), body)
		}

		st.SetDrawColor(layout.RGB{R: 220, G: 220, B: 220})
		st.Line(left, y+th.RowHeight, left+cols.total(), y+th.RowHeight)
		st.SetDrawColor(black)
		st.Advance(th.RowHeight)
	}

	lh := lineHeight(th.BodySize)
	st.EnsureSpace(2*lh + 12)
	st.Advance(6)

	inv := st.inv
	st.TextRight(xTotal, st.Y()+th.BodySize,
		"Subtotal: "+fm.Format(inv.Subtotal.Amount, inv.Subtotal.code()), body)
	st.Advance(lh)

	vat := "VAT: pending"
	if !inv.VAT.Pending {
		vat = fmt.Sprintf("VAT (%.4g%%): %s", inv.VAT.Rate, fm.Format(inv.VAT.Amount.Amount, inv.VAT.Amount.code()))
	}
	st.TextRight(xTotal, st.Y()+th.BodySize, vat, body)
	st.Advance(lh + 8)
	return nil
}

// drawTotalsBox renders the bordered total near the right margin. With a
// display currency the box grows to hold two lines: the EUR base amount in
// small type above the bold converted total.
func drawTotalsBox(st *renderState) error {
	th := st.eng.theme
	fm := st.eng.fm
	inv := st.inv

	h := th.TotalsHeight
	if st.display != nil {
		h = th.TotalsDualHeight
	}
	st.EnsureSpace(h + 16)

	x := st.PageWidth() - th.Margins.Right - th.TotalsWidth
	y := st.Y()
	st.SetLineWidth(1)
	st.Rect(x, y, th.TotalsWidth, h, "D")
	st.SetLineWidth(0.2)

	inner := x + th.TotalsWidth - 10
	if st.display == nil {
		f := th.bold(11)
		st.TextRight(inner, y+h/2+f.Size/3,
			"Total Amount Due: "+fm.Format(inv.Total.Amount, inv.Total.code()), f)
	} else {
		small := th.body(9)
		st.TextRight(inner, y+19,
			"Total (EUR): "+fm.Format(inv.Total.Amount, inv.Total.code()), small)
		big := th.bold(12)
		label := fmt.Sprintf("Total Due (%s): %s", st.display.Code,
			fm.Format(st.display.Amount, st.display.Code))
		st.TextRight(inner, y+42, label, big)
	}

	st.Advance(h + 16)
	return nil
}

// drawAttendees renders the numbered delegate list of a rendezvous invoice.
func drawAttendees(st *renderState) error {
	if len(st.inv.Attendees) == 0 {
		return nil
	}
	th := st.eng.theme
	left := th.Margins.Left
	small := th.body(th.SmallSize)
	lh := lineHeight(th.SmallSize)

	st.EnsureSpace(lineHeight(th.BodySize) + lh)
	st.Text(left, st.Y()+th.BodySize, "Attendees", th.bold(th.BodySize))
	st.Advance(lineHeight(th.BodySize) + 2)

	for i, a := range st.inv.Attendees {
		st.EnsureSpace(lh)
		line := fmt.Sprintf("%d. %s %s", i+1, a.FirstName, a.LastName)
		if a.Email != "" {
			line += ", " + a.Email
		}
		if a.JobTitle != "" {
			line += " (" + a.JobTitle + ")"
		}
		st.Text(left, st.Y()+th.SmallSize, line, small)
		st.Advance(lh)
	}
	st.Advance(8)
	return nil
}

// drawPayment renders the divider, the payment heading, and the verbatim
// instruction lines: bank details on a due invoice, the confirmation block
// on a paid one. Lines are never wrapped; the caller owns their length.
func drawPayment(st *renderState) error {
	th := st.eng.theme
	inv := st.inv
	left := th.Margins.Left
	right := st.PageWidth() - th.Margins.Right
	body := th.body(9)
	lh := lineHeight(9)

	qrSize := 0.0
	if st.eng.paymentQR && !st.paid {
		qrSize = 70
	}

	head := 14 + lineHeight(th.BodySize)
	st.EnsureSpace(head + qrSize)

	st.SetDrawColor(th.MutedColor)
	st.Line(left, st.Y(), right, st.Y())
	st.SetDrawColor(black)
	st.Advance(14)

	title := "Payment Details"
	if st.paid {
		title = "Payment Confirmation"
	}
	st.Text(left, st.Y()+th.BodySize, title, th.bold(th.BodySize))
	st.Advance(lineHeight(th.BodySize) + 2)

	if qrSize > 0 {
		data := fmt.Sprintf("invoice:%s;amount:%.2f;currency:%s",
			st.number, inv.Total.Amount, inv.Total.code())
		st.QR(data, right-qrSize, st.Y(), qrSize)
	}

	if st.paid {
		st.EnsureSpace(lineHeight(14))
		st.SetTextColor(th.DiscountColor)
		st.Text(left, st.Y()+14, "PAID", th.bold(14))
		st.SetTextColor(black)
		st.Advance(lineHeight(14))
	}

	for _, line := range inv.PaymentInstructions {
		st.EnsureSpace(lh)
		st.Text(left, st.Y()+9, line, body)
		st.Advance(lh)
	}
	return nil
}
