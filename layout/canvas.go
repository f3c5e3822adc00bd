// Package layout provides the drawing surface and cursor used by the
// document renderers.
//
// A Canvas wraps a gofpdf document in point units with automatic page breaks
// disabled: vertical position is tracked by an explicit cursor instead, and
// EnsureSpace must be called before drawing a block so that overflow starts a
// fresh page before any content is clipped. When a stamp function is
// supplied, every new page receives a pristine copy of the letterhead before
// the cursor is reset to the top margin.
package layout

import (
	"bytes"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
)

// Margins are page margins in points.
type Margins struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Font identifies a core font face ("Helvetica", "Times", "Courier"), a
// style ("", "B", "I", "BI"), and a size in points.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// RGB is an RGB color value.
type RGB struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// Canvas is a single working document plus its layout cursor. It is built
// per render call and never shared.
type Canvas struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	stamp   func(*gofpdf.Fpdf)
	pageW   float64
	pageH   float64
	margins Margins
	y       float64
	pages   int
}

// NewCanvas creates a working document of the given page size and starts its
// first page. stamp may be nil, in which case pages are blank.
func NewCanvas(pageW, pageH float64, margins Margins, stamp func(*gofpdf.Fpdf)) *Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetAutoPageBreak(false, 0)

	c := &Canvas{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		stamp:   stamp,
		pageW:   pageW,
		pageH:   pageH,
		margins: margins,
	}
	c.newPage()
	return c
}

func (c *Canvas) newPage() {
	c.pdf.AddPage()
	if c.stamp != nil {
		c.stamp(c.pdf)
	}
	c.y = c.margins.Top
	c.pages++
}

// Y returns the cursor position as distance from the page top.
func (c *Canvas) Y() float64 { return c.y }

// SetY moves the cursor to an absolute position on the current page.
func (c *Canvas) SetY(y float64) { c.y = y }

// Advance moves the cursor down by dy.
func (c *Canvas) Advance(dy float64) { c.y += dy }

// Pages returns the number of pages started so far.
func (c *Canvas) Pages() int { return c.pages }

// PageWidth returns the page width in points.
func (c *Canvas) PageWidth() float64 { return c.pageW }

// PageHeight returns the page height in points.
func (c *Canvas) PageHeight() float64 { return c.pageH }

// Margins returns the page margins.
func (c *Canvas) Margins() Margins { return c.margins }

// ContentWidth returns the usable width between the side margins.
func (c *Canvas) ContentWidth() float64 {
	return c.pageW - c.margins.Left - c.margins.Right
}

// Bottom returns the lowest cursor position content may reach.
func (c *Canvas) Bottom() float64 {
	return c.pageH - c.margins.Bottom
}

// EnsureSpace guarantees h points of vertical room below the cursor,
// starting a fresh page first when the block would cross the bottom margin.
// Call it before drawing, never after.
func (c *Canvas) EnsureSpace(h float64) {
	if c.y+h > c.Bottom() {
		c.newPage()
	}
}

func (c *Canvas) setFont(f Font) {
	c.pdf.SetFont(f.Family, f.Style, f.Size)
}

// TextWidth returns the rendered width of s in the given font.
func (c *Canvas) TextWidth(f Font, s string) float64 {
	c.setFont(f)
	return c.pdf.GetStringWidth(c.tr(s))
}

// Text draws s with its baseline at (x, y), measured from the page top.
func (c *Canvas) Text(x, y float64, s string, f Font) {
	c.setFont(f)
	c.pdf.Text(x, y, c.tr(s))
}

// TextRight draws s right-aligned so it ends at x.
func (c *Canvas) TextRight(x, y float64, s string, f Font) {
	c.Text(x-c.TextWidth(f, s), y, s, f)
}

// TextCenter draws s centered on x.
func (c *Canvas) TextCenter(x, y float64, s string, f Font) {
	c.Text(x-c.TextWidth(f, s)/2, y, s, f)
}

// Truncate clamps s to maxWidth by dropping trailing runes. It does not
// wrap; use Wrap for flowing text.
func (c *Canvas) Truncate(s string, maxWidth float64, f Font) string {
	if c.TextWidth(f, s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if c.TextWidth(f, string(runes)) <= maxWidth {
			break
		}
	}
	return string(runes)
}

// Line draws a straight line between two points.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

// Rect draws a rectangle. styleStr is "D" (outline), "F" (fill), or "FD".
func (c *Canvas) Rect(x, y, w, h float64, styleStr string) {
	c.pdf.Rect(x, y, w, h, styleStr)
}

// SetTextColor sets the color used for subsequent text.
func (c *Canvas) SetTextColor(col RGB) {
	c.pdf.SetTextColor(col.R, col.G, col.B)
}

// SetFillColor sets the color used for filled rectangles.
func (c *Canvas) SetFillColor(col RGB) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
}

// SetDrawColor sets the color used for lines and outlines.
func (c *Canvas) SetDrawColor(col RGB) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
}

// SetLineWidth sets the stroke width for lines and outlines.
func (c *Canvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

// QR draws a QR code with its top-left corner at (x, y).
func (c *Canvas) QR(data string, x, y, size float64) {
	key := barcode.RegisterQR(c.pdf, data, qr.M, qr.Unicode)
	barcode.Barcode(c.pdf, key, x, y, size, size, false)
}

// Err returns the document's accumulated error state, if any.
func (c *Canvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}

// Output finalizes the document and returns its bytes.
func (c *Canvas) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
