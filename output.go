package invoicepdf

import (
	"encoding/base64"
	"strings"
	"unicode"
)

// Rendered is a finished document. The engine creates it once per render
// and never mutates or persists it; attaching it to an email or returning
// it over HTTP is the caller's responsibility.
type Rendered struct {
	Bytes    []byte
	Number   string // invoice number, empty for letters
	Filename string // suggested attachment filename
}

// Base64 returns the document encoded for JSON transport or an email
// attachment.
func (r *Rendered) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Bytes)
}

func invoiceFilename(number string, paid bool) string {
	if paid {
		return number + "-PAID.pdf"
	}
	return number + ".pdf"
}

// documentFilename derives a filesystem-safe filename from a letter title.
func documentFilename(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}
