package invoicepdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InvoiceNumber formats a sequential invoice number as PREFIX-YEAR-SEQ,
// e.g. "FASE-2026-0042". The number doubles as the payment reconciliation
// reference, so it must be unique per invoice.
func InvoiceNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// RandomInvoiceNumber builds a PREFIX-YEAR-SUFFIX number with a random
// suffix, for callers that have no sequence counter available.
func RandomInvoiceNumber(prefix string, year int) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, year, suffix)
}
