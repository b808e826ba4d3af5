// Package numbering produces human-facing document numbers. The formats are
// part of the persisted contract and must not change:
//
//	JE-YYYYMMDD-NNN   journal entries, daily reset
//	INV-YYYYMMDD-NNN  sales invoices, daily reset
//	CN-YYYYMMDD-NNN   credit notes, daily reset
//	GRN-YYYY-NNN      goods receipt notes, yearly reset
//
// NNN is the sequence value zero-padded to 3 digits.
package numbering

import (
	"fmt"
	"time"
)

// Prefix identifies a numbered document series.
type Prefix string

const (
	PrefixJournalEntry Prefix = "JE"
	PrefixInvoice      Prefix = "INV"
	PrefixCreditNote   Prefix = "CN"
	PrefixGoodsReceipt Prefix = "GRN"
)

// yearlyReset marks prefixes whose counter resets per calendar year rather
// than per day.
var yearlyReset = map[Prefix]bool{
	PrefixGoodsReceipt: true,
}

// SequenceKey is the counter identity for a document on a given date, e.g.
// "JE-20250310" or "GRN-2025". One counter row exists per key per company.
func SequenceKey(p Prefix, date time.Time) string {
	if yearlyReset[p] {
		return fmt.Sprintf("%s-%s", p, date.Format("2006"))
	}
	return fmt.Sprintf("%s-%s", p, date.Format("20060102"))
}

// Format renders the full document number for a sequence value.
func Format(p Prefix, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%03d", SequenceKey(p, date), seq)
}
