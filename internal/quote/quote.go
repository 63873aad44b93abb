// Package quote renders the copyable bid text from quantities and totals.
package quote

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gwyndows/bidcalc/internal/domain"
)

// Line is one non-zero item of a bid.
type Line struct {
	ID       domain.ItemID
	Section  domain.Section
	Label    string
	Quantity int
	Unit     string
}

// Value is the quantity as printed, with the unit suffix if any.
func (l Line) Value() string {
	v := strconv.Itoa(l.Quantity)
	if l.Unit != "" {
		v += " " + l.Unit
	}
	return v
}

// String renders the line as it appears in the bid.
func (l Line) String() string {
	return l.Label + ": " + l.Value()
}

// Summary is one of the closing totals lines.
type Summary struct {
	Label  string
	Amount decimal.Decimal
}

// String renders the summary as it appears in the bid.
func (s Summary) String() string {
	return s.Label + ": " + FormatUSD(s.Amount)
}

// Lines returns the non-zero items grouped by section in catalog order.
func Lines(q domain.Quantities, c domain.Catalog) []Line {
	var out []Line
	items := c.Items()
	for _, sec := range c.Sections() {
		for _, it := range items {
			if it.Section != sec || q[it.ID] <= 0 {
				continue
			}
			out = append(out, Line{
				ID:       it.ID,
				Section:  sec,
				Label:    it.Label,
				Quantity: q[it.ID],
				Unit:     it.Category.Unit(),
			})
		}
	}
	return out
}

// Summaries returns the totals that are strictly positive, in bid order.
func Summaries(t domain.Totals) []Summary {
	all := []Summary{
		{"In/Out", t.InOut},
		{"Out Only", t.OutOnly},
		{"Gutter Cleaning", t.Gutters},
	}
	out := all[:0]
	for _, s := range all {
		if s.Amount.IsPositive() {
			out = append(out, s)
		}
	}
	return out
}

// Serialize renders the bid. Every line ends in a newline. A blank line
// separates items from totals only when both are present: items whose
// prices are all zero produce item lines with no separator and no totals.
// A quote with nothing to report is the empty string.
func Serialize(q domain.Quantities, t domain.Totals, c domain.Catalog) string {
	lines := Lines(q, c)
	sums := Summaries(t)

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	if len(lines) > 0 && len(sums) > 0 {
		b.WriteByte('\n')
	}
	for _, s := range sums {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatUSD formats an amount as dollars with exactly two decimals,
// rounding half away from zero.
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
