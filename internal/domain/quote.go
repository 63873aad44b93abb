package domain

import "github.com/shopspring/decimal"

// Quantities maps every catalog item to its non-negative count. Gutter
// quantities are linear feet.
type Quantities map[ItemID]int

// Clone returns an independent copy.
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for id, n := range q {
		out[id] = n
	}
	return out
}

// Totals is a snapshot derived from quantities and prices. Values keep full
// precision; rounding is a formatting concern.
type Totals struct {
	InOut   decimal.Decimal
	OutOnly decimal.Decimal
	Gutters decimal.Decimal

	// Category subtotals the three totals are built from.
	Windows        decimal.Decimal
	Screens        decimal.Decimal
	GutterSubtotal decimal.Decimal
}

// IsZero reports whether all three totals are zero.
func (t Totals) IsZero() bool {
	return t.InOut.IsZero() && t.OutOnly.IsZero() && t.Gutters.IsZero()
}
