package domain

import "github.com/shopspring/decimal"

// ItemID identifies a catalog entry, e.g. "XL_UPPER_WINDOW".
type ItemID string

// Item is one billable catalog entry.
type Item struct {
	ID          ItemID
	Category    Category
	Section     Section
	UnitPrice   decimal.Decimal
	Label       string // used in the bid text
	Title       string // on-screen heading
	Description string
	Aliases     []string

	// StepIncrement is the quantity change of one normal +/- press.
	StepIncrement int
	// FastAdjust enables the extra ±10 press.
	FastAdjust bool
}

// Category decides which subtotal an item's price flows into.
type Category int

const (
	CategoryWindow Category = iota
	CategoryScreen
	CategoryGutter
)

// String returns a human-readable category.
func (c Category) String() string {
	switch c {
	case CategoryWindow:
		return "window"
	case CategoryScreen:
		return "screen"
	case CategoryGutter:
		return "gutter"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= CategoryWindow && c <= CategoryGutter
}

// Unit is the suffix printed after a quantity in the bid. Gutters are
// counted in linear feet.
func (c Category) Unit() string {
	if c == CategoryGutter {
		return "ft"
	}
	return ""
}

// Section is a display grouping. It is independent of Category: upper and
// lower panes are both windows.
type Section int

const (
	SectionUpperWindows Section = iota
	SectionLowerWindows
	SectionScreens
	SectionGutters
)

// Sections lists every section in canonical display order.
var Sections = []Section{
	SectionUpperWindows,
	SectionLowerWindows,
	SectionScreens,
	SectionGutters,
}

// String returns the section heading.
func (s Section) String() string {
	switch s {
	case SectionUpperWindows:
		return "Upper Windows"
	case SectionLowerWindows:
		return "Lower Windows"
	case SectionScreens:
		return "Screens"
	case SectionGutters:
		return "Gutters"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the declared sections.
func (s Section) Valid() bool {
	return s >= SectionUpperWindows && s <= SectionGutters
}
