package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Catalog is the closed, read-only price table. Lookups of ids outside the
// catalog fail with ErrUnknownItem.
type Catalog interface {
	PriceOf(id ItemID) (decimal.Decimal, error)
	CategoryOf(id ItemID) (Category, error)
	Item(id ItemID) (Item, error)
	// AllItemIDs returns ids grouped by section in canonical order, each
	// section in declaration order.
	AllItemIDs() []ItemID
	Items() []Item
	// Sections returns the sections that hold at least one item, in
	// canonical order.
	Sections() []Section
}

// CommandParser converts a raw input line into a structured command.
// Implementations can be keyword-based or anything smarter.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers short status messages (the "toast") to the user.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
	NotifyUrgent(ctx context.Context, title, message string) error
}

// Clipboard receives the generated bid text.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}
