// Package engine implements the quote engine: per-session item quantities
// and the totals derived from them.
package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/logger"
	"github.com/gwyndows/bidcalc/internal/quote"
)

// OutOnlyFactor discounts window labour when only exteriors are cleaned.
// It never applies to screens or gutters.
var OutOnlyFactor = decimal.RequireFromString("0.67")

// FastStep is the size of the ±10 fast adjustment.
const FastStep = 10

// Option configures the engine.
type Option func(*Engine)

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.id = id
	}
}

// Engine owns the quantities of one quoting session. It is not safe for
// concurrent use; give each session its own Engine.
type Engine struct {
	id      string
	catalog domain.Catalog
	qty     domain.Quantities
	log     *logger.Logger
}

// New creates an engine with every catalog item at quantity zero.
func New(catalog domain.Catalog, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		id:      generateID(),
		catalog: catalog,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.qty = e.zeroed()
	e.log.Debug("session %s: started with %d items", e.id, len(e.qty))
	return e
}

// ID returns the session ID.
func (e *Engine) ID() string { return e.id }

// Catalog returns the catalog the engine prices against.
func (e *Engine) Catalog() domain.Catalog { return e.catalog }

func (e *Engine) zeroed() domain.Quantities {
	ids := e.catalog.AllItemIDs()
	q := make(domain.Quantities, len(ids))
	for _, id := range ids {
		q[id] = 0
	}
	return q
}

func (e *Engine) lookup(id domain.ItemID) (domain.Item, error) {
	it, err := e.catalog.Item(id)
	if err != nil {
		e.log.Error("session %s: %v", e.id, err)
		return domain.Item{}, err
	}
	return it, nil
}

// Adjust adds delta to the item's quantity, flooring at zero and
// saturating at math.MaxInt, and returns the new quantity. Going below zero
// is not an error.
func (e *Engine) Adjust(id domain.ItemID, delta int) (int, error) {
	if _, err := e.lookup(id); err != nil {
		return 0, err
	}

	n := addClamped(e.qty[id], delta)
	e.qty[id] = n
	e.log.Debug("session %s: %s %+d -> %d", e.id, id, delta, n)
	return n, nil
}

// addClamped returns max(0, cur+delta) for cur >= 0 without wrapping.
func addClamped(cur, delta int) int {
	if delta > 0 && cur > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, cur+delta)
}

// Increment adds the item's step increment.
func (e *Engine) Increment(id domain.ItemID) (int, error) {
	it, err := e.lookup(id)
	if err != nil {
		return 0, err
	}
	return e.Adjust(id, it.StepIncrement)
}

// Decrement subtracts the item's step increment.
func (e *Engine) Decrement(id domain.ItemID) (int, error) {
	it, err := e.lookup(id)
	if err != nil {
		return 0, err
	}
	return e.Adjust(id, -it.StepIncrement)
}

// FastAdjust moves the quantity by ±10 for items that offer it.
func (e *Engine) FastAdjust(id domain.ItemID, up bool) (int, error) {
	it, err := e.lookup(id)
	if err != nil {
		return 0, err
	}
	if !it.FastAdjust {
		return e.qty[id], fmt.Errorf("%w: %s", domain.ErrNoFastAdjust, id)
	}
	if up {
		return e.Adjust(id, FastStep)
	}
	return e.Adjust(id, -FastStep)
}

// Set moves the quantity to n.
func (e *Engine) Set(id domain.ItemID, n int) (int, error) {
	if _, err := e.lookup(id); err != nil {
		return 0, err
	}
	if n < 0 {
		return e.qty[id], fmt.Errorf("%w: %s=%d", domain.ErrNegativeQuantity, id, n)
	}
	return e.Adjust(id, n-e.qty[id])
}

// ResetItem sets the item's quantity to zero.
func (e *Engine) ResetItem(id domain.ItemID) error {
	if _, err := e.lookup(id); err != nil {
		return err
	}
	e.qty[id] = 0
	e.log.Debug("session %s: reset %s", e.id, id)
	return nil
}

// ResetAll sets every quantity to zero in one swap.
func (e *Engine) ResetAll() {
	e.qty = e.zeroed()
	e.log.Info("session %s: reset all", e.id)
}

// Quantity returns the current quantity of one item.
func (e *Engine) Quantity(id domain.ItemID) (int, error) {
	if _, err := e.lookup(id); err != nil {
		return 0, err
	}
	return e.qty[id], nil
}

// Quantities returns a copy of the full quantity state.
func (e *Engine) Quantities() domain.Quantities {
	return e.qty.Clone()
}

// Totals derives the totals from the current quantities.
func (e *Engine) Totals() domain.Totals {
	return ComputeTotals(e.qty, e.catalog)
}

// Quote renders the bid text for the current state.
func (e *Engine) Quote() string {
	return quote.Serialize(e.qty, e.Totals(), e.catalog)
}

// ComputeTotals is the pure total derivation. Ids that are missing from q
// count as zero; ids in q that the catalog does not know are ignored.
func ComputeTotals(q domain.Quantities, c domain.Catalog) domain.Totals {
	var windows, screens, gutters decimal.Decimal

	for _, it := range c.Items() {
		n := q[it.ID]
		if n <= 0 {
			continue
		}
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(n)))
		switch it.Category {
		case domain.CategoryWindow:
			windows = windows.Add(line)
		case domain.CategoryScreen:
			screens = screens.Add(line)
		case domain.CategoryGutter:
			gutters = gutters.Add(line)
		}
	}

	return domain.Totals{
		InOut:          windows.Add(screens),
		OutOnly:        windows.Mul(OutOnlyFactor).Add(screens),
		Gutters:        gutters,
		Windows:        windows,
		Screens:        screens,
		GutterSubtotal: gutters,
	}
}
