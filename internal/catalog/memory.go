// Package catalog provides the price table implementations.
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/logger"
)

// Compile-time interface check.
var _ domain.Catalog = (*Memory)(nil)

// Memory holds the catalog in memory. It is immutable after construction
// and therefore safe for concurrent reads.
type Memory struct {
	items    []domain.Item // canonical order
	sections []domain.Section
	byID  map[domain.ItemID]int
	names map[string]domain.ItemID
	log   *logger.Logger
}

// NewMemory creates the built-in window-cleaning catalog.
func NewMemory(log *logger.Logger) *Memory {
	m, err := NewMemoryFrom(builtin(), log)
	if err != nil {
		// The built-in table is a constant; failing here is a programming error.
		panic(fmt.Sprintf("catalog: built-in table: %v", err))
	}
	return m
}

// NewMemoryFrom builds a catalog from an explicit item list. Items are
// reordered by section, keeping declaration order within each section.
func NewMemoryFrom(items []domain.Item, log *logger.Logger) (*Memory, error) {
	m := &Memory{
		byID:  make(map[domain.ItemID]int, len(items)),
		names: make(map[string]domain.ItemID),
		log:   log,
	}

	for _, it := range items {
		if err := validate(it); err != nil {
			return nil, err
		}
		if _, dup := m.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidCatalog, it.ID)
		}
		m.byID[it.ID] = -1
	}

	for _, sec := range domain.Sections {
		held := false
		for _, it := range items {
			if it.Section != sec {
				continue
			}
			if !held {
				m.sections = append(m.sections, sec)
				held = true
			}
			it.Aliases = append([]string(nil), it.Aliases...)
			m.byID[it.ID] = len(m.items)
			m.items = append(m.items, it)
		}
	}

	for _, it := range m.items {
		keys := []string{string(it.ID), it.Label}
		keys = append(keys, it.Aliases...)
		for _, k := range keys {
			k = normalize(k)
			if k == "" {
				continue
			}
			if owner, taken := m.names[k]; taken && owner != it.ID {
				return nil, fmt.Errorf("%w: name %q used by %s and %s", domain.ErrInvalidCatalog, k, owner, it.ID)
			}
			m.names[k] = it.ID
		}
	}

	log.Debug("catalog loaded, items=%d names=%d", len(m.items), len(m.names))
	return m, nil
}

func validate(it domain.Item) error {
	switch {
	case it.ID == "":
		return fmt.Errorf("%w: empty id", domain.ErrInvalidCatalog)
	case !it.Category.Valid():
		return fmt.Errorf("%w: %s has unknown category", domain.ErrInvalidCatalog, it.ID)
	case !it.Section.Valid():
		return fmt.Errorf("%w: %s has unknown section", domain.ErrInvalidCatalog, it.ID)
	case it.UnitPrice.IsNegative():
		return fmt.Errorf("%w: %s has negative price", domain.ErrInvalidCatalog, it.ID)
	case it.StepIncrement <= 0:
		return fmt.Errorf("%w: %s has non-positive step", domain.ErrInvalidCatalog, it.ID)
	}
	return nil
}

// Item returns the full entry for id.
func (m *Memory) Item(id domain.ItemID) (domain.Item, error) {
	idx, ok := m.byID[id]
	if !ok {
		m.log.Debug("item not found: %s", id)
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, id)
	}
	it := m.items[idx]
	it.Aliases = append([]string(nil), it.Aliases...)
	return it, nil
}

// PriceOf returns the unit price of id.
func (m *Memory) PriceOf(id domain.ItemID) (decimal.Decimal, error) {
	it, err := m.Item(id)
	if err != nil {
		return decimal.Zero, err
	}
	return it.UnitPrice, nil
}

// CategoryOf returns the pricing category of id.
func (m *Memory) CategoryOf(id domain.ItemID) (domain.Category, error) {
	it, err := m.Item(id)
	if err != nil {
		return 0, err
	}
	return it.Category, nil
}

// AllItemIDs returns every id in canonical order.
func (m *Memory) AllItemIDs() []domain.ItemID {
	out := make([]domain.ItemID, len(m.items))
	for i, it := range m.items {
		out[i] = it.ID
	}
	return out
}

// Items returns copies of every entry in canonical order.
func (m *Memory) Items() []domain.Item {
	out := make([]domain.Item, len(m.items))
	for i, it := range m.items {
		it.Aliases = append([]string(nil), it.Aliases...)
		out[i] = it
	}
	return out
}

// Sections returns the non-empty sections in canonical order.
func (m *Memory) Sections() []domain.Section {
	return append([]domain.Section(nil), m.sections...)
}

// Resolve maps a typed name to an item id. Ids, bid labels and aliases
// match case-insensitively; spaces, dashes and underscores are equivalent.
func (m *Memory) Resolve(name string) (domain.ItemID, error) {
	key := normalize(name)
	if id, ok := m.names[key]; ok {
		return id, nil
	}
	m.log.Debug("no item matches %q", name)
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownItem, strings.TrimSpace(name))
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pane(id domain.ItemID, sec domain.Section, p, label, title, desc string, aliases ...string) domain.Item {
	return domain.Item{
		ID:            id,
		Category:      domain.CategoryWindow,
		Section:       sec,
		UnitPrice:     price(p),
		Label:         label,
		Title:         title,
		Description:   desc,
		Aliases:       aliases,
		StepIncrement: 1,
	}
}

func screen(id domain.ItemID, p, label, title, desc string, aliases ...string) domain.Item {
	return domain.Item{
		ID:            id,
		Category:      domain.CategoryScreen,
		Section:       domain.SectionScreens,
		UnitPrice:     price(p),
		Label:         label,
		Title:         title,
		Description:   desc,
		Aliases:       aliases,
		StepIncrement: 1,
	}
}

func gutter(id domain.ItemID, p, label, title string, aliases ...string) domain.Item {
	return domain.Item{
		ID:            id,
		Category:      domain.CategoryGutter,
		Section:       domain.SectionGutters,
		UnitPrice:     price(p),
		Label:         label,
		Title:         title,
		Description:   "Linear feet rounded to nearest ten",
		Aliases:       aliases,
		StepIncrement: 10,
	}
}

// builtin is the canonical price table.
func builtin() []domain.Item {
	const (
		up  = domain.SectionUpperWindows
		low = domain.SectionLowerWindows
	)

	xsUpper := pane("XS_UPPER_WINDOW", up, "3.56", "XS Upper", "Extra Small Upper Pane", "< 1 sqft", "xsu")
	xsUpper.FastAdjust = true
	xsLower := pane("XS_LOWER_WINDOW", low, "2.54", "XS Lower", "Extra Small Lower Pane", "< 1 sqft", "xsl")
	xsLower.FastAdjust = true

	return []domain.Item{
		pane("XL_UPPER_WINDOW", up, "23.64", "XL Upper", "Extra Large Upper Pane", "> 27 sqft", "xlu"),
		pane("L_UPPER_WINDOW", up, "16.06", "L Upper", "Large Upper Pane", "13 - 26 sqft", "lu"),
		pane("M_UPPER_WINDOW", up, "8.59", "M Upper", "Medium Upper Pane", "4 - 12 sqft", "mu"),
		pane("S_UPPER_WINDOW", up, "6.85", "S Upper", "Small Upper Pane", "1 - 3 sqft", "su"),
		xsUpper,

		pane("XL_LOWER_WINDOW", low, "17.98", "XL Lower", "Extra Large Lower Pane", "> 27 sqft", "xll"),
		pane("L_LOWER_WINDOW", low, "11.43", "L Lower", "Large Lower Pane", "13 - 26 sqft", "ll"),
		pane("M_LOWER_WINDOW", low, "6.49", "M Lower", "Medium Lower Pane", "4 - 12 sqft", "ml"),
		pane("S_LOWER_WINDOW", low, "4.31", "S Lower", "Small Lower Pane", "1 - 3 sqft", "sl"),
		xsLower,

		screen("EXTERIOR_HALF_SCREEN", "2.72", "Half Screens", "Half Screens", "", "half"),
		screen("WHOLE_INTERIOR_SCREEN", "3.12", "Whole/Interior Screens", "Full Screens", "Interior or exterior", "whole", "full"),
		screen("EXTERIOR_HALF_SCREEN_INTERIOR", "4.00", "Half Screens (remove from interior)", "Half Screens", "Remove from inside", "half in", "half interior"),
		screen("SOLAR_SCREEN", "5.56", "Solar Screens", "Solar Screens", "", "solar"),
		screen("SCREW_SOLAR_SCREEN", "8.00", "Screw-On Solar Screens", "Screw-On Solar Screens", "", "screw", "screw solar"),
		screen("UPPER_WOODEN_SCREEN", "14.00", "Upper Wooden Screens", "Upper Wooden Screens", "", "upper wood"),
		screen("LOWER_WOODEN_SCREEN", "7.00", "Lower Wooden Screens", "Lower Wooden Screens", "", "lower wood"),

		gutter("FIRST_STORY_GUTTER", "1.00", "Gutters (1st Story)", "First Story Gutters", "g1", "gutter 1"),
		gutter("SECOND_STORY_GUTTER", "2.00", "Gutters (2nd Story)", "Second Story Gutters", "g2", "gutter 2"),
	}
}
