package domain

import "errors"

// Sentinel errors used across layers.
var (
	// ErrUnknownItem is returned for any item id outside the catalog. It is
	// a caller bug, never a runtime condition to recover from.
	ErrUnknownItem = errors.New("unknown item")

	ErrNoFastAdjust         = errors.New("item has no fast adjust")
	ErrNegativeQuantity     = errors.New("quantity must not be negative")
	ErrInvalidCatalog       = errors.New("invalid catalog")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
