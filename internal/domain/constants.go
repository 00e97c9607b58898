package domain

import "time"

// Categories lists the fixed set offered by the catalog. Category stays a
// plain string on Product so imported snapshots with other values survive.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home",
	"Sports",
	"Other",
}

// LowStockThreshold marks non-zero stock below this value as low
const LowStockThreshold = 5

// DebounceDelay is the quiet period applied to rapidly changing input
const DebounceDelay = 300 * time.Millisecond

// UndoHistoryLimit caps the recently deleted snapshots kept for undo
const UndoHistoryLimit = 5

// Validation bounds for product fields
const (
	NameMinLength        = 3
	NameMaxLength        = 50
	DescriptionMaxLength = 200
	PriceMin             = 0.01
	PriceMax             = 999999.99
	StockMin             = 0
	StockMax             = 999999
)
