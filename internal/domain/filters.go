package domain

// StockStatus narrows the catalog view by stock level
type StockStatus string

const (
	StockStatusAll StockStatus = "all"
	StockStatusIn  StockStatus = "in-stock"
	StockStatusOut StockStatus = "out-of-stock"
	StockStatusLow StockStatus = "low-stock"
)

// Filters describes the criteria applied to the product collection.
// MinPrice and MaxPrice stay raw strings, exactly as entered; a value
// that does not parse as a number leaves that bound inactive.
type Filters struct {
	Search      string      `json:"search"`
	Category    string      `json:"category"`
	MinPrice    string      `json:"min_price"`
	MaxPrice    string      `json:"max_price"`
	StockStatus StockStatus `json:"stock_status"`
}
