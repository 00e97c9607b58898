// Package filter implements the multi-criteria predicate scan over the
// product collection. All functions are pure.
package filter

import (
	"strconv"
	"strings"

	"catalog-desk/internal/domain"
)

// Apply returns the order-preserving subsequence of products matching every
// active criterion in filters.
func Apply(products []domain.Product, filters domain.Filters) []domain.Product {
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, filters) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matches(p domain.Product, f domain.Filters) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		nameMatch := strings.Contains(strings.ToLower(p.Name), term)
		descriptionMatch := p.Description != "" && strings.Contains(strings.ToLower(p.Description), term)
		if !nameMatch && !descriptionMatch {
			return false
		}
	}

	if f.Category != "" && f.Category != "all" {
		if p.Category != f.Category {
			return false
		}
	}

	if f.MinPrice != "" {
		if floor, err := strconv.ParseFloat(strings.TrimSpace(f.MinPrice), 64); err == nil && p.Price < floor {
			return false
		}
	}

	if f.MaxPrice != "" {
		if ceil, err := strconv.ParseFloat(strings.TrimSpace(f.MaxPrice), 64); err == nil && p.Price > ceil {
			return false
		}
	}

	switch f.StockStatus {
	case domain.StockStatusIn:
		if p.Stock <= 0 {
			return false
		}
	case domain.StockStatusOut:
		if p.Stock > 0 {
			return false
		}
	case domain.StockStatusLow:
		// Matches the stock < threshold check as shipped: zero stock also
		// counts as low. See DESIGN.md before tightening this.
		if p.Stock >= domain.LowStockThreshold {
			return false
		}
	}

	return true
}

// ActiveCount reports how many criteria are set to a non-default value,
// used by consumers for "N filters active" feedback.
func ActiveCount(f domain.Filters) int {
	count := 0
	if f.Search != "" {
		count++
	}
	if f.Category != "" && f.Category != "all" {
		count++
	}
	if f.MinPrice != "" {
		count++
	}
	if f.MaxPrice != "" {
		count++
	}
	if f.StockStatus != "" && f.StockStatus != domain.StockStatusAll {
		count++
	}
	return count
}
