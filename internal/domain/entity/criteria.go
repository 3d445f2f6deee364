package entity

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel category meaning "do not filter by category".
const CategoryAll = "all"

// Sort orders accepted by Criteria.SortBy. Relevance keeps the catalog's
// declared order; the others are stable sorts over the filtered subsequence.
const (
	SortRelevance  = "relevance"
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortRatingDesc = "rating-desc"
)

// Criteria is the current search/filter/sort selection of a session.
// Price bounds are carried as raw strings: an empty or non-numeric value
// means "unbounded" rather than an error.
type Criteria struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	SortBy   string
}

// DefaultCriteria returns the selection a fresh session starts with, and the
// one an explicit "clear filters" resets to.
func DefaultCriteria() Criteria {
	return Criteria{Category: CategoryAll, SortBy: SortRelevance}
}

// Apply filters and sorts the given products according to the criteria.
// It is pure: the input slice is never mutated and the result is a new
// slice, deterministic for fixed inputs.
func (c Criteria) Apply(products []Product) []Product {
	list := make([]Product, 0, len(products))
	list = append(list, products...)

	if search := strings.ToLower(strings.TrimSpace(c.Search)); search != "" {
		list = retain(list, func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Name), search) ||
				strings.Contains(strings.ToLower(p.Description), search)
		})
	}

	if c.Category != "" && c.Category != CategoryAll {
		list = retain(list, func(p Product) bool { return p.Category == c.Category })
	}

	if min, ok := parsePriceBound(c.MinPrice); ok {
		list = retain(list, func(p Product) bool { return p.Price.GreaterThanOrEqual(min) })
	}

	if max, ok := parsePriceBound(c.MaxPrice); ok {
		list = retain(list, func(p Product) bool { return p.Price.LessThanOrEqual(max) })
	}

	switch c.SortBy {
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price.LessThan(list[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price.GreaterThan(list[j].Price) })
	case SortRatingDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Rating > list[j].Rating })
	}

	return list
}

func retain(list []Product, keep func(Product) bool) []Product {
	filtered := list[:0]
	for _, p := range list {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// parsePriceBound interprets a raw bound value. A blank or non-numeric value
// means the bound is absent, matching the behaviour of an empty form field.
func parsePriceBound(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, false
	}

	bound, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return bound, true
}
