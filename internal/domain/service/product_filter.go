package service

import (
	"slices"
	"strings"

	"swapdmarket/internal/domain/entity"
)

type productPredicate func(p *entity.Product) bool

// ApplyFilters narrows products by every set filter and sorts the result.
// The input slice is left untouched.
func ApplyFilters(products []entity.Product, f entity.FilterOptions) []entity.Product {
	preds := predicatesFor(f)

	result := make([]entity.Product, 0, len(products))
	for i := range products {
		if matchesAll(&products[i], preds) {
			result = append(result, products[i])
		}
	}

	SortProducts(result, f.SortBy)
	return result
}

func matchesAll(p *entity.Product, preds []productPredicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func predicatesFor(f entity.FilterOptions) []productPredicate {
	var preds []productPredicate

	if f.Platform != "" {
		preds = append(preds, func(p *entity.Product) bool {
			return strings.EqualFold(p.Platform, f.Platform)
		})
	}
	if f.Category != "" {
		preds = append(preds, func(p *entity.Product) bool {
			return strings.EqualFold(p.Category, f.Category)
		})
	}
	if f.MinPrice > 0 {
		preds = append(preds, func(p *entity.Product) bool { return p.Price >= f.MinPrice })
	}
	if f.MaxPrice > 0 {
		preds = append(preds, func(p *entity.Product) bool { return p.Price <= f.MaxPrice })
	}
	if f.MinSubscribers > 0 {
		preds = append(preds, func(p *entity.Product) bool { return p.Subscribers >= f.MinSubscribers })
	}
	if f.MaxSubscribers > 0 {
		preds = append(preds, func(p *entity.Product) bool { return p.Subscribers <= f.MaxSubscribers })
	}
	if f.MinIncome > 0 {
		preds = append(preds, func(p *entity.Product) bool { return p.Income >= f.MinIncome })
	}
	if f.MaxIncome > 0 {
		preds = append(preds, func(p *entity.Product) bool { return p.Income <= f.MaxIncome })
	}
	if f.Monetization {
		preds = append(preds, func(p *entity.Product) bool { return p.Monetization })
	}
	if f.Verified {
		preds = append(preds, func(p *entity.Product) bool { return p.Verified })
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		preds = append(preds, func(p *entity.Product) bool {
			for _, field := range []string{p.DisplayName, p.Description, p.Platform, p.Category} {
				if strings.Contains(strings.ToLower(field), term) {
					return true
				}
			}
			return false
		})
	}

	return preds
}

// SortProducts orders products descending by the given key. Relevance and an empty key
// fall back to creation time.
func SortProducts(products []entity.Product, key entity.SortKey) {
	var value func(p *entity.Product) float64
	switch key {
	case entity.SortByPrice:
		value = func(p *entity.Product) float64 { return p.Price }
	case entity.SortBySubscribers:
		value = func(p *entity.Product) float64 { return float64(p.Subscribers) }
	case entity.SortByIncome:
		value = func(p *entity.Product) float64 { return p.MonthlyIncome }
	default:
		value = func(p *entity.Product) float64 { return float64(p.CreatedAt) }
	}

	slices.SortStableFunc(products, func(a, b entity.Product) int {
		va, vb := value(&a), value(&b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		}
		return 0
	})
}
