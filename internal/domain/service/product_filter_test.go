package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
)

func sampleCatalog() []entity.Product {
	return []entity.Product{
		{ID: "a", DisplayName: "Tech Channel", Platform: "YouTube", Category: "Tech", Price: 50, Subscribers: 1000, Income: 10, MonthlyIncome: 300, CreatedAt: 3, Monetization: true},
		{ID: "b", DisplayName: "Gaming Hub", Platform: "YouTube", Category: "Gaming", Price: 500, Subscribers: 90000, Income: 900, MonthlyIncome: 100, CreatedAt: 5, Verified: true},
		{ID: "c", DisplayName: "Dance Clips", Platform: "TikTok", Category: "Entertainment", Price: 80, Subscribers: 5000, Income: 40, MonthlyIncome: 200, CreatedAt: 1, Description: "daily tech dances"},
		{ID: "d", DisplayName: "Food Lovers", Platform: "Instagram", Category: "Food", Price: 120, Subscribers: 20000, Income: 0, MonthlyIncome: 50, CreatedAt: 4, Monetization: true, Verified: true},
	}
}

func ids(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyFilters_PlatformAndMaxPrice(t *testing.T) {
	products := []entity.Product{
		{ID: "1", Platform: "YouTube", Price: 50},
		{ID: "2", Platform: "YouTube", Price: 500},
		{ID: "3", Platform: "TikTok", Price: 80},
	}

	result := ApplyFilters(products, entity.FilterOptions{Platform: "YouTube", MaxPrice: 100})

	assert.Equal(t, []string{"1"}, ids(result))
}

func TestApplyFilters_CaseInsensitivePlatformAndCategory(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), entity.FilterOptions{Platform: "youtube", Category: "GAMING"})
	assert.Equal(t, []string{"b"}, ids(result))
}

func TestApplyFilters_SearchMatchesAnyField(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), entity.FilterOptions{Search: "TECH"})
	assert.ElementsMatch(t, []string{"a", "c"}, ids(result))

	result = ApplyFilters(sampleCatalog(), entity.FilterOptions{Search: "instagram"})
	assert.Equal(t, []string{"d"}, ids(result))
}

func TestApplyFilters_NumericBoundsAreInclusive(t *testing.T) {
	result := ApplyFilters(sampleCatalog(), entity.FilterOptions{MinPrice: 80, MaxPrice: 120})
	assert.ElementsMatch(t, []string{"c", "d"}, ids(result))

	result = ApplyFilters(sampleCatalog(), entity.FilterOptions{MinSubscribers: 5000, MaxSubscribers: 20000})
	assert.ElementsMatch(t, []string{"c", "d"}, ids(result))

	result = ApplyFilters(sampleCatalog(), entity.FilterOptions{MinIncome: 10, MaxIncome: 40})
	assert.ElementsMatch(t, []string{"a", "c"}, ids(result))
}

func TestApplyFilters_FlagsOnlyApplyWhenSet(t *testing.T) {
	assert.ElementsMatch(t, []string{"a", "d"}, ids(ApplyFilters(sampleCatalog(), entity.FilterOptions{Monetization: true})))
	assert.ElementsMatch(t, []string{"b", "d"}, ids(ApplyFilters(sampleCatalog(), entity.FilterOptions{Verified: true})))
	assert.Len(t, ApplyFilters(sampleCatalog(), entity.FilterOptions{}), 4)
}

func TestApplyFilters_Monotonic(t *testing.T) {
	catalog := sampleCatalog()
	steps := []func(*entity.FilterOptions){
		func(f *entity.FilterOptions) { f.Platform = "YouTube" },
		func(f *entity.FilterOptions) { f.MaxPrice = 400 },
		func(f *entity.FilterOptions) { f.Monetization = true },
		func(f *entity.FilterOptions) { f.Search = "tech" },
		func(f *entity.FilterOptions) { f.MinSubscribers = 2000 },
	}

	var f entity.FilterOptions
	previous := ApplyFilters(catalog, f)
	require.Len(t, previous, len(catalog))

	for _, step := range steps {
		step(&f)
		current := ApplyFilters(catalog, f)
		assert.LessOrEqual(t, len(current), len(previous))
		assert.Subset(t, ids(previous), ids(current))
		previous = current
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	before := ids(catalog)

	ApplyFilters(catalog, entity.FilterOptions{SortBy: entity.SortByPrice})

	assert.Equal(t, before, ids(catalog))
}

func TestSortProducts(t *testing.T) {
	tests := []struct {
		name string
		key  entity.SortKey
		want []string
	}{
		{"price", entity.SortByPrice, []string{"b", "d", "c", "a"}},
		{"subscribers", entity.SortBySubscribers, []string{"b", "d", "c", "a"}},
		{"income uses monthly income", entity.SortByIncome, []string{"a", "c", "b", "d"}},
		{"created at", entity.SortByCreatedAt, []string{"b", "d", "a", "c"}},
		{"relevance falls back to created at", entity.SortByRelevance, []string{"b", "d", "a", "c"}},
		{"no key falls back to created at", "", []string{"b", "d", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyFilters(sampleCatalog(), entity.FilterOptions{SortBy: tt.key})
			assert.Equal(t, tt.want, ids(result))
		})
	}
}

func TestSortProducts_PriceIsNonIncreasing(t *testing.T) {
	products := []entity.Product{{Price: 3}, {Price: 99.5}, {Price: 12}, {Price: 12}, {Price: 0}, {Price: 1500}}

	SortProducts(products, entity.SortByPrice)

	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Price, products[i].Price)
	}
}
