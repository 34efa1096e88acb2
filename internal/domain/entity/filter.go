package entity

type SortKey string

const (
	SortByCreatedAt   SortKey = "createdAt"
	SortByPrice       SortKey = "price"
	SortBySubscribers SortKey = "subscribers"
	SortByIncome      SortKey = "income"
	SortByRelevance   SortKey = "relevance"
)

// FilterOptions narrows the catalog. Zero values mean "not set".
type FilterOptions struct {
	Platform       string  `json:"platform,omitempty" query:"platform"`
	Category       string  `json:"category,omitempty" query:"category"`
	MinPrice       float64 `json:"minPrice,omitempty" query:"min_price" validate:"min=0"`
	MaxPrice       float64 `json:"maxPrice,omitempty" query:"max_price" validate:"min=0"`
	MinSubscribers int64   `json:"minSubscribers,omitempty" query:"min_subscribers" validate:"min=0"`
	MaxSubscribers int64   `json:"maxSubscribers,omitempty" query:"max_subscribers" validate:"min=0"`
	MinIncome      float64 `json:"minIncome,omitempty" query:"min_income" validate:"min=0"`
	MaxIncome      float64 `json:"maxIncome,omitempty" query:"max_income" validate:"min=0"`
	Monetization   bool    `json:"monetization,omitempty" query:"monetization"`
	Verified       bool    `json:"verified,omitempty" query:"verified"`
	Search         string  `json:"search,omitempty" query:"search"`
	SortBy         SortKey `json:"sortBy,omitempty" query:"sort_by" validate:"omitempty,oneof=createdAt price subscribers income relevance"`
}

// IsZero reports whether no filter or sort key is set.
func (f FilterOptions) IsZero() bool {
	return f == FilterOptions{}
}
