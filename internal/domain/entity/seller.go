package entity

import "time"

type SellerFilter string

const (
	SellerFilterAll          SellerFilter = "all"
	SellerFilterWithProducts SellerFilter = "withProducts"
	SellerFilterTopRated     SellerFilter = "topRated"
)

// TopRatedThreshold is the minimum rating for the topRated directory filter.
const TopRatedThreshold = 4.5

type Seller struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photo_url"`
	Rating       float64   `json:"rating"`
	TotalSales   int       `json:"total_sales"`
	Verified     bool      `json:"verified"`
	JoinedDate   time.Time `json:"joined_date"`
	Products     int       `json:"products"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	ResponseTime string    `json:"response_time"`
	HasProducts  bool      `json:"has_products"`
}

type Profile struct {
	User     *User     `json:"user"`
	Products []Product `json:"products"`
	Reviews  []Review  `json:"reviews"`
}
