package entity

type Favorite struct {
	UserID       string  `json:"user_id" firestore:"-"`
	ProductID    string  `json:"product_id" firestore:"productId"`
	AddedAt      int64   `json:"added_at" firestore:"addedAt"`
	ProductName  string  `json:"product_name" firestore:"productName"`
	ProductPrice float64 `json:"product_price" firestore:"productPrice"`
	ProductImage string  `json:"product_image" firestore:"productImage"`
}
