package entity

import "time"

type Review struct {
	ID          string    `json:"id" firestore:"-"`
	SellerID    string    `json:"seller_id" firestore:"sellerId"`
	ReviewerID  string    `json:"reviewer_id" firestore:"reviewerId"`
	ProductID   string    `json:"product_id" firestore:"productId"`
	ProductName string    `json:"product_name" firestore:"productName"`
	Rating      float64   `json:"rating" firestore:"rating"`
	Comment     string    `json:"comment" firestore:"comment"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
}
