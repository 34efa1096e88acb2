package entity

import "time"

type User struct {
	ID                  string    `json:"id" firestore:"-"`
	Email               string    `json:"email" firestore:"email"`
	Name                string    `json:"name" firestore:"name"`
	DisplayName         string    `json:"display_name" firestore:"displayName"`
	PhotoURL            string    `json:"photo_url" firestore:"photoURL"`
	Bio                 string    `json:"bio" firestore:"bio"`
	Location            string    `json:"location" firestore:"location"`
	IsAdmin             bool      `json:"is_admin" firestore:"isAdmin"`
	Verified            bool      `json:"verified" firestore:"verified"`
	Rating              float64   `json:"rating" firestore:"rating"`
	RatingCount         int       `json:"rating_count" firestore:"ratingCount"`
	ProfileRating       float64   `json:"profile_rating" firestore:"profileRating"`
	TotalSales          int       `json:"total_sales" firestore:"totalSales"`
	Points              int       `json:"points" firestore:"points"`
	Score               float64   `json:"score" firestore:"score"`
	AverageResponseTime string    `json:"average_response_time" firestore:"averageResponseTime"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
}

// Identity is the signed-in caller as seen by use cases.
type Identity struct {
	ID       string
	Name     string
	Email    string
	PhotoURL string
	IsAdmin  bool
}

// DisplayLabel is the name shown to the other participant of a chat.
func (i *Identity) DisplayLabel() string {
	if i.Name != "" {
		return i.Name
	}
	if local := EmailLocalPart(i.Email); local != "" {
		return local
	}
	return "User"
}
