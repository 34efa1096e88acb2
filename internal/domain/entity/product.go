package entity

import "strings"

const (
	DefaultDisplayName = "Untitled Channel"
	DefaultPlatform    = "Unknown"
	DefaultCategory    = "Other"
	DefaultStatus      = "active"
	DefaultLanguage    = "en"
)

// RawProduct is a product document as stored, before normalization.
type RawProduct struct {
	ID   string
	Data map[string]interface{}
}

type Product struct {
	ID        string `json:"id" firestore:"-"`
	UserID    string `json:"user_id" firestore:"userId"`
	UserEmail string `json:"user_email" firestore:"userEmail"`

	DisplayName string `json:"display_name" firestore:"displayName"`
	Description string `json:"description" firestore:"description"`
	Platform    string `json:"platform" firestore:"platform"`
	Category    string `json:"category" firestore:"category"`

	Price           float64 `json:"price" firestore:"price"`
	Subscribers     int64   `json:"subscribers" firestore:"subscribers"`
	Income          float64 `json:"income" firestore:"income"`
	MonthlyIncome   float64 `json:"monthly_income" firestore:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthly_expenses" firestore:"monthlyExpenses"`
	IncomeSource    string  `json:"income_source" firestore:"incomeSource"`
	ExpenseDetails  string  `json:"expense_details" firestore:"expenseDetails"`

	ChannelLogo string   `json:"channel_logo" firestore:"channelLogo"`
	ChannelID   string   `json:"channel_id" firestore:"channelId"`
	ImageURLs   []string `json:"image_urls" firestore:"imageUrls"`
	AccountLink string   `json:"account_link" firestore:"accountLink"`

	Status        string `json:"status" firestore:"status"`
	Verified      bool   `json:"verified" firestore:"verified"`
	Monetization  bool   `json:"monetization" firestore:"monetization"`
	AllowComments bool   `json:"allow_comments" firestore:"allowComments"`

	Views          int64    `json:"views" firestore:"views"`
	Likes          int64    `json:"likes" firestore:"likes"`
	Comments       int64    `json:"comments" firestore:"comments"`
	EngagementRate float64  `json:"engagement_rate" firestore:"engagementRate"`
	Tags           []string `json:"tags" firestore:"tags"`
	Location       string   `json:"location" firestore:"location"`
	Language       string   `json:"language" firestore:"language"`

	PromotionStrategy   string `json:"promotion_strategy" firestore:"promotionStrategy"`
	SupportRequirements string `json:"support_requirements" firestore:"supportRequirements"`
	VerificationCode    string `json:"-" firestore:"verificationCode"`

	CreatedAt   int64 `json:"created_at" firestore:"createdAt"`
	LastUpdated int64 `json:"last_updated" firestore:"lastUpdated"`

	Analytics Bag `json:"analytics" firestore:"analytics"`
	Metrics   Bag `json:"metrics" firestore:"metrics"`
	Settings  Bag `json:"settings" firestore:"settings"`
}

// CoverImage is the image shown for the product in chats: the channel logo, else the first image.
func (p *Product) CoverImage() string {
	if p.ChannelLogo != "" {
		return p.ChannelLogo
	}
	return p.FirstImage()
}

func (p *Product) FirstImage() string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}

// SellerName derives the seller label from the owner email.
func (p *Product) SellerName() string {
	if local := EmailLocalPart(p.UserEmail); local != "" {
		return local
	}
	return "Seller"
}

func EmailLocalPart(email string) string {
	if email == "" {
		return ""
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
