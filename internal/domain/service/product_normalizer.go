package service

import (
	"time"

	"swapdmarket/internal/domain/entity"
)

// NormalizeProduct turns a stored product document into a Product with every field defined.
func NormalizeProduct(raw entity.RawProduct, now time.Time) entity.Product {
	d := raw.Data
	nowMs := now.UnixMilli()

	return entity.Product{
		ID:        raw.ID,
		UserID:    stringField(d, "userId", ""),
		UserEmail: stringField(d, "userEmail", ""),

		DisplayName: stringField(d, "displayName", entity.DefaultDisplayName),
		Description: stringField(d, "description", ""),
		Platform:    stringField(d, "platform", entity.DefaultPlatform),
		Category:    stringField(d, "category", entity.DefaultCategory),

		Price:           numberField(d, "price"),
		Subscribers:     int64(numberField(d, "subscribers")),
		Income:          numberField(d, "income"),
		MonthlyIncome:   numberField(d, "monthlyIncome"),
		MonthlyExpenses: numberField(d, "monthlyExpenses"),
		IncomeSource:    stringField(d, "incomeSource", ""),
		ExpenseDetails:  stringField(d, "expenseDetails", ""),

		ChannelLogo: stringField(d, "channelLogo", ""),
		ChannelID:   stringField(d, "channelId", ""),
		ImageURLs:   stringsField(d, "imageUrls"),
		AccountLink: stringField(d, "accountLink", ""),

		Status:        stringField(d, "status", entity.DefaultStatus),
		Verified:      boolField(d, "verified"),
		Monetization:  boolField(d, "monetization"),
		AllowComments: boolField(d, "allowComments"),

		Views:          int64(numberField(d, "views")),
		Likes:          int64(numberField(d, "likes")),
		Comments:       int64(numberField(d, "comments")),
		EngagementRate: numberField(d, "engagementRate"),
		Tags:           stringsField(d, "tags"),
		Location:       stringField(d, "location", ""),
		Language:       stringField(d, "language", entity.DefaultLanguage),

		PromotionStrategy:   stringField(d, "promotionStrategy", ""),
		SupportRequirements: stringField(d, "supportRequirements", ""),
		VerificationCode:    stringField(d, "verificationCode", ""),

		CreatedAt:   millisField(d, "createdAt", nowMs),
		LastUpdated: millisField(d, "lastUpdated", nowMs),

		Analytics: bagField(d, "analytics"),
		Metrics:   bagField(d, "metrics"),
		Settings:  bagField(d, "settings"),
	}
}

// Empty strings fall back to def, like a falsy value would.
func stringField(d map[string]interface{}, key, def string) string {
	if s, ok := d[key].(string); ok && s != "" {
		return s
	}
	return def
}

func numberField(d map[string]interface{}, key string) float64 {
	if v, ok := entity.ValueOf(d[key]); ok && v.Kind == entity.KindNumber {
		return v.Num
	}
	return 0
}

func boolField(d map[string]interface{}, key string) bool {
	b, _ := d[key].(bool)
	return b
}

func stringsField(d map[string]interface{}, key string) []string {
	out := []string{}
	switch items := d[key].(type) {
	case []string:
		out = append(out, items...)
	case []interface{}:
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func millisField(d map[string]interface{}, key string, def int64) int64 {
	switch t := d[key].(type) {
	case time.Time:
		return t.UnixMilli()
	case *time.Time:
		if t != nil {
			return t.UnixMilli()
		}
	default:
		if n := numberField(d, key); n > 0 {
			return int64(n)
		}
	}
	return def
}

func bagField(d map[string]interface{}, key string) entity.Bag {
	if m, ok := d[key].(map[string]interface{}); ok {
		return entity.BagFrom(m)
	}
	return entity.Bag{}
}
