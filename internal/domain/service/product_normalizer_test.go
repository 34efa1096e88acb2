package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"swapdmarket/internal/domain/entity"
)

func TestNormalizeProduct_Defaults(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	p := NormalizeProduct(entity.RawProduct{ID: "p1", Data: map[string]interface{}{}}, now)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, entity.DefaultDisplayName, p.DisplayName)
	assert.Equal(t, entity.DefaultPlatform, p.Platform)
	assert.Equal(t, entity.DefaultCategory, p.Category)
	assert.Equal(t, entity.DefaultStatus, p.Status)
	assert.Equal(t, entity.DefaultLanguage, p.Language)
	assert.Equal(t, now.UnixMilli(), p.CreatedAt)
	assert.Equal(t, now.UnixMilli(), p.LastUpdated)
	assert.NotNil(t, p.ImageURLs)
	assert.Empty(t, p.ImageURLs)
	assert.NotNil(t, p.Tags)
	assert.NotNil(t, p.Analytics)
	assert.NotNil(t, p.Metrics)
	assert.NotNil(t, p.Settings)
	assert.Zero(t, p.Price)
	assert.False(t, p.Verified)
}

func TestNormalizeProduct_ReadsStoredValues(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := entity.RawProduct{ID: "p2", Data: map[string]interface{}{
		"userId":       "u2",
		"displayName":  "Tech Channel",
		"platform":     "YouTube",
		"price":        int64(120),
		"subscribers":  float64(15000),
		"imageUrls":    []interface{}{"https://img/1.png", 42, "https://img/2.png"},
		"verified":     true,
		"createdAt":    created,
		"lastUpdated":  int64(1709294400000),
		"analytics":    map[string]interface{}{"views": int64(10), "source": "ads", "nested": map[string]interface{}{"x": 1}},
		"monetization": "yes",
	}}

	p := NormalizeProduct(raw, time.Now())

	assert.Equal(t, "u2", p.UserID)
	assert.Equal(t, "Tech Channel", p.DisplayName)
	assert.Equal(t, 120.0, p.Price)
	assert.Equal(t, int64(15000), p.Subscribers)
	assert.Equal(t, []string{"https://img/1.png", "https://img/2.png"}, p.ImageURLs)
	assert.True(t, p.Verified)
	assert.False(t, p.Monetization)
	assert.Equal(t, created.UnixMilli(), p.CreatedAt)
	assert.Equal(t, int64(1709294400000), p.LastUpdated)
	assert.Equal(t, entity.Bag{"views": entity.NumberValue(10), "source": entity.StringValue("ads")}, p.Analytics)
}
