package entity

type ChannelLogo struct {
	ID          string `json:"id" firestore:"-"`
	ChannelID   string `json:"channel_id" firestore:"channelId"`
	ChannelName string `json:"channel_name" firestore:"channelName"`
	LogoURL     string `json:"logo_url" firestore:"logoUrl"`
	Platform    string `json:"platform" firestore:"platform"`
	CreatedAt   int64  `json:"created_at" firestore:"createdAt"`
}
