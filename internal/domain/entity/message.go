package entity

type TransactionData struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Price           float64 `json:"price"`
	UseEscrow       bool    `json:"use_escrow"`
	PaymentMethod   string  `json:"payment_method"`
	TransactionID   int64   `json:"transaction_id"`
	TemplateVersion string  `json:"template_version,omitempty"`
}

// Message is an entry in a chat's realtime log.
type Message struct {
	ID              string           `json:"id"`
	Text            string           `json:"text"`
	SenderID        string           `json:"sender_id"`
	SenderName      string           `json:"sender_name"`
	SenderPhotoURL  string           `json:"sender_photo_url,omitempty"`
	Timestamp       int64            `json:"timestamp"`
	IsRequest       bool             `json:"is_request"`
	IsEscrowRequest bool             `json:"is_escrow_request"`
	TransactionData *TransactionData `json:"transaction_data,omitempty"`
}
