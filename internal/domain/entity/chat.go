package entity

import "sort"

const (
	ChatStatusPending    = "pending"
	PaymentStatusPending = "pending"
)

type LastMessage struct {
	Text      string `json:"text" firestore:"text"`
	Timestamp int64  `json:"timestamp" firestore:"timestamp"`
	SenderID  string `json:"sender_id" firestore:"senderId"`
}

type Chat struct {
	ID                string            `json:"id" firestore:"-"`
	ProductID         string            `json:"product_id" firestore:"productId"`
	ProductName       string            `json:"product_name" firestore:"productName"`
	ProductImage      string            `json:"product_image" firestore:"productImage"`
	ProductPrice      float64           `json:"product_price" firestore:"productPrice"`
	Participants      []string          `json:"participants" firestore:"participants"`
	ParticipantNames  map[string]string `json:"participant_names" firestore:"participantNames"`
	ParticipantPhotos map[string]string `json:"participant_photos" firestore:"participantPhotos"`
	BuyerID           string            `json:"buyer_id" firestore:"buyerId"`
	SellerID          string            `json:"seller_id" firestore:"sellerId"`
	Status            string            `json:"status" firestore:"status"`
	PaymentStatus     string            `json:"payment_status" firestore:"paymentStatus"`
	TransactionID     int64             `json:"transaction_id" firestore:"transactionId"`
	AdminJoined       bool              `json:"admin_joined" firestore:"adminJoined"`
	CreatedAt         int64             `json:"created_at" firestore:"createdAt"`
	UpdatedAt         int64             `json:"updated_at" firestore:"updatedAt"`
	LastMessage       *LastMessage      `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Fingerprint identifies the (product, participant pair) a chat belongs to.
func (c *Chat) Fingerprint() string {
	pair := append([]string(nil), c.Participants...)
	sort.Strings(pair)
	key := c.ProductID
	for _, p := range pair {
		key += "_" + p
	}
	return key
}

// ChatListEntry is one participant's summary row for a chat.
type ChatListEntry struct {
	ChatID               string `json:"chat_id" firestore:"chatId"`
	ProductID            string `json:"product_id" firestore:"productId"`
	ProductName          string `json:"product_name" firestore:"productName"`
	ProductImage         string `json:"product_image" firestore:"productImage"`
	OtherUserID          string `json:"other_user_id" firestore:"otherUserId"`
	OtherUserName        string `json:"other_user_name" firestore:"otherUserName"`
	LastMessage          string `json:"last_message" firestore:"lastMessage"`
	LastMessageTimestamp int64  `json:"last_message_timestamp" firestore:"lastMessageTimestamp"`
	UnreadCount          int    `json:"unread_count" firestore:"unreadCount"`
	UpdatedAt            int64  `json:"updated_at" firestore:"updatedAt"`
}

// ChatUpdate is every denormalized write that follows a new message in a chat:
// the chat's lastMessage pointer plus the list entries of the given owners.
type ChatUpdate struct {
	ChatID      string
	LastMessage LastMessage
	Entries     map[string]ChatListEntry
}
