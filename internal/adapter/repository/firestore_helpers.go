package repository

import (
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionProducts     = "products"
	collectionChats        = "chats"
	collectionUsers        = "users"
	collectionChatList     = "chatList"
	collectionFavorites    = "favorites"
	collectionReviews      = "reviews"
	collectionMessages     = "messages"
	collectionChannelLogos = "channelLogos"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func userSubcollection(client *firestore.Client, userID, name string) *firestore.CollectionRef {
	return client.Collection(collectionUsers).Doc(userID).Collection(name)
}

// millis reads an epoch-millisecond field that may also be stored as a Firestore timestamp.
func millis(data map[string]interface{}, key string) int64 {
	switch v := data[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case time.Time:
		return v.UnixMilli()
	}
	return 0
}

func str(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}
