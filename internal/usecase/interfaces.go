package usecase

import (
	"context"
	"io"
	"time"
)

// Notifier pushes an encoded message to every live connection of a user.
type Notifier interface {
	SendToUser(userID string, message []byte) int
}

// NotificationSink is a single live connection.
type NotificationSink interface {
	Deliver(message []byte) bool
}

// RateLimiter guards user actions.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

// LogoFetcher downloads a remote image.
type LogoFetcher interface {
	Fetch(ctx context.Context, url string) (body io.ReadCloser, contentType string, err error)
}

type Clock func() time.Time
