package testutil

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"swapdmarket/internal/domain/entity"
)

// Publisher records every published event.
type Publisher struct {
	mu              sync.Mutex
	ChatsCreated    []string
	EscrowRequested []string
	ProductsDeleted []string
	Err             error
}

func (p *Publisher) PublishChatCreated(ctx context.Context, chat *entity.Chat) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ChatsCreated = append(p.ChatsCreated, chat.ID)
	return p.Err
}

func (p *Publisher) PublishEscrowRequested(ctx context.Context, chatID string, msg *entity.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.EscrowRequested = append(p.EscrowRequested, chatID)
	return p.Err
}

func (p *Publisher) PublishProductDeleted(ctx context.Context, productID, actorID string, favoritesRemoved int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ProductsDeleted = append(p.ProductsDeleted, productID)
	return p.Err
}

func (p *Publisher) Close() error { return nil }

// Notifier captures pushed payloads per user.
type Notifier struct {
	mu   sync.Mutex
	Sent map[string][][]byte
	// Connections is what SendToUser reports; defaults to 1.
	Connections int
}

func NewNotifier() *Notifier {
	return &Notifier{Sent: make(map[string][][]byte), Connections: 1}
}

func (n *Notifier) SendToUser(userID string, message []byte) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent[userID] = append(n.Sent[userID], message)
	return n.Connections
}

func (n *Notifier) Messages(userID string) [][]byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][]byte(nil), n.Sent[userID]...)
}

// Limiter allows every action unless Deny names it.
type Limiter struct {
	Deny map[string]bool
}

func (l *Limiter) Allow(userID, action string) (bool, time.Duration) {
	if l.Deny[action] {
		return false, time.Minute
	}
	return true, 0
}

// LogoFetcher serves a fixed body for every URL.
type LogoFetcher struct {
	Body        []byte
	ContentType string
	Err         error
	Fetched     []string
}

func (f *LogoFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, string, error) {
	f.Fetched = append(f.Fetched, url)
	if f.Err != nil {
		return nil, "", f.Err
	}
	return io.NopCloser(bytes.NewReader(f.Body)), f.ContentType, nil
}

const uploadsBaseURL = "https://storage.example.test/"

// Uploads is an in-memory FileUploadService.
type Uploads struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewUploads() *Uploads {
	return &Uploads{Objects: make(map[string][]byte)}
}

func (u *Uploads) UploadFile(ctx context.Context, r io.Reader, contentType, objectPath string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Objects[objectPath] = data
	return uploadsBaseURL + objectPath, nil
}

func (u *Uploads) DeleteFile(ctx context.Context, fileURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.Objects, strings.TrimPrefix(fileURL, uploadsBaseURL))
	return nil
}

func (u *Uploads) Close() error { return nil }

// Sink collects delivered payloads of one connection.
type Sink struct {
	mu       sync.Mutex
	Payloads [][]byte
	Full     bool
}

func (s *Sink) Deliver(message []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Full {
		return false
	}
	s.Payloads = append(s.Payloads, message)
	return true
}

func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Payloads)
}

// UnreadFeed replays a fixed batch of messages, then blocks until ctx is done.
type UnreadFeed struct {
	Batch []entity.UnreadMessage
	Err   error
}

func (f *UnreadFeed) Watch(ctx context.Context, userID string, limit int, onAdded func(entity.UnreadMessage)) error {
	if f.Err != nil {
		return f.Err
	}
	for _, msg := range f.Batch {
		if msg.RecipientID != "" && msg.RecipientID != userID {
			continue
		}
		onAdded(msg)
	}
	<-ctx.Done()
	return nil
}
