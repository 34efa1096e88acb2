// Package testutil holds in-memory implementations of the repository interfaces for tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/service"
	"swapdmarket/pkg/errors"
)

// Products is an in-memory ProductRepository.
type Products struct {
	mu        sync.Mutex
	Raw       []entity.RawProduct
	Err       error
	UpdateErr error

	// OnList runs at the start of every ListRecent.
	OnList  func()
	Calls   int
	Deleted []string
}

func NewProducts(products ...entity.Product) *Products {
	p := &Products{}
	for _, product := range products {
		p.Add(product)
	}
	return p
}

// Add stores product in its document shape.
func (p *Products) Add(product entity.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Raw = append(p.Raw, entity.RawProduct{ID: product.ID, Data: map[string]interface{}{
		"userId":       product.UserID,
		"userEmail":    product.UserEmail,
		"displayName":  product.DisplayName,
		"description":  product.Description,
		"platform":     product.Platform,
		"category":     product.Category,
		"price":        product.Price,
		"subscribers":  product.Subscribers,
		"income":       product.Income,
		"channelLogo":  product.ChannelLogo,
		"imageUrls":    product.ImageURLs,
		"verified":     product.Verified,
		"monetization": product.Monetization,
		"createdAt":    product.CreatedAt,
	}})
}

func (p *Products) ListRecent(ctx context.Context, limit int) ([]entity.RawProduct, error) {
	if p.OnList != nil {
		p.OnList()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	out := append([]entity.RawProduct(nil), p.Raw...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *Products) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, raw := range p.Raw {
		if raw.ID == id {
			product := service.NormalizeProduct(raw, time.Now())
			return &product, nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (p *Products) ListByOwner(ctx context.Context, userID string) ([]entity.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []entity.Product
	for _, raw := range p.Raw {
		if raw.Data["userId"] == userID {
			out = append(out, service.NormalizeProduct(raw, time.Now()))
		}
	}
	return out, nil
}

func (p *Products) UpdateChannelLogo(ctx context.Context, id, logoURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.UpdateErr != nil {
		return p.UpdateErr
	}
	for _, raw := range p.Raw {
		if raw.ID == id {
			raw.Data["channelLogo"] = logoURL
			return nil
		}
	}
	return errors.NotFound("Product", nil)
}

func (p *Products) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, raw := range p.Raw {
		if raw.ID == id {
			p.Raw = append(p.Raw[:i], p.Raw[i+1:]...)
			p.Deleted = append(p.Deleted, id)
			return nil
		}
	}
	return nil
}

// Chats is an in-memory ChatRepository. Writes counts every mutating call.
type Chats struct {
	mu       sync.Mutex
	Chats    map[string]*entity.Chat
	Entries  map[string]map[string]entity.ChatListEntry
	order    []string
	nextID   int
	Writes   int
	FindErr  error
	ApplyErr error
}

func NewChats() *Chats {
	return &Chats{
		Chats:   make(map[string]*entity.Chat),
		Entries: make(map[string]map[string]entity.ChatListEntry),
	}
}

func (c *Chats) FindOrCreate(ctx context.Context, productID, userID string, newChat *entity.Chat) (*entity.Chat, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FindErr != nil {
		return nil, false, c.FindErr
	}
	for _, id := range c.order {
		chat := c.Chats[id]
		if chat.ProductID == productID && chat.HasParticipant(userID) {
			copied := *chat
			return &copied, false, nil
		}
	}

	c.nextID++
	c.Writes++
	chat := *newChat
	chat.ID = fmt.Sprintf("chat-%d", c.nextID)
	c.Chats[chat.ID] = &chat
	c.order = append(c.order, chat.ID)
	newChat.ID = chat.ID
	copied := chat
	return &copied, true, nil
}

func (c *Chats) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	chat, ok := c.Chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (c *Chats) ApplyUpdate(ctx context.Context, update entity.ChatUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ApplyErr != nil {
		return c.ApplyErr
	}
	chat, ok := c.Chats[update.ChatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	c.Writes++
	last := update.LastMessage
	chat.LastMessage = &last
	chat.UpdatedAt = last.Timestamp
	for owner, entry := range update.Entries {
		if c.Entries[owner] == nil {
			c.Entries[owner] = make(map[string]entity.ChatListEntry)
		}
		c.Entries[owner][update.ChatID] = entry
	}
	return nil
}

func (c *Chats) ListEntries(ctx context.Context, userID string) ([]entity.ChatListEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.ChatListEntry, 0, len(c.Entries[userID]))
	for _, entry := range c.Entries[userID] {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out, nil
}

// Entry returns the list entry of owner for chatID.
func (c *Chats) Entry(owner, chatID string) (entity.ChatListEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.Entries[owner][chatID]
	return entry, ok
}

// MessageLog is an in-memory realtime message log.
type MessageLog struct {
	mu        sync.Mutex
	Messages  map[string][]entity.Message
	AppendErr error
	seq       int
}

func NewMessageLog() *MessageLog {
	return &MessageLog{Messages: make(map[string][]entity.Message)}
}

func (l *MessageLog) IsEmpty(ctx context.Context, chatID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Messages[chatID]) == 0, nil
}

func (l *MessageLog) Append(ctx context.Context, chatID string, message *entity.Message) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.AppendErr != nil {
		return "", l.AppendErr
	}
	l.seq++
	message.ID = fmt.Sprintf("msg-%d", l.seq)
	l.Messages[chatID] = append(l.Messages[chatID], *message)
	return message.ID, nil
}

func (l *MessageLog) List(ctx context.Context, chatID string) ([]entity.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entity.Message(nil), l.Messages[chatID]...), nil
}

// Favorites is an in-memory FavoriteRepository keyed by user then product.
type Favorites struct {
	mu   sync.Mutex
	Data map[string]map[string]entity.Favorite
}

func NewFavorites() *Favorites {
	return &Favorites{Data: make(map[string]map[string]entity.Favorite)}
}

func (f *Favorites) Exists(ctx context.Context, userID, productID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Data[userID][productID]
	return ok, nil
}

func (f *Favorites) Toggle(ctx context.Context, fav *entity.Favorite) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Data[fav.UserID][fav.ProductID]; ok {
		delete(f.Data[fav.UserID], fav.ProductID)
		return false, nil
	}
	if f.Data[fav.UserID] == nil {
		f.Data[fav.UserID] = make(map[string]entity.Favorite)
	}
	f.Data[fav.UserID][fav.ProductID] = *fav
	return true, nil
}

func (f *Favorites) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Favorite, 0, len(f.Data[userID]))
	for _, fav := range f.Data[userID] {
		out = append(out, fav)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt > out[j].AddedAt })
	return out, nil
}

func (f *Favorites) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, favs := range f.Data {
		if _, ok := favs[productID]; ok {
			delete(favs, productID)
			n++
		}
	}
	return n, nil
}

// Users is an in-memory UserRepository.
type Users struct {
	Users []entity.User
}

func (u *Users) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for i := range u.Users {
		if u.Users[i].ID == id {
			user := u.Users[i]
			return &user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (u *Users) List(ctx context.Context) ([]entity.User, error) {
	return append([]entity.User(nil), u.Users...), nil
}

// Reviews is an in-memory ReviewRepository.
type Reviews struct {
	Reviews []entity.Review
}

func (r *Reviews) ListBySeller(ctx context.Context, sellerID string) ([]entity.Review, error) {
	var out []entity.Review
	for _, review := range r.Reviews {
		if review.SellerID == sellerID {
			out = append(out, review)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// ChannelLogos is an in-memory ChannelLogoRepository.
type ChannelLogos struct {
	mu    sync.Mutex
	Logos []entity.ChannelLogo
}

func (c *ChannelLogos) FindByChannelID(ctx context.Context, channelID string) (*entity.ChannelLogo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, logo := range c.Logos {
		if logo.ChannelID == channelID {
			found := logo
			return &found, nil
		}
	}
	return nil, errors.NotFound("Channel logo", nil)
}

func (c *ChannelLogos) Save(ctx context.Context, logo *entity.ChannelLogo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	logo.ID = fmt.Sprintf("logo-%d", len(c.Logos)+1)
	c.Logos = append(c.Logos, *logo)
	return nil
}

// ClientState is a map-backed ClientStateStore.
type ClientState struct {
	mu     sync.Mutex
	States map[string]entity.ClientState
}

func NewClientState() *ClientState {
	return &ClientState{States: make(map[string]entity.ClientState)}
}

func (s *ClientState) Load(clientID string) entity.ClientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.States[clientID]
}

func (s *ClientState) Put(clientID, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.States[clientID]
	switch key {
	case entity.StateKeyFilters:
		state.Filters = value.(entity.FilterOptions)
	case entity.StateKeyCurrentPage:
		state.CurrentPage = value.(int)
	case entity.StateKeyScrollPosition:
		state.ScrollPosition = value.(int)
	case entity.StateKeyLastChatID:
		state.LastChatID = value.(string)
	case entity.StateKeyNotificationSound:
		state.NotificationSoundEnabled = value.(bool)
	default:
		return fmt.Errorf("unknown client state key %q", key)
	}
	s.States[clientID] = state
	return nil
}
