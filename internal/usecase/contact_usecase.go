package usecase

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/domain/service"
	"swapdmarket/internal/infrastructure/events"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/infrastructure/ratelimit"
	"swapdmarket/internal/infrastructure/websocket"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

// ContactState is a step of the contact seller flow.
type ContactState string

const (
	ContactIdle       ContactState = "idle"
	ContactLocating   ContactState = "locating"
	ContactReusing    ContactState = "reusing"
	ContactCreating   ContactState = "creating"
	ContactMessaging  ContactState = "messaging"
	ContactPersisting ContactState = "persisting"
	ContactDone       ContactState = "done"
	ContactFailed     ContactState = "failed"
)

const contactFailedMessage = "Failed to create chat. Please try again later."

// ConversationPath is where a buyer continues after contacting a seller.
func ConversationPath(chatID string) string {
	return "/my-chats?chatId=" + url.QueryEscape(chatID)
}

// NewTransactionID draws a random 7-digit transaction id.
func NewTransactionID() int64 {
	return 1000000 + rand.Int64N(9000000)
}

type ContactUseCase struct {
	productRepo repository.ProductRepository
	chatRepo    repository.ChatRepository
	messageLog  repository.MessageLog
	state       repository.ClientStateStore
	publisher   events.Publisher
	notifier    Notifier
	limiter     RateLimiter
	metrics     metrics.Recorder
	now         Clock
	txnID       func() int64
}

func NewContactUseCase(
	productRepo repository.ProductRepository,
	chatRepo repository.ChatRepository,
	messageLog repository.MessageLog,
	state repository.ClientStateStore,
	publisher events.Publisher,
	notifier Notifier,
	limiter RateLimiter,
	recorder metrics.Recorder,
) *ContactUseCase {
	return &ContactUseCase{
		productRepo: productRepo,
		chatRepo:    chatRepo,
		messageLog:  messageLog,
		state:       state,
		publisher:   publisher,
		notifier:    notifier,
		limiter:     limiter,
		metrics:     recorder,
		now:         time.Now,
		txnID:       NewTransactionID,
	}
}

type ContactInput struct {
	ClientID      string
	ProductID     string
	PaymentMethod string
	UseEscrow     bool
}

type ContactResult struct {
	ChatID        string       `json:"chat_id"`
	Created       bool         `json:"created"`
	MessageSent   bool         `json:"message_sent"`
	TransactionID int64        `json:"transaction_id,omitempty"`
	Redirect      string       `json:"redirect"`
	State         ContactState `json:"state"`
}

// ContactSeller opens (or resumes) the buyer's chat with the product's seller and
// posts the escrow request when the chat has no messages yet.
func (uc *ContactUseCase) ContactSeller(ctx context.Context, buyer *entity.Identity, input ContactInput) (*ContactResult, error) {
	if buyer == nil || buyer.ID == "" {
		return nil, errors.SignInRequired()
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFound("Product", err)
		}
		logger.Error("ContactSeller Error: loading product %s: %v", input.ProductID, err)
		return nil, errors.New(errors.CodeContactFailed, contactFailedMessage, http.StatusInternalServerError, err)
	}

	if product.UserID == buyer.ID {
		return nil, errors.New(errors.CodeSelfContact, "You cannot contact yourself about your own listing", http.StatusBadRequest, nil)
	}

	if ok, wait := uc.limiter.Allow(buyer.ID, ratelimit.ActionContactSeller); !ok {
		return nil, errors.TooManyRequests("Too many contact requests. Please wait before trying again.", int(wait.Seconds())+1)
	}

	run := &contactRun{
		uc:      uc,
		buyer:   buyer,
		product: product,
		input:   input,
		state:   ContactIdle,
		log: logger.With("contact").With().
			Str("buyer", buyer.ID).
			Str("product", product.ID).
			Logger(),
	}
	result, err := run.execute(ctx)
	uc.metrics.IncContactOutcome(string(run.state))
	if err != nil {
		return nil, errors.New(errors.CodeContactFailed, contactFailedMessage, http.StatusInternalServerError, err)
	}
	return result, nil
}

// contactRun carries one pass through the contact state machine.
type contactRun struct {
	uc      *ContactUseCase
	buyer   *entity.Identity
	product *entity.Product
	input   ContactInput
	state   ContactState
	log     zerolog.Logger
}

func (r *contactRun) enter(state ContactState) {
	r.log.Debug().Str("from", string(r.state)).Str("to", string(state)).Msg("contact state")
	r.state = state
}

func (r *contactRun) fail(step string, err error) error {
	r.log.Error().Err(err).Str("state", string(r.state)).Msgf("contact seller failed while %s", step)
	r.state = ContactFailed
	return err
}

func (r *contactRun) execute(ctx context.Context) (*ContactResult, error) {
	uc := r.uc
	now := uc.now().UnixMilli()
	txnID := uc.txnID()

	r.enter(ContactLocating)
	chat, created, err := uc.chatRepo.FindOrCreate(ctx, r.product.ID, r.buyer.ID, r.newChat(txnID, now))
	if err != nil {
		return nil, r.fail("locating chat", err)
	}

	seed := true
	if created {
		r.enter(ContactCreating)
	} else {
		r.enter(ContactReusing)
		empty, err := uc.messageLog.IsEmpty(ctx, chat.ID)
		if err != nil {
			return nil, r.fail("checking chat history", err)
		}
		seed = empty
	}

	result := &ContactResult{ChatID: chat.ID, Created: created}
	if seed {
		r.enter(ContactMessaging)
		msg := r.escrowMessage(txnID, now)
		if _, err := uc.messageLog.Append(ctx, chat.ID, msg); err != nil {
			return nil, r.fail("posting escrow request", err)
		}
		update := r.chatUpdate(chat, now)
		if err := uc.chatRepo.ApplyUpdate(ctx, update); err != nil {
			return nil, r.fail("updating chat summaries", err)
		}
		r.pushChatUpdate(chat, update)
		result.MessageSent = true
		result.TransactionID = txnID

		if err := uc.publisher.PublishEscrowRequested(ctx, chat.ID, msg); err != nil {
			r.log.Warn().Err(err).Msg("escrow.requested event not published")
		}
	}
	if created {
		if err := uc.publisher.PublishChatCreated(ctx, chat); err != nil {
			r.log.Warn().Err(err).Msg("chat.created event not published")
		}
	}

	r.enter(ContactPersisting)
	if err := uc.state.Put(r.input.ClientID, entity.StateKeyLastChatID, chat.ID); err != nil {
		r.log.Warn().Err(err).Msg("last chat id not persisted")
	}

	r.enter(ContactDone)
	result.Redirect = ConversationPath(chat.ID)
	result.State = r.state
	return result, nil
}

// pushChatUpdate tells the participants' open sessions to refresh their chat list.
func (r *contactRun) pushChatUpdate(chat *entity.Chat, update entity.ChatUpdate) {
	payload, err := websocket.EncodeMessage(websocket.MessageTypeChatUpdated, map[string]interface{}{
		"chat_id":      update.ChatID,
		"last_message": update.LastMessage,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("encode chat update")
		return
	}
	for _, uid := range chat.Participants {
		r.uc.notifier.SendToUser(uid, payload)
	}
}

func (r *contactRun) newChat(txnID, now int64) *entity.Chat {
	buyerID, sellerID := r.buyer.ID, r.product.UserID
	return &entity.Chat{
		ProductID:    r.product.ID,
		ProductName:  r.product.DisplayName,
		ProductImage: r.product.CoverImage(),
		ProductPrice: r.product.Price,
		Participants: []string{buyerID, sellerID},
		ParticipantNames: map[string]string{
			buyerID:  r.buyer.DisplayLabel(),
			sellerID: r.product.SellerName(),
		},
		ParticipantPhotos: map[string]string{
			buyerID:  r.buyer.PhotoURL,
			sellerID: "",
		},
		BuyerID:       buyerID,
		SellerID:      sellerID,
		Status:        entity.ChatStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		TransactionID: txnID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *contactRun) escrowMessage(txnID, now int64) *entity.Message {
	return &entity.Message{
		Text: service.ComposeEscrowRequest(service.EscrowRequest{
			ProductName:   r.product.DisplayName,
			TransactionID: txnID,
			Price:         r.product.Price,
			PaymentMethod: r.input.PaymentMethod,
		}),
		SenderID:        r.buyer.ID,
		SenderName:      r.buyer.DisplayLabel(),
		SenderPhotoURL:  r.buyer.PhotoURL,
		Timestamp:       now,
		IsRequest:       true,
		IsEscrowRequest: true,
		TransactionData: &entity.TransactionData{
			ProductID:       r.product.ID,
			ProductName:     r.product.DisplayName,
			Price:           r.product.Price,
			UseEscrow:       r.input.UseEscrow,
			PaymentMethod:   r.input.PaymentMethod,
			TransactionID:   txnID,
			TemplateVersion: service.EscrowTemplateVersion,
		},
	}
}

// chatUpdate moves the chat's lastMessage to the escrow request and writes both list
// entries; the seller starts with one unread message. A seeded chat that already
// existed had its first contact fail before the entries were written.
func (r *contactRun) chatUpdate(chat *entity.Chat, now int64) entity.ChatUpdate {
	summary := service.EscrowSummary(r.product.DisplayName)
	update := entity.ChatUpdate{
		ChatID: chat.ID,
		LastMessage: entity.LastMessage{
			Text:      summary,
			Timestamp: now,
			SenderID:  r.buyer.ID,
		},
	}
	entry := func(otherID, otherName string, unread int) entity.ChatListEntry {
		return entity.ChatListEntry{
			ChatID:               chat.ID,
			ProductID:            r.product.ID,
			ProductName:          r.product.DisplayName,
			ProductImage:         r.product.CoverImage(),
			OtherUserID:          otherID,
			OtherUserName:        otherName,
			LastMessage:          summary,
			LastMessageTimestamp: now,
			UnreadCount:          unread,
			UpdatedAt:            now,
		}
	}
	update.Entries = map[string]entity.ChatListEntry{
		r.buyer.ID:       entry(r.product.UserID, r.product.SellerName(), 0),
		r.product.UserID: entry(r.buyer.ID, r.buyer.DisplayLabel(), 1),
	}
	return update
}
