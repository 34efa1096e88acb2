package repository

import "swapdmarket/internal/domain/entity"

// ClientStateStore keeps the small per-client state that survives reloads.
type ClientStateStore interface {
	Load(clientID string) entity.ClientState
	Put(clientID, key string, value interface{}) error
}
