package cache

import (
	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/logger"
)

// stateTTL keeps idle client state for 30 days.
const stateTTL = 30 * 24 * 60 * 60

type freecacheClientStateStore struct {
	cache *freecache.Cache
}

// NewClientStateStore keeps client state in an in-process freecache of sizeMB megabytes.
func NewClientStateStore(sizeMB int) repository.ClientStateStore {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &freecacheClientStateStore{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
	}
}

func stateKey(clientID, key string) []byte {
	return []byte(clientID + ":" + key)
}

func (s *freecacheClientStateStore) Put(clientID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.cache.Set(stateKey(clientID, key), raw, stateTTL)
}

func (s *freecacheClientStateStore) Load(clientID string) entity.ClientState {
	var state entity.ClientState
	s.get(clientID, entity.StateKeyFilters, &state.Filters)
	s.get(clientID, entity.StateKeyCurrentPage, &state.CurrentPage)
	s.get(clientID, entity.StateKeyScrollPosition, &state.ScrollPosition)
	s.get(clientID, entity.StateKeyLastChatID, &state.LastChatID)
	s.get(clientID, entity.StateKeyNotificationSound, &state.NotificationSoundEnabled)
	return state
}

func (s *freecacheClientStateStore) get(clientID, key string, dst interface{}) {
	raw, err := s.cache.Get(stateKey(clientID, key))
	if err != nil {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("discarding unreadable client state %s for %s: %v", key, clientID, err)
		s.cache.Del(stateKey(clientID, key))
	}
}
