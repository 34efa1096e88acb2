package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
)

func TestClientStateStore_RoundTrip(t *testing.T) {
	store := NewClientStateStore(1)

	filters := entity.FilterOptions{Platform: "YouTube", MaxPrice: 100, SortBy: entity.SortByPrice}
	require.NoError(t, store.Put("c1", entity.StateKeyFilters, filters))
	require.NoError(t, store.Put("c1", entity.StateKeyCurrentPage, 3))
	require.NoError(t, store.Put("c1", entity.StateKeyScrollPosition, 840))
	require.NoError(t, store.Put("c1", entity.StateKeyLastChatID, "chat-9"))
	require.NoError(t, store.Put("c1", entity.StateKeyNotificationSound, true))

	state := store.Load("c1")

	assert.Equal(t, filters, state.Filters)
	assert.Equal(t, 3, state.CurrentPage)
	assert.Equal(t, 840, state.ScrollPosition)
	assert.Equal(t, "chat-9", state.LastChatID)
	assert.True(t, state.NotificationSoundEnabled)
}

func TestClientStateStore_UnknownClientIsZero(t *testing.T) {
	store := NewClientStateStore(1)
	require.NoError(t, store.Put("c1", entity.StateKeyCurrentPage, 2))

	assert.Equal(t, entity.ClientState{}, store.Load("c2"))
}

func TestClientStateStore_UnreadableValueIsDropped(t *testing.T) {
	store := NewClientStateStore(1)
	require.NoError(t, store.Put("c1", entity.StateKeyCurrentPage, "not a number"))

	assert.Equal(t, 0, store.Load("c1").CurrentPage)
}
