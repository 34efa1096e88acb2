package entity

// Keys of the per-client persisted state.
const (
	StateKeyFilters           = "filters"
	StateKeyCurrentPage       = "currentPage"
	StateKeyScrollPosition    = "scrollPosition"
	StateKeyLastChatID        = "lastChatId"
	StateKeyNotificationSound = "notificationSoundEnabled"
)

type ClientState struct {
	Filters                  FilterOptions `json:"filters"`
	CurrentPage              int           `json:"current_page"`
	ScrollPosition           int           `json:"scroll_position"`
	LastChatID               string        `json:"last_chat_id"`
	NotificationSoundEnabled bool          `json:"notification_sound_enabled"`
}
