package entity

// UnreadMessage is a message document addressed to a user that has not been read.
type UnreadMessage struct {
	ID          string
	ChatID      string
	RecipientID string
	SenderName  string
	Text        string
	Timestamp   int64
}

// Tone describes the short synthesized sound that accompanies a notification.
type Tone struct {
	Waveform    string  `json:"waveform"`
	FrequencyHz int     `json:"frequency_hz"`
	Gain        float64 `json:"gain"`
	DurationMs  int     `json:"duration_ms"`
}

var NotificationTone = Tone{Waveform: "sine", FrequencyHz: 800, Gain: 0.1, DurationMs: 100}

type Notification struct {
	ID             string `json:"id"`
	ChatID         string `json:"chat_id"`
	SenderName     string `json:"sender_name"`
	Preview        string `json:"preview"`
	Timestamp      int64  `json:"timestamp"`
	DismissAfterMs int    `json:"dismiss_after_ms"`
	Sound          *Tone  `json:"sound,omitempty"`
}
