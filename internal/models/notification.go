// internal/models/notification.go
package models

import "time"

// Channel is a notification delivery medium.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Channels lists every channel in dispatch order. Fan-out iterates this
// slice so batch contents are deterministic.
var Channels = []Channel{ChannelInApp, ChannelEmail, ChannelPush}

// Notification is one delivery record for one recipient on one channel.
// Rows are only ever created by the dispatchers; the read flag is
// mutated elsewhere.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Channel   `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationPreference holds a user's per-channel delivery switches
// plus the order-updates opt-out that overrides all of them.
type NotificationPreference struct {
	UserID              string `json:"userId"`
	EmailEnabled        bool   `json:"emailEnabled"`
	PushEnabled         bool   `json:"pushEnabled"`
	InAppEnabled        bool   `json:"inAppEnabled"`
	OrderUpdatesEnabled bool   `json:"orderUpdatesEnabled"`
}

// DefaultPreference is the policy applied when a user has no preference
// row: in-app and email on, push off, order updates on.
func DefaultPreference(userID string) *NotificationPreference {
	return &NotificationPreference{
		UserID:              userID,
		EmailEnabled:        true,
		PushEnabled:         false,
		InAppEnabled:        true,
		OrderUpdatesEnabled: true,
	}
}

// EnabledChannels resolves a preference to the ordered set of channels a
// dispatch should write. A nil preference means the default policy.
func EnabledChannels(pref *NotificationPreference) []Channel {
	if pref == nil {
		pref = DefaultPreference("")
	}
	enabled := map[Channel]bool{
		ChannelInApp: pref.InAppEnabled,
		ChannelEmail: pref.EmailEnabled,
		ChannelPush:  pref.PushEnabled,
	}
	out := make([]Channel, 0, len(Channels))
	for _, ch := range Channels {
		if enabled[ch] {
			out = append(out, ch)
		}
	}
	return out
}
