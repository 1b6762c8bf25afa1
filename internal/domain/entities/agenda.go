package entities

import "time"

// Agenda is a built (and possibly posted) agenda artifact for one meeting
// thread. PostedTS empty means "built but not yet posted"; it is a state
// flag, not a separate entity.
type Agenda struct {
	MeetingID string    `json:"meeting_id"`
	ChannelID string    `json:"channel_id"`
	ThreadTS  string    `json:"thread_ts"`
	Body      string    `json:"body"`
	PostedTS  string    `json:"posted_ts"`
	CreatedAt time.Time `json:"created_at"`
}

// Posted reports whether this agenda has already been delivered to chat.
func (a *Agenda) Posted() bool {
	return a.PostedTS != ""
}
