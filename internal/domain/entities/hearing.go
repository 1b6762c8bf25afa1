package entities

import "time"

const (
	HearingPromptStatusSent = "sent"
)

// HearingResponse is one participant's structured status update collected
// from a chat thread reply. One row per (meeting, user, reply); "latest"
// is resolved by maximum numeric timestamp at read time, never by overwrite.
type HearingResponse struct {
	MeetingID      string    `json:"meeting_id"`
	AssigneeChatID string    `json:"assignee_chat_id"`
	ReplyTS        string    `json:"reply_ts"`
	TodoStatus     string    `json:"todo_status"`
	Reports        string    `json:"reports"`
	Blockers       string    `json:"blockers"`
	Links          string    `json:"links"`
	RawText        string    `json:"raw_text"`
	CreatedAt      time.Time `json:"created_at"`
}

// HearingPrompt records that a hearing request was posted for a participant,
// so re-runs do not post twice and collectors know which thread to read.
type HearingPrompt struct {
	MeetingID      string    `json:"meeting_id"`
	ChannelID      string    `json:"channel_id"`
	ParentThreadTS string    `json:"parent_thread_ts"`
	AssigneeChatID string    `json:"assignee_chat_id"`
	PromptTS       string    `json:"prompt_ts"`
	DueToReply     string    `json:"due_to_reply"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
