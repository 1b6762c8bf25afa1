package entities

import "time"

// Meeting is one ingested instance of a recurring meeting series.
// MeetingID is stable and equals the source document id, so re-running
// ingest on the same document updates the row instead of duplicating it.
type Meeting struct {
	MeetingID         string    `json:"meeting_id"`
	MeetingKey        string    `json:"meeting_key"`
	Date              string    `json:"date"` // YYYY-MM-DD in the configured timezone
	Title             string    `json:"title"`
	DocID             string    `json:"doc_id"`
	ParticipantEmails string    `json:"participant_emails"` // comma-joined
	ChannelID         string    `json:"channel_id"`
	ParentThreadTS    string    `json:"parent_thread_ts"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasParentThread reports whether the retrospective post for this meeting
// has already been made. Once set, ParentThreadTS is never cleared.
func (m *Meeting) HasParentThread() bool {
	return m.ParentThreadTS != ""
}
