package entities

import "time"

// Archive is a flattened-text snapshot of a meeting document. The body
// itself lives in object storage; ObjectKey points at it.
type Archive struct {
	MeetingID string    `json:"meeting_id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	DocID     string    `json:"doc_id"`
	ObjectKey string    `json:"object_key"`
	Chars     int       `json:"chars"`
	CreatedAt time.Time `json:"created_at"`
}
