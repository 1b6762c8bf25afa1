package entities

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"
)

const (
	ActionItemStatusPending = "pending"
	ActionItemStatusDone    = "done"
)

// ActionItem is one task extracted from a meeting document.
type ActionItem struct {
	Date           string    `json:"date"`
	MeetingID      string    `json:"meeting_id"`
	Task           string    `json:"task"`
	AssigneeEmail  string    `json:"assignee_email"`
	AssigneeChatID string    `json:"assignee_chat_id"`
	Due            string    `json:"due"`   // ISO date or empty
	Links          string    `json:"links"` // comma-joined URLs
	Status         string    `json:"status"`
	DedupeKey      string    `json:"dedupe_key"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewActionItem builds a pending item with its dedupe key filled in.
func NewActionItem(date, meetingID, task, assigneeEmail string) *ActionItem {
	it := &ActionItem{
		Date:          date,
		MeetingID:     meetingID,
		Task:          task,
		AssigneeEmail: strings.ToLower(assigneeEmail),
		Status:        ActionItemStatusPending,
	}
	it.DedupeKey = ItemDedupeKey(date, it.AssigneeEmail, task)
	return it
}

// IsOpen reports whether the item still needs attention. Rows written by
// older revisions may carry an empty status; treat those as pending.
func (it *ActionItem) IsOpen() bool {
	return it.Status != ActionItemStatusDone
}

// ItemDedupeKey derives the stable upsert key for an action item:
// date, assignee and a short hash of the normalized task text. The same
// extraction re-run on unchanged input always produces the same key; an
// edited task text produces a new one.
func ItemDedupeKey(date, assigneeEmail, task string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(task))))
	return date + ":" + strings.ToLower(assigneeEmail) + ":" + hex.EncodeToString(sum[:])[:10]
}
