package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-autopilot/internal/domain/repositories"
)

type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository backed by GORM
func NewActionItemRepository(db *gorm.DB) repo.ActionItemRepository {
	return &actionItemRepository{db: db}
}

func (r *actionItemRepository) Upsert(ctx context.Context, it *entities.ActionItem) error {
	if it == nil {
		return errors.New("item cannot be nil")
	}
	if it.DedupeKey == "" {
		it.DedupeKey = entities.ItemDedupeKey(it.Date, it.AssigneeEmail, it.Task)
	}
	q := `INSERT INTO action_items (dedupe_key, date, meeting_id, task, assignee_email, assignee_chat_id, due, links, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (dedupe_key) DO UPDATE SET assignee_chat_id = EXCLUDED.assignee_chat_id, due = EXCLUDED.due, links = EXCLUDED.links, status = EXCLUDED.status, updated_at = NOW()`
	return r.db.WithContext(ctx).Exec(q, it.DedupeKey, it.Date, it.MeetingID, it.Task, it.AssigneeEmail, it.AssigneeChatID, it.Due, it.Links, it.Status, time.Now()).Error
}

func (r *actionItemRepository) ListForMeeting(ctx context.Context, meetingID string) ([]entities.ActionItem, error) {
	rows, err := r.db.WithContext(ctx).Raw(`SELECT dedupe_key, date, meeting_id, task, assignee_email, assignee_chat_id, due, links, status, created_at FROM action_items WHERE meeting_id = ? ORDER BY created_at, dedupe_key`, meetingID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.ActionItem
	for rows.Next() {
		var it entities.ActionItem
		if err := rows.Scan(&it.DedupeKey, &it.Date, &it.MeetingID, &it.Task, &it.AssigneeEmail, &it.AssigneeChatID, &it.Due, &it.Links, &it.Status, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
