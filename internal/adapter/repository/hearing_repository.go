package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-autopilot/internal/domain/repositories"
)

type hearingRepository struct {
	db *gorm.DB
}

// NewHearingRepository creates a new hearing repository backed by GORM
func NewHearingRepository(db *gorm.DB) repo.HearingRepository {
	return &hearingRepository{db: db}
}

func (r *hearingRepository) UpsertPrompt(ctx context.Context, p *entities.HearingPrompt) error {
	if p == nil {
		return errors.New("prompt cannot be nil")
	}
	q := `INSERT INTO hearing_prompts (meeting_id, channel_id, parent_thread_ts, assignee_chat_id, prompt_ts, due_to_reply, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (meeting_id, assignee_chat_id) DO UPDATE SET channel_id = EXCLUDED.channel_id, parent_thread_ts = EXCLUDED.parent_thread_ts, prompt_ts = EXCLUDED.prompt_ts, due_to_reply = EXCLUDED.due_to_reply, status = EXCLUDED.status, updated_at = NOW()`
	return r.db.WithContext(ctx).Exec(q, p.MeetingID, p.ChannelID, p.ParentThreadTS, p.AssigneeChatID, p.PromptTS, p.DueToReply, p.Status, time.Now()).Error
}

func (r *hearingRepository) ListPrompts(ctx context.Context, meetingID string) ([]entities.HearingPrompt, error) {
	rows, err := r.db.WithContext(ctx).Raw(`SELECT meeting_id, channel_id, parent_thread_ts, assignee_chat_id, prompt_ts, due_to_reply, status, created_at FROM hearing_prompts WHERE meeting_id = ?`, meetingID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.HearingPrompt
	for rows.Next() {
		var p entities.HearingPrompt
		if err := rows.Scan(&p.MeetingID, &p.ChannelID, &p.ParentThreadTS, &p.AssigneeChatID, &p.PromptTS, &p.DueToReply, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *hearingRepository) UpsertResponse(ctx context.Context, resp *entities.HearingResponse) error {
	if resp == nil {
		return errors.New("response cannot be nil")
	}
	q := `INSERT INTO hearing_responses (meeting_id, assignee_chat_id, reply_ts, todo_status, reports, blockers, links, raw_text, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (meeting_id, assignee_chat_id, reply_ts) DO UPDATE SET todo_status = EXCLUDED.todo_status, reports = EXCLUDED.reports, blockers = EXCLUDED.blockers, links = EXCLUDED.links, raw_text = EXCLUDED.raw_text, updated_at = NOW()`
	return r.db.WithContext(ctx).Exec(q, resp.MeetingID, resp.AssigneeChatID, resp.ReplyTS, resp.TodoStatus, resp.Reports, resp.Blockers, resp.Links, resp.RawText, time.Now()).Error
}

func (r *hearingRepository) ListResponses(ctx context.Context, meetingID string) ([]entities.HearingResponse, error) {
	rows, err := r.db.WithContext(ctx).Raw(`SELECT meeting_id, assignee_chat_id, reply_ts, todo_status, reports, blockers, links, raw_text, created_at FROM hearing_responses WHERE meeting_id = ? ORDER BY created_at, reply_ts`, meetingID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.HearingResponse
	for rows.Next() {
		var resp entities.HearingResponse
		if err := rows.Scan(&resp.MeetingID, &resp.AssigneeChatID, &resp.ReplyTS, &resp.TodoStatus, &resp.Reports, &resp.Blockers, &resp.Links, &resp.RawText, &resp.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}
