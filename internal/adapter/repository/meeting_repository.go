package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-autopilot/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Upsert(ctx context.Context, m *entities.Meeting) error {
	if m == nil {
		return errors.New("meeting cannot be nil")
	}
	q := `INSERT INTO meetings (meeting_id, meeting_key, date, title, doc_id, participant_emails, channel_id, parent_thread_ts, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (meeting_id) DO UPDATE SET meeting_key = EXCLUDED.meeting_key, date = EXCLUDED.date, title = EXCLUDED.title, doc_id = EXCLUDED.doc_id, participant_emails = EXCLUDED.participant_emails, channel_id = EXCLUDED.channel_id, updated_at = NOW()`
	return r.db.WithContext(ctx).Exec(q, m.MeetingID, m.MeetingKey, m.Date, m.Title, m.DocID, m.ParticipantEmails, m.ChannelID, m.ParentThreadTS, time.Now()).Error
}

func (r *meetingRepository) GetByID(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	return r.one(ctx, `SELECT meeting_id, meeting_key, date, title, doc_id, participant_emails, channel_id, parent_thread_ts, created_at FROM meetings WHERE meeting_id = ? LIMIT 1`, meetingID)
}

func (r *meetingRepository) GetLatestForKey(ctx context.Context, meetingKey string) (*entities.Meeting, error) {
	return r.one(ctx, `SELECT meeting_id, meeting_key, date, title, doc_id, participant_emails, channel_id, parent_thread_ts, created_at FROM meetings WHERE meeting_key = ? ORDER BY date DESC LIMIT 1`, meetingKey)
}

func (r *meetingRepository) FindByTitleContains(ctx context.Context, substr, meetingKey string) (*entities.Meeting, error) {
	if substr == "" {
		return nil, nil
	}
	return r.one(ctx, `SELECT meeting_id, meeting_key, date, title, doc_id, participant_emails, channel_id, parent_thread_ts, created_at FROM meetings WHERE meeting_key = ? AND title LIKE ? ORDER BY date DESC, title DESC LIMIT 1`, meetingKey, "%"+substr+"%")
}

func (r *meetingRepository) GetPreviousBefore(ctx context.Context, meetingKey, date string) (*entities.Meeting, error) {
	return r.one(ctx, `SELECT meeting_id, meeting_key, date, title, doc_id, participant_emails, channel_id, parent_thread_ts, created_at FROM meetings WHERE meeting_key = ? AND date < ? ORDER BY date DESC LIMIT 1`, meetingKey, date)
}

func (r *meetingRepository) SetParentThreadTS(ctx context.Context, meetingID, ts string) error {
	// Guarded so a late re-run can never clear or replace the anchor.
	q := `UPDATE meetings SET parent_thread_ts = ?, updated_at = NOW() WHERE meeting_id = ? AND (parent_thread_ts = '' OR parent_thread_ts IS NULL OR parent_thread_ts = ?)`
	return r.db.WithContext(ctx).Exec(q, ts, meetingID, ts).Error
}

func (r *meetingRepository) LatestParentThread(ctx context.Context) (*entities.Meeting, error) {
	return r.one(ctx, `SELECT meeting_id, meeting_key, date, title, doc_id, participant_emails, channel_id, parent_thread_ts, created_at FROM meetings WHERE parent_thread_ts <> '' ORDER BY date DESC LIMIT 1`)
}

func (r *meetingRepository) one(ctx context.Context, query string, args ...interface{}) (*entities.Meeting, error) {
	row := r.db.WithContext(ctx).Raw(query, args...).Row()
	var m entities.Meeting
	if err := row.Scan(&m.MeetingID, &m.MeetingKey, &m.Date, &m.Title, &m.DocID, &m.ParticipantEmails, &m.ChannelID, &m.ParentThreadTS, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
