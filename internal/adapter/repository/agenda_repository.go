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

type agendaRepository struct {
	db *gorm.DB
}

// NewAgendaRepository creates a new agenda repository backed by GORM
func NewAgendaRepository(db *gorm.DB) repo.AgendaRepository {
	return &agendaRepository{db: db}
}

func (r *agendaRepository) Upsert(ctx context.Context, a *entities.Agenda) error {
	if a == nil {
		return errors.New("agenda cannot be nil")
	}
	q := `INSERT INTO agendas (meeting_id, channel_id, thread_ts, body, posted_ts, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT (meeting_id, thread_ts) DO UPDATE SET channel_id = EXCLUDED.channel_id, body = EXCLUDED.body, posted_ts = EXCLUDED.posted_ts, updated_at = NOW()`
	return r.db.WithContext(ctx).Exec(q, a.MeetingID, a.ChannelID, a.ThreadTS, a.Body, a.PostedTS, time.Now()).Error
}

func (r *agendaRepository) GetForThread(ctx context.Context, meetingID, threadTS string) (*entities.Agenda, error) {
	row := r.db.WithContext(ctx).Raw(`SELECT meeting_id, channel_id, thread_ts, body, posted_ts, created_at FROM agendas WHERE meeting_id = ? AND thread_ts = ? LIMIT 1`, meetingID, threadTS).Row()
	var a entities.Agenda
	if err := row.Scan(&a.MeetingID, &a.ChannelID, &a.ThreadTS, &a.Body, &a.PostedTS, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *agendaRepository) SetPostedTS(ctx context.Context, meetingID, threadTS, postedTS string) error {
	q := `UPDATE agendas SET posted_ts = ?, updated_at = NOW() WHERE meeting_id = ? AND thread_ts = ?`
	return r.db.WithContext(ctx).Exec(q, postedTS, meetingID, threadTS).Error
}
