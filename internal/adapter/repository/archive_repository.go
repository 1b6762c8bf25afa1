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

type archiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository creates a new archive repository backed by GORM
func NewArchiveRepository(db *gorm.DB) repo.ArchiveRepository {
	return &archiveRepository{db: db}
}

func (r *archiveRepository) Upsert(ctx context.Context, a *entities.Archive) error {
	if a == nil {
		return errors.New("archive cannot be nil")
	}
	q := `INSERT INTO archives (meeting_id, date, title, doc_id, object_key, chars, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (meeting_id) DO UPDATE SET date = EXCLUDED.date, title = EXCLUDED.title, doc_id = EXCLUDED.doc_id, object_key = EXCLUDED.object_key, chars = EXCLUDED.chars, updated_at = NOW()`
	return r.db.WithContext(ctx).Exec(q, a.MeetingID, a.Date, a.Title, a.DocID, a.ObjectKey, a.Chars, time.Now()).Error
}

func (r *archiveRepository) GetByMeetingID(ctx context.Context, meetingID string) (*entities.Archive, error) {
	row := r.db.WithContext(ctx).Raw(`SELECT meeting_id, date, title, doc_id, object_key, chars, created_at FROM archives WHERE meeting_id = ? LIMIT 1`, meetingID).Row()
	var a entities.Archive
	if err := row.Scan(&a.MeetingID, &a.Date, &a.Title, &a.DocID, &a.ObjectKey, &a.Chars, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
