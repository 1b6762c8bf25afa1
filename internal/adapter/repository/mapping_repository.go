package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-autopilot/internal/domain/repositories"
)

type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository creates a new mapping repository backed by GORM
func NewMappingRepository(db *gorm.DB) repo.MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) SaveEmailMapping(ctx context.Context, m *entities.Mapping) error {
	if m == nil || m.Email == "" {
		return errors.New("mapping needs an email")
	}
	q := `INSERT INTO mappings (meeting_key, channel_id, email, chat_user_id, display_name)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (email) DO UPDATE SET chat_user_id = EXCLUDED.chat_user_id, display_name = CASE WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name ELSE mappings.display_name END`
	return r.db.WithContext(ctx).Exec(q, m.MeetingKey, m.ChannelID, m.Email, m.ChatUserID, m.DisplayName).Error
}

func (r *mappingRepository) GetChatIDForEmail(ctx context.Context, email string) (string, error) {
	row := r.db.WithContext(ctx).Raw(`SELECT chat_user_id FROM mappings WHERE email = ? AND chat_user_id <> '' LIMIT 1`, email).Row()
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (r *mappingRepository) GetChannelForMeetingKey(ctx context.Context, meetingKey string) (string, error) {
	row := r.db.WithContext(ctx).Raw(`SELECT channel_id FROM mappings WHERE meeting_key = ? AND channel_id <> '' LIMIT 1`, meetingKey).Row()
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (r *mappingRepository) ListWithDisplayName(ctx context.Context) ([]entities.Mapping, error) {
	rows, err := r.db.WithContext(ctx).Raw(`SELECT meeting_key, channel_id, email, chat_user_id, display_name FROM mappings WHERE display_name <> ''`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.Mapping
	for rows.Next() {
		var m entities.Mapping
		if err := rows.Scan(&m.MeetingKey, &m.ChannelID, &m.Email, &m.ChatUserID, &m.DisplayName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
