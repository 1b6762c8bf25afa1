package jobs

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/googleapi"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/extract"
)

// IngestDocument finds the latest meeting document in the notes folder
// and upserts its meeting row. The row id equals the document id, so
// re-runs on the same document update in place.
func (s *pipelineService) IngestDocument(ctx context.Context) error {
	folderID := s.cfg.Google.DriveFolderID
	if folderID == "" {
		return apperrors.ErrMissingConfiguration("drive folder id")
	}

	ref, err := s.searchDocument(ctx, folderID)
	if err != nil {
		return apperrors.ErrDocumentServiceFailed("search", err)
	}
	if ref == nil {
		return apperrors.ErrNotFound("meeting document")
	}

	doc, err := s.docs.FetchDocument(ctx, ref.ID)
	if err != nil {
		return apperrors.ErrDocumentServiceFailed("fetch", err)
	}
	text := extract.FlattenDocument(doc)

	date := s.documentDate(ref.ModifiedTime)
	meeting := &entities.Meeting{
		MeetingID:  ref.ID,
		MeetingKey: s.cfg.Meeting.Key,
		Date:       date,
		Title:      ref.Name,
		DocID:      ref.ID,
	}
	meeting.ParticipantEmails = s.participantsForDate(ctx, date)

	if err := s.meetings.Upsert(ctx, meeting); err != nil {
		return err
	}
	s.logger.Info("ingested meeting document",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("date", meeting.Date),
		zap.String("title", meeting.Title),
		zap.Int("chars", utf8.RuneCountInString(text)))
	return nil
}

// searchDocument tries the configured title filter first, then relaxes
// to any document in the folder when the filter matches nothing.
func (s *pipelineService) searchDocument(ctx context.Context, folderID string) (ref *googleapi.DocRef, err error) {
	if substr := s.cfg.Meeting.TitleContains; substr != "" {
		ref, err = s.drive.SearchLatestDoc(ctx, folderID, substr)
		if err != nil || ref != nil {
			return ref, err
		}
		s.logger.Info("no document matched title filter, relaxing search",
			zap.String("title_contains", substr))
	}
	return s.drive.SearchLatestDoc(ctx, folderID)
}

// documentDate derives the meeting date from the document's modification
// timestamp, rendered in the configured timezone. An unparseable
// timestamp falls back to today.
func (s *pipelineService) documentDate(modifiedTime string) string {
	t, err := time.Parse(time.RFC3339, modifiedTime)
	if err != nil {
		return s.today().Format("2006-01-02")
	}
	return t.In(s.loc).Format("2006-01-02")
}

// participantsForDate asks the calendar for attendees; calendar trouble
// degrades to an empty list rather than failing the ingest.
func (s *pipelineService) participantsForDate(ctx context.Context, date string) string {
	if s.attendees == nil {
		return ""
	}
	emails, err := s.attendees.FetchAttendeesForDate(ctx, date, s.cfg.Meeting.Key)
	if err != nil {
		s.logger.Warn("failed to fetch calendar attendees",
			zap.String("date", date), zap.Error(err))
		return ""
	}
	return strings.Join(emails, ",")
}
