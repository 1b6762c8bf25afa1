package jobs

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/extract"
)

// ArchiveNotes snapshots the meeting document's flattened text into
// object storage and records the pointer row. Re-runs overwrite the same
// object and row, so the archive always reflects the latest text.
func (s *pipelineService) ArchiveNotes(ctx context.Context) error {
	meeting, err := s.findMeeting(ctx)
	if err != nil {
		return err
	}
	if meeting.DocID == "" {
		return apperrors.ErrMissingConfiguration("meeting document id")
	}
	doc, err := s.docs.FetchDocument(ctx, meeting.DocID)
	if err != nil {
		return apperrors.ErrDocumentServiceFailed("fetch", err)
	}
	text := extract.FlattenDocument(doc)

	objectKey := storage.SnapshotKey(meeting.MeetingKey, meeting.Date, meeting.MeetingID)
	if err := s.snapshots.PutSnapshot(ctx, objectKey, text); err != nil {
		return apperrors.ErrStorageFailed("put snapshot", err)
	}

	archive := &entities.Archive{
		MeetingID: meeting.MeetingID,
		Date:      meeting.Date,
		Title:     meeting.Title,
		DocID:     meeting.DocID,
		ObjectKey: objectKey,
		Chars:     utf8.RuneCountInString(text),
	}
	if err := s.archives.Upsert(ctx, archive); err != nil {
		return err
	}
	s.logger.Info("archived meeting notes",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("object_key", objectKey),
		zap.Int("chars", archive.Chars))
	return nil
}
