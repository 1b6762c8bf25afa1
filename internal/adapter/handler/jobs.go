package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/jobs"
	"github.com/johnquangdev/meeting-autopilot/pkg/jobcontext"
)

// Jobs exposes the pipeline jobs over HTTP for external schedulers.
// One POST runs one job synchronously; the response reports how it went.
type Jobs struct {
	svc    jobs.Service
	logger *zap.Logger

	mu      sync.Mutex
	running map[string]bool
}

// NewJobsHandler creates the job trigger handler
func NewJobsHandler(svc jobs.Service, logger *zap.Logger) *Jobs {
	return &Jobs{
		svc:     svc,
		logger:  logger,
		running: map[string]bool{},
	}
}

// jobFuncs maps trigger names to service methods. Names match the CLI
// subcommands, so a scheduler config works for either entry point.
func (h *Jobs) jobFuncs() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"ingest_doc":           h.svc.IngestDocument,
		"extract_actions":      h.svc.ExtractActions,
		"extract_doc_sections": h.svc.ExtractDocSections,
		"post_retrospective":   h.svc.PostRetrospective,
		"post_hearing":         h.svc.PostHearing,
		"collect_replies":      h.svc.CollectReplies,
		"build_agenda":         h.svc.BuildAgenda,
		"build_agenda_llm":     h.svc.BuildAgendaLLM,
		"post_agenda":          h.svc.PostAgenda,
		"archive_notes":        h.svc.ArchiveNotes,
	}
}

// Trigger handles POST /v1/jobs/:name
func (h *Jobs) Trigger(c echo.Context) error {
	name := c.Param("name")
	jobFunc, ok := h.jobFuncs()[name]
	if !ok {
		return respondAppError(c, apperrors.ErrJobUnknown(name))
	}

	if !h.tryAcquire(name) {
		return respondAppError(c, apperrors.ErrJobAlreadyRunning(name))
	}
	defer h.release(name)

	ctx, cancel := jobcontext.JobBegin(c.Request().Context(), name)
	defer cancel()

	start := time.Now()
	err := jobcontext.Run(ctx, jobFunc)
	elapsed := time.Since(start)

	meta := jobcontext.GetRunMetadata(ctx)
	runID := ""
	if meta != nil {
		runID = meta.RunID.String()
	}

	if err != nil {
		h.logger.Error("job failed",
			zap.String("job", name),
			zap.String("run_id", runID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return respondAppError(c, err)
	}

	h.logger.Info("job finished",
		zap.String("job", name),
		zap.String("run_id", runID),
		zap.Duration("elapsed", elapsed))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"job":        name,
		"run_id":     runID,
		"elapsed_ms": elapsed.Milliseconds(),
	})
}

// tryAcquire marks a job as running; false when a run is in flight.
func (h *Jobs) tryAcquire(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running[name] {
		return false
	}
	h.running[name] = true
	return true
}

func (h *Jobs) release(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.running, name)
}
