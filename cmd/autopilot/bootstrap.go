package main

import (
	"context"
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-autopilot/internal/adapter/repository"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/googleapi"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/slack"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/jobs"
	"github.com/johnquangdev/meeting-autopilot/pkg/ai"
	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	redis    *cache.RedisCache
	calendar *googleapi.CalendarClient
	jobs     jobs.Service
}

// newApp wires configuration, storage and clients into the job service.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	// Redis is an accelerator, not a dependency; run without it if down.
	var chatIDs jobs.ChatIDCache
	redisClient, err := cache.NewRedisCache(cfg)
	if err != nil {
		logger.Warn("redis unavailable, chat id cache disabled", zap.Error(err))
	} else {
		chatIDs = redisClient
	}

	log.Println("🔑 Initializing Google clients...")
	ts, err := googleapi.NewTokenSource(ctx, &cfg.Google)
	if err != nil {
		return nil, err
	}
	docsClient, err := googleapi.NewDocsClient(ctx, ts)
	if err != nil {
		return nil, err
	}
	driveClient, err := googleapi.NewDriveClient(ctx, ts)
	if err != nil {
		return nil, err
	}
	calendarClient, err := googleapi.NewCalendarClient(ctx, ts, cfg.Google.CalendarID, cfg.Google.HolidayCalendarID)
	if err != nil {
		return nil, err
	}

	chatClient := slack.NewClient(&cfg.Slack)
	geminiClient := ai.NewGeminiClient(&cfg.Gemini)

	var snapshots jobs.SnapshotStore
	if cfg.Storage.Endpoint != "" {
		log.Println("🗄  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		snapshots = minioClient
	}

	svc := jobs.NewService(
		repository.NewMeetingRepository(db),
		repository.NewActionItemRepository(db),
		repository.NewHearingRepository(db),
		repository.NewAgendaRepository(db),
		repository.NewMappingRepository(db),
		repository.NewArchiveRepository(db),
		docsClient,
		driveClient,
		chatClient,
		geminiClient,
		calendarClient,
		snapshots,
		chatIDs,
		cfg,
		logger,
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		redis:    redisClient,
		calendar: calendarClient,
		jobs:     svc,
	}, nil
}

// close releases the app's connections.
func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		database.CloseDB(a.db)
	}
	a.logger.Sync()
}
