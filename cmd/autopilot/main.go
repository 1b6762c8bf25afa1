package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-autopilot/internal/adapter/handler"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-autopilot/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-autopilot/pkg/businessday"
	"github.com/johnquangdev/meeting-autopilot/pkg/config"
	"github.com/johnquangdev/meeting-autopilot/pkg/jobcontext"
	"github.com/johnquangdev/meeting-autopilot/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-autopilot/pkg/validator"
)

var businessDaysOnly bool

func main() {
	root := &cobra.Command{
		Use:           "autopilot",
		Short:         "Meeting operations pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	jobCmds := []struct {
		name  string
		short string
	}{
		{"ingest_doc", "Find the latest meeting document and record the meeting"},
		{"extract_actions", "Extract free-form task lines from the meeting document"},
		{"extract_doc_sections", "Extract per-person sections from the meeting document"},
		{"post_retrospective", "Post the thread-anchoring retrospective message"},
		{"post_hearing", "Post the hearing request into the meeting thread"},
		{"collect_replies", "Collect and parse hearing replies from the thread"},
		{"build_agenda", "Build the combined agenda from items and replies"},
		{"build_agenda_llm", "Build the agenda with the generative model"},
		{"post_agenda", "Post the built agenda into the meeting thread"},
		{"archive_notes", "Snapshot the meeting document into object storage"},
	}
	for _, jc := range jobCmds {
		name := jc.name
		cmd := &cobra.Command{
			Use:   name,
			Short: jc.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJob(cmd.Context(), name)
			},
		}
		cmd.Flags().BoolVar(&businessDaysOnly, "business-days-only", false,
			"skip the run on weekends and holidays")
		root.AddCommand(cmd)
	}

	root.AddCommand(serveCmd(), migrateCmd(), tokenCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// runJob bootstraps the app and executes one pipeline job.
func runJob(ctx context.Context, name string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if businessDaysOnly {
		loc, _ := time.LoadLocation(a.cfg.Meeting.Timezone)
		if loc == nil {
			loc = time.UTC
		}
		cal := businessday.New(a.calendar, loc)
		switch kind := cal.Classify(ctx, time.Now().In(loc)); kind {
		case businessday.KindWeekend, businessday.KindHoliday:
			a.logger.Info("not a business day, skipping run",
				zap.String("job", name), zap.Stringer("kind", kind))
			return nil
		case businessday.KindUnknown:
			a.logger.Warn("holiday lookup failed, assuming business day",
				zap.String("job", name))
		}
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, name)
	defer cancel()
	return jobcontext.Run(jobCtx, jobFunc(a, name))
}

func jobFunc(a *app, name string) func(context.Context) error {
	switch name {
	case "ingest_doc":
		return a.jobs.IngestDocument
	case "extract_actions":
		return a.jobs.ExtractActions
	case "extract_doc_sections":
		return a.jobs.ExtractDocSections
	case "post_retrospective":
		return a.jobs.PostRetrospective
	case "post_hearing":
		return a.jobs.PostHearing
	case "collect_replies":
		return a.jobs.CollectReplies
	case "build_agenda":
		return a.jobs.BuildAgenda
	case "build_agenda_llm":
		return a.jobs.BuildAgendaLLM
	case "post_agenda":
		return a.jobs.PostAgenda
	case "archive_notes":
		return a.jobs.ArchiveNotes
	}
	return func(context.Context) error {
		return fmt.Errorf("unknown job %q", name)
	}
}

// serveCmd runs the HTTP trigger server for external schedulers.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP trigger server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			e := echo.New()
			e.Validator = pkgvalidator.New()
			e.HideBanner = true
			e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
				Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
			}))
			e.Use(echomw.Recover())

			var authmw *httpmw.TriggerAuth
			if a.cfg.JWT.Secret != "" {
				manager := jwt.NewManager(a.cfg.JWT.Secret, a.cfg.JWT.Expiry)
				authmw = httpmw.NewTriggerAuth(manager)
			} else {
				log.Println("⚠️  JWT_TRIGGER_SECRET not set, trigger endpoints are unauthenticated")
			}

			jobsHandler := handler.NewJobsHandler(a.jobs, a.logger)
			handler.NewRouter(a.cfg, jobsHandler, authmw).Setup(e)

			go func() {
				addr := fmt.Sprintf("%s:%s", a.cfg.Server.Host, a.cfg.Server.Port)
				log.Printf("🚀 Starting trigger server on %s", addr)
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()

			<-cmd.Context().Done()
			log.Println("🛑 Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Println("✅ Server stopped gracefully")
			return nil
		},
	}
}

// migrateCmd applies pending SQL migrations. It only needs the
// database, so it skips the full bootstrap.
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)
			return database.AutoMigrate(db)
		},
	}
}

// tokenCmd mints a trigger token for schedulers calling the HTTP server.
func tokenCmd() *cobra.Command {
	var jobName string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a trigger token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_TRIGGER_SECRET is required to mint tokens")
			}
			manager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
			token, err := manager.GenerateTriggerToken(jobName)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobName, "job", "scheduler", "job name to embed in the token")
	return cmd
}
