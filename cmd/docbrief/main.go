package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/internal/ai"
	"github.com/docbrief/docbrief/internal/config"
	"github.com/docbrief/docbrief/internal/db"
	"github.com/docbrief/docbrief/internal/filestore"
	"github.com/docbrief/docbrief/internal/handler"
	"github.com/docbrief/docbrief/internal/job"
	"github.com/docbrief/docbrief/internal/middleware"
	"github.com/docbrief/docbrief/internal/repo"
	"github.com/docbrief/docbrief/internal/schedule"
	"github.com/docbrief/docbrief/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "docbrief",
		Short: "docbrief document summarization server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run docbrief server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Generators))
	for _, gen := range cfg.Generators {
		provider, err := ai.NewProvider(gen.Provider, gen.Data)
		if err != nil {
			return nil, fmt.Errorf("init ai provider %s: %w", gen.Provider, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      gen.Provider,
			Generator: ai.NewGenerator(provider, gen.Model),
		})
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return ai.NewGroupGenerator(entries), nil
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.Int("ai_generators", len(cfg.AI.Generators)),
	)

	userRepo := repo.NewUserRepo(database)
	docRepo := repo.NewDocumentRepo(database)
	qaRepo := repo.NewQARepo(database)

	gen, err := buildGenerator(cfg.AI)
	if err != nil {
		return err
	}
	gateway := ai.NewGateway(gen, ai.WithTimeout(time.Duration(cfg.AI.TimeoutSeconds)*time.Second))
	summarizer := service.NewSummarizer(gateway,
		service.WithChunkDelay(time.Duration(cfg.Pipeline.ChunkDelayMS)*time.Millisecond),
		service.WithAbortOnChunkFailure(cfg.Pipeline.OnChunkFailure == "abort"),
	)
	qaPipeline := service.NewQAPipeline(gateway)
	aiService := service.NewAIService(summarizer, qaPipeline, cfg.AI.MaxInputChars)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, time.Hour*time.Duration(cfg.JWTTTLHours))
	documentService := service.NewDocumentService(docRepo, qaRepo, aiService, store)

	deps := handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService),
		Documents:   handler.NewDocumentHandler(documentService),
		Files:       handler.NewFileHandler(documentService),
		AI:          handler.NewAIHandler(documentService),
		JWTSecret:   []byte(cfg.JWTSecret),
		AskInterval: 2 * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	backfill := job.NewSummaryBackfillJob(documentService, cfg.Jobs.SummaryBackfillDelay)
	if err := scheduler.AddJob(backfill, cfg.Jobs.SummaryBackfillSpec); err != nil {
		return fmt.Errorf("schedule summary backfill: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
