package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/db"
	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/observability"
	"github.com/luminalearn/lumina-backend/internal/server"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	clients      Clients
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     os.Getenv("SERVICE_VERSION"),
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	clientset, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(theDB, log, reposet, clientset)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)

	// Only the local media backend needs static serving; GCS URLs are absolute.
	mediaDir := ""
	if strings.TrimSpace(strings.ToLower(os.Getenv("MEDIA_STORAGE_MODE"))) != "gcs" {
		mediaDir = services.MediaDir()
	}

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:          cfg.AllowOrigins,
		ServiceName:           cfg.ServiceName,
		MediaDir:              mediaDir,
		CourseHandler:         handlerset.Course,
		LessonHandler:         handlerset.Lesson,
		AdaptationHandler:     handlerset.Adaptation,
		SocraticHandler:       handlerset.Socratic,
		RecommendationHandler: handlerset.Recommendation,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		clients:      clientset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		a.otelShutdown(ctx)
		cancel()
		a.otelShutdown = nil
	}
	if a.clients.ContentCache != nil {
		if err := a.clients.ContentCache.Close(); err != nil {
			a.Log.Warn("redis close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
