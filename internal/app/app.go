package app

import (
	"context"
	"english_app_backend/internal/config"
	"english_app_backend/internal/controller"
	"english_app_backend/internal/middleware"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"
	"english_app_backend/pkg/configwatcher"
	"english_app_backend/pkg/database"
	"english_app_backend/pkg/events"
	"english_app_backend/pkg/logger"
	"english_app_backend/pkg/monitoring"
	"english_app_backend/pkg/security"
	"english_app_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Events          events.Publisher
	services        *services
	tracer          *sdktrace.TracerProvider
	stop            context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	topic      *repository.TopicRepository
	lesson     *repository.LessonRepository
	vocabulary *repository.VocabularyRepository
	saved      *repository.SavedVocabularyRepository
	progress   *repository.ProgressRepository
	quiz       *repository.QuizRepository
	quizResult *repository.QuizResultRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	topic      *service.TopicService
	lesson     *service.LessonService
	vocabulary *service.VocabularyService
	saved      *service.SavedVocabularyService
	progress   *service.LearningProgressService
	quiz       *service.QuizService
	stats      *service.StatsService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	topic      *controller.TopicController
	lesson     *controller.LessonController
	vocabulary *controller.VocabularyController
	saved      *controller.SavedVocabularyController
	progress   *controller.LearningProgressController
	quiz       *controller.QuizController
	stats      *controller.StatsController
	upload     *controller.UploadController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		topic:      repository.NewTopicRepository(db),
		lesson:     repository.NewLessonRepository(db),
		vocabulary: repository.NewVocabularyRepository(db),
		saved:      repository.NewSavedVocabularyRepository(db),
		progress:   repository.NewProgressRepository(db),
		quiz:       repository.NewQuizRepository(db),
		quizResult: repository.NewQuizResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	var dictionary service.Dictionary
	if cfg.Dictionary.Enabled {
		dictionary = service.NewDictionaryClient(&cfg.Dictionary)
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.topic = service.NewTopicService(repos.topic)
	s.lesson = service.NewLessonService(repos.lesson, repos.topic)
	s.vocabulary = service.NewVocabularyService(repos.vocabulary, repos.lesson, dictionary)
	s.saved = service.NewSavedVocabularyService(repos.saved, repos.vocabulary)
	s.progress = service.NewLearningProgressService(repos.progress, repos.lesson, repos.user, repos.topic, a.Events)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizResult, repos.lesson, repos.user, a.Events, cfg.Grading)
	s.stats = service.NewStatsService(repos.user, repos.topic, repos.lesson, repos.quiz, repos.vocabulary)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		topic:      controller.NewTopicController(s.topic),
		lesson:     controller.NewLessonController(s.lesson),
		vocabulary: controller.NewVocabularyController(s.vocabulary, a.Config.Storage.MaxUploadMB),
		saved:      controller.NewSavedVocabularyController(s.saved),
		progress:   controller.NewLearningProgressController(s.progress),
		quiz:       controller.NewQuizController(s.quiz),
		stats:      controller.NewStatsController(s.stats),
		upload:     controller.NewUploadController(s.storage, a.Config.Storage.MaxUploadMB),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if cfg.RateLimit.MaxRequests > 0 && window > 0 {
		if a.Redis != nil {
			router.Use(security.RedisRateLimiter(a.Redis, cfg.RateLimit.MaxRequests, window))
		} else {
			router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, window))
		}
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires an App around already opened stores.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, publisher events.Publisher) *App {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	ctx, stop := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Events: publisher,
		stop:   stop,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(ctx, router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		app.services.quiz.SetPassThresholdMode(newCfg.Grading.PassThresholdMode)
	})

	return app
}

// NewApp opens every backing store named in cfg. Failures are fatal.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	publisher, err := events.NewPublisher(&cfg.Events)
	if err != nil {
		logger.Log.Error("Event publisher unavailable, events are dropped", zap.Error(err))
		publisher = events.NoopPublisher{}
	}

	app := New(cfg, db, rdb, publisher)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(&cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.File == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.File, func(newCfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.watchConfig(ctx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
}

// Close stops background sweepers and releases the event channel, redis,
// the tracer and the database pool.
func (a *App) Close(ctx context.Context) {
	if a.stop != nil {
		a.stop()
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			logger.Log.Error("Failed to close event publisher", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
