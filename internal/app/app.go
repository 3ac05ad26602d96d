package app

import (
	"context"
	"exam_coach_backend/internal/config"
	"exam_coach_backend/internal/controller"
	"exam_coach_backend/internal/repository"
	"exam_coach_backend/internal/service"
	"exam_coach_backend/pkg/configwatcher"
	"exam_coach_backend/pkg/database"
	"exam_coach_backend/pkg/logger"
	"exam_coach_backend/pkg/monitoring"
	"exam_coach_backend/pkg/security"
	"exam_coach_backend/pkg/tracing"
	"io"
	"log"
	"net/http"
	"os"
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
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	tracer   *sdktrace.TracerProvider
	services *services
}

type repositories struct {
	paper          *repository.ExamPaperRepository
	attempt        *repository.ExamAttemptRepository
	gap            *repository.LearningGapRepository
	task           *repository.DailyTaskRepository
	action         *repository.UserActionRepository
	knowledgePoint *repository.KnowledgePointRepository
}

type services struct {
	ai             *service.AIService
	content        *service.ContentGenerator
	paper          *service.ExamPaperService
	attempt        *service.ExamAttemptService
	gap            *service.LearningGapService
	errorOption    *service.ErrorOptionService
	plan           *service.PlanService
	dailyTask      *service.DailyTaskService
	knowledgePoint *service.KnowledgePointService
}

type controllers struct {
	paper          *controller.ExamPaperController
	attempt        *controller.ExamAttemptController
	gap            *controller.LearningGapController
	plan           *controller.PlanController
	dailyTask      *controller.DailyTaskController
	knowledgePoint *controller.KnowledgePointController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		paper:          repository.NewExamPaperRepository(db),
		attempt:        repository.NewExamAttemptRepository(db),
		gap:            repository.NewLearningGapRepository(db),
		task:           repository.NewDailyTaskRepository(db),
		action:         repository.NewUserActionRepository(db),
		knowledgePoint: repository.NewKnowledgePointRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	provider, err := service.NewLLMProvider(context.Background(), cfg.AI)
	if err != nil {
		// AI 是可选能力，初始化失败时退化为规则模板
		logger.Log.Warn("AI provider 初始化失败，使用规则模板", zap.String("provider", cfg.AI.Provider), zap.Error(err))
		provider = nil
	}
	s.ai = service.NewAIService(provider, cfg.AI.Timeout())

	var suggester service.ContentSuggester = s.ai
	suggester = service.NewCachedSuggester(suggester, rdb, cfg.AI.CacheTTL())
	s.content = service.NewContentGenerator(suggester)

	loc := cfg.Server.Location()
	s.paper = service.NewExamPaperService(repos.paper)
	s.attempt = service.NewExamAttemptService(repos.paper, repos.attempt)
	s.gap = service.NewLearningGapService(repos.gap, repos.attempt, repos.paper, repos.action)
	s.errorOption = service.NewErrorOptionService(repos.paper, repos.knowledgePoint, s.ai)
	s.plan = service.NewPlanService(repos.gap, repos.task, s.content, cfg.AI.MaxConcurrency, loc)
	s.dailyTask = service.NewDailyTaskService(repos.task, repos.action, loc)
	s.knowledgePoint = service.NewKnowledgePointService(repos.knowledgePoint)

	logger.Log.Info("Services initialized", zap.Bool("aiEnabled", s.content.AIAvailable()))
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		paper:          controller.NewExamPaperController(s.paper),
		attempt:        controller.NewExamAttemptController(s.attempt),
		gap:            controller.NewLearningGapController(s.gap, s.errorOption),
		plan:           controller.NewPlanController(s.plan),
		dailyTask:      controller.NewDailyTaskController(s.dailyTask),
		knowledgePoint: controller.NewKnowledgePointController(s.knowledgePoint),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiterFromConfig(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{Config: cfg, DB: db}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 只用于内容缓存，不可用时继续启动
		logger.Log.Warn("Failed to initialize redis, content cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("exam-coach-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	ctrls := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	return app
}

// reloadAI 配置文件变化时只热更新 AI 配置，其余配置需要重启生效
func (a *App) reloadAI(cfg *config.Config) {
	provider, err := service.NewLLMProvider(context.Background(), cfg.AI)
	if err != nil {
		logger.Log.Warn("AI provider 重新加载失败，保留原配置", zap.String("provider", cfg.AI.Provider), zap.Error(err))
		return
	}
	old := a.services.ai.Reload(provider, cfg.AI.Timeout())
	logger.Log.Info("AI provider reloaded", zap.String("provider", cfg.AI.Provider), zap.Bool("aiEnabled", provider != nil))

	// 等待使用旧 provider 的请求超时后再关闭
	time.AfterFunc(cfg.AI.Timeout(), func() { closeProvider(old) })
}

func closeProvider(p service.LLMProvider) {
	if c, ok := p.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Log.Warn("Failed to close ai provider", zap.Error(err))
		}
	}
}

func (a *App) Run() {
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.WatchConfig && a.Config.ConfigDir != "" {
		if err := configwatcher.Watch(watchCtx, a.Config.ConfigDir, a.reloadAI); err != nil {
			logger.Log.Warn("Failed to watch config", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.shutdown(ctx)
	logger.Log.Info("Server exiting")
}

func (a *App) shutdown(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.services != nil {
		closeProvider(a.services.ai.Reload(nil, 0))
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
