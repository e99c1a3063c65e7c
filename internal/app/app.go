package app

import (
	"context"
	"guruschool_backend/internal/config"
	"guruschool_backend/internal/controller"
	"guruschool_backend/internal/repository"
	"guruschool_backend/internal/service"
	"guruschool_backend/pkg/configwatcher"
	"guruschool_backend/pkg/database"
	"guruschool_backend/pkg/logger"
	"guruschool_backend/pkg/monitoring"
	"guruschool_backend/pkg/security"
	"guruschool_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	profile     *repository.ProfileRepository
	course      *repository.CourseRepository
	module      *repository.ModuleRepository
	lesson      *repository.LessonRepository
	pricing     *repository.PricingRepository
	discount    *repository.DiscountRepository
	enrollment  *repository.EnrollmentRepository
	application *repository.ApplicationRepository
	invite      *repository.InviteRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	course     *service.CourseService
	enrollment *service.EnrollmentService
	admin      *service.AdminService
	profile    *service.ProfileService
	teacher    *service.TeacherService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	enrollment *controller.EnrollmentController
	admin      *controller.AdminController
	profile    *controller.ProfileController
	teacher    *controller.TeacherController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		profile:     repository.NewProfileRepository(db),
		course:      repository.NewCourseRepository(db),
		module:      repository.NewModuleRepository(db),
		lesson:      repository.NewLessonRepository(db),
		pricing:     repository.NewPricingRepository(db),
		discount:    repository.NewDiscountRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		application: repository.NewApplicationRepository(db),
		invite:      repository.NewInviteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	storage := service.NewStorageService(cfg)
	return &services{
		auth:       service.NewAuthService(repos.profile, repos.invite, repos.application, cfg),
		storage:    storage,
		course:     service.NewCourseService(repos.course, repos.module, repos.lesson, storage, rdb),
		enrollment: service.NewEnrollmentService(repos.course, repos.pricing, repos.discount, repos.enrollment),
		admin:      service.NewAdminService(repos.profile, repos.application, repos.pricing, repos.discount, repos.invite, repos.course, cfg),
		profile:    service.NewProfileService(repos.profile),
		teacher:    service.NewTeacherService(repos.course, repos.enrollment),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.profile),
		course:     controller.NewCourseController(s.course, s.enrollment),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		admin:      controller.NewAdminController(s.admin),
		profile:    controller.NewProfileController(s.profile),
		teacher:    controller.NewTeacherController(s.teacher),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// RegisterConfigCallback adds a hook invoked after every hot reload.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) watchConfig(configPath string) {
	go configwatcher.WatchConfig(configPath, func(cfg *config.Config) {
		a.Config = cfg
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
		logger.Log.Info("configuration reloaded")
	})
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The course cache is an optimization, not a dependency.
		logger.Log.Warn("Redis unavailable, course cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("course-marketplace", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos.profile, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	if configPath != "" {
		app.watchConfig(configPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
