package container

import (
	"context"
	"fmt"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/infrastructure/cache"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/infrastructure/queue"
	"portfolio-backend/internal/infrastructure/storage"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/pkg/jwt"
	"portfolio-backend/pkg/kvstore"

	blogHandler "portfolio-backend/internal/domains/blog/handler"
	blogRepo "portfolio-backend/internal/domains/blog/repository"
	blogService "portfolio-backend/internal/domains/blog/service"
	bookHandler "portfolio-backend/internal/domains/book/handler"
	bookRepo "portfolio-backend/internal/domains/book/repository"
	bookService "portfolio-backend/internal/domains/book/service"
	contactHandler "portfolio-backend/internal/domains/contact/handler"
	contactRepo "portfolio-backend/internal/domains/contact/repository"
	contactService "portfolio-backend/internal/domains/contact/service"
	dashboardHandler "portfolio-backend/internal/domains/dashboard/handler"
	dashboardService "portfolio-backend/internal/domains/dashboard/service"
	mediaHandler "portfolio-backend/internal/domains/media/handler"
	mediaRepo "portfolio-backend/internal/domains/media/repository"
	mediaService "portfolio-backend/internal/domains/media/service"
	profileHandler "portfolio-backend/internal/domains/profile/handler"
	profileRepo "portfolio-backend/internal/domains/profile/repository"
	profileService "portfolio-backend/internal/domains/profile/service"
	progressHandler "portfolio-backend/internal/domains/progress/handler"
	progressRepo "portfolio-backend/internal/domains/progress/repository"
	progressService "portfolio-backend/internal/domains/progress/service"
	sponsorHandler "portfolio-backend/internal/domains/sponsor/handler"
	sponsorRepo "portfolio-backend/internal/domains/sponsor/repository"
	sponsorService "portfolio-backend/internal/domains/sponsor/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies, dùng chung cho cmd/api và cmd/worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *cache.RedisClient
	KV         kvstore.Store
	Storage    *storage.MinIOStorage
	Queue      *asynq.Client
	JWTManager *jwt.Manager
	Authorizer authz.Authorizer

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	ProfileRepo  profileRepo.Repository
	BookRepo     bookRepo.Repository
	BlogRepo     blogRepo.Repository
	MediaRepo    mediaRepo.Repository
	SponsorRepo  sponsorRepo.Repository
	ContactRepo  contactRepo.Repository
	ProgressRepo progressRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	ProfileService   profileService.ServiceInterface
	BookService      bookService.ServiceInterface
	BookExporter     *bookService.Exporter
	BlogService      blogService.ServiceInterface
	MediaService     mediaService.Service
	SponsorService   sponsorService.ServiceInterface
	ContactService   contactService.ServiceInterface
	ProgressService  progressService.ServiceInterface
	DashboardService dashboardService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	ProfileHandler   *profileHandler.ProfileHandler
	BookHandler      *bookHandler.BookHandler
	BlogHandler      *blogHandler.BlogHandler
	MediaHandler     *mediaHandler.MediaHandler
	SponsorHandler   *sponsorHandler.SponsorHandler
	ContactHandler   *contactHandler.ContactHandler
	ProgressHandler  *progressHandler.ProgressHandler
	DashboardHandler *dashboardHandler.DashboardHandler

	Auth *middleware.Auth
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo theo thứ tự:
// 1. Infrastructure (DB, Redis, MinIO, asynq) - phụ thuộc Config
// 2. Repositories - phụ thuộc Infrastructure
// 3. Services - phụ thuộc Repositories
// 4. Handlers - phụ thuộc Services
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	log.Info().Msg("✅ Repositories initialized")

	c.initServices()
	log.Info().Msg("✅ Services initialized")

	c.initHandlers()
	log.Info().Msg("✅ Handlers initialized")

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// ----------------------------------------
	// POSTGRES
	// ----------------------------------------
	dbConfig := cfg.DBConfig()
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(dbConfig.DSN(), cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// ----------------------------------------
	// REDIS (reading progress, rate limit)
	// ----------------------------------------
	c.Redis = cache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		// Redis lỗi không chặn startup, /api/health sẽ báo degraded
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
	}
	c.KV = c.Redis.KV()

	// ----------------------------------------
	// MINIO
	// ----------------------------------------
	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	// ----------------------------------------
	// ASYNQ CLIENT
	// ----------------------------------------
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	c.Authorizer = authz.NewRoleAuthorizer()
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ProfileRepo = profileRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.BlogRepo = blogRepo.NewPostgresRepository(pool)
	c.MediaRepo = mediaRepo.NewPostgresRepository(pool)
	c.SponsorRepo = sponsorRepo.NewPostgresRepository(pool)
	c.ContactRepo = contactRepo.NewPostgresRepository(pool)
	c.ProgressRepo = progressRepo.NewKVRepository(c.KV, c.Config.Progress.TTL)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, c.Authorizer, cfg.Auth.AdminEmails)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.BookExporter = bookService.NewExporter(c.BookRepo)
	c.BlogService = blogService.NewBlogService(c.BlogRepo)
	c.MediaService = mediaService.NewMediaService(
		c.MediaRepo,
		c.Storage,
		storage.NewImageProcessor(),
		c.Queue,
		cfg.Media.MaxBytes,
	)
	c.SponsorService = sponsorService.NewSponsorService(c.SponsorRepo)
	c.ContactService = contactService.NewContactService(
		c.ContactRepo,
		contactService.NewRateLimiter(c.KV, contactService.RateKeyPrefix, cfg.Contact.RateLimit, cfg.Contact.RateWindow),
	)
	c.ProgressService = progressService.NewProgressService(c.ProgressRepo, c.BookService)
	c.DashboardService = dashboardService.NewDashboardService(dashboardService.Sources{
		Blogs:    c.BlogService,
		Books:    c.BookService,
		Media:    c.MediaService,
		Sponsors: c.SponsorService,
		Contacts: c.ContactService,
	})
}

func (c *Container) initHandlers() {
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.BookExporter)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
	c.SponsorHandler = sponsorHandler.NewSponsorHandler(c.SponsorService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)
	c.ProgressHandler = progressHandler.NewProgressHandler(c.ProgressService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)

	c.Auth = middleware.NewAuth(c.JWTManager, c.ProfileService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("✅ Container cleanup completed")
}
