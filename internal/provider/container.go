package provider

import (
	"github.com/commerce-next/internal/authz"
	"github.com/commerce-next/internal/cache"
	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/queue"
	"github.com/commerce-next/internal/repository"
	"github.com/commerce-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	UserInfoRepo     repository.UserInfoRepository
	ProductRepo      repository.ProductRepository
	OrderRepo        repository.OrderRepository
	ReviewRepo       repository.ReviewRepository
	CouponRepo       repository.CouponRepository
	UsersCouponRepo  repository.UsersCouponRepository
	PayMoneyRepo     repository.PayMoneyRepository
	PointHistoryRepo repository.PointHistoryRepository
	GradeJobRunRepo  repository.GradeJobRunRepository

	// Services
	AuthzService      *authz.Service
	UserAuthService   *service.UserAuthService
	UploadService     *service.UploadService
	ProductService    *service.ProductService
	ReviewService     *service.ReviewService
	UserCouponService *service.UserCouponService
	ChargeService     *service.ChargeService
	GradeService      *service.GradeService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.UserInfoRepo = repository.NewUserInfoRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.UsersCouponRepo = repository.NewUsersCouponRepository(db)
	c.PayMoneyRepo = repository.NewPayMoneyRepository(db)
	c.PointHistoryRepo = repository.NewPointHistoryRepository(db)
	c.GradeJobRunRepo = repository.NewGradeJobRunRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
	} else {
		c.AuthzService = authzService
	}

	c.UploadService = service.NewUploadService(c.Config)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.UserInfoRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.UploadService)
	c.ReviewService = service.NewReviewService(
		c.Config,
		c.UserRepo,
		c.UserInfoRepo,
		c.OrderRepo,
		c.ProductRepo,
		c.ReviewRepo,
		c.PayMoneyRepo,
		c.PointHistoryRepo,
		c.UploadService,
	)
	c.UserCouponService = service.NewUserCouponService(c.Config, c.UserRepo, c.CouponRepo, c.UsersCouponRepo)
	c.ChargeService = service.NewChargeService(c.UserRepo, c.PayMoneyRepo, c.PointHistoryRepo)
	c.GradeService = service.NewGradeService(c.Config, c.UserRepo, c.UserInfoRepo, c.OrderRepo, c.GradeJobRunRepo)
}
