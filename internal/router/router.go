package router

import (
	"fmt"
	"strings"

	"github.com/commerce-next/internal/cache"
	"github.com/commerce-next/internal/config"
	"github.com/commerce-next/internal/constants"
	publichandlers "github.com/commerce-next/internal/http/handlers/public"
	"github.com/commerce-next/internal/logger"
	"github.com/commerce-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/products/:id/reviews", publicHandler.ListProductReviews)
			public.GET("/coupons", publicHandler.ListCoupons)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		user.Use(UserRBACMiddleware(c.AuthzService))
		{
			user.GET("/me", publicHandler.GetMyProfile)

			user.POST("/reviews", publicHandler.CreateReview)
			user.DELETE("/reviews/:id", publicHandler.DeleteReview)

			user.POST("/coupons/issue", publicHandler.IssueCoupon)
			user.POST("/coupons/use", publicHandler.UseCoupon)
			user.GET("/coupons/mine", publicHandler.ListMyCoupons)

			user.POST("/wallet/charge", publicHandler.ChargeWallet)
			user.GET("/wallet/balance", publicHandler.GetMyBalance)
			user.GET("/wallet/points", publicHandler.GetMyPointHistory)

			user.POST("/products", publicHandler.CreateProduct)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
