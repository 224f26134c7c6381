package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/config"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/api/handler"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/api/middleware"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/jwt"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// public letter verification, reached through the printed QR code
		v1.GET("/verify/:token", middleware.RateLimit(rdb, 30, time.Minute), h.Letter.Verify)

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// accounts
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.Me)
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.User.List)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.Create)
				users.GET("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Get)
				users.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Delete)
				users.PUT("/:id/password", middleware.RoleAuth(model.RoleAdmin), h.User.ResetPassword)
			}

			// recurring schedule
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/mine", h.Schedule.ListMine)
				schedules.GET("/today", h.Schedule.Today)
				schedules.GET("", middleware.RoleAuth(model.RoleAdmin), h.Schedule.List)
				schedules.POST("", middleware.RoleAuth(model.RoleAdmin), h.Schedule.Create)
				schedules.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Schedule.Update)
				schedules.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Schedule.Delete)
			}

			// swap workflow
			swaps := authorized.Group("/swaps")
			{
				swaps.POST("", h.Swap.Create)
				swaps.GET("/mine", h.Swap.ListMine)
				swaps.GET("", middleware.RoleAuth(model.RoleAdmin), h.Swap.List)
				swaps.GET("/:id", h.Swap.Get)
				swaps.POST("/:id/respond", h.Swap.Respond)
				swaps.POST("/:id/cancel", h.Swap.Cancel)
				swaps.POST("/:id/approve", middleware.RoleAuth(model.RoleAdmin), h.Swap.Approve)
				swaps.POST("/:id/reject", middleware.RoleAuth(model.RoleAdmin), h.Swap.Reject)
			}

			// attendance
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/check-in", h.Attendance.CheckIn)
				attendance.POST("/check-out", h.Attendance.CheckOut)
				attendance.GET("/mine/today", h.Attendance.ListMineToday)
				attendance.GET("", middleware.RoleAuth(model.RoleAdmin), h.Attendance.List)
			}

			// global settings
			settings := authorized.Group("/settings")
			{
				settings.GET("", h.Setting.Get)
				settings.PUT("", middleware.RoleAuth(model.RoleAdmin), h.Setting.Update)
			}

			// letter templates
			templates := authorized.Group("/letter-templates")
			templates.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				templates.GET("", h.Letter.ListTemplates)
				templates.POST("", h.Letter.CreateTemplate)
				templates.PUT("/:id", h.Letter.UpdateTemplate)
				templates.DELETE("/:id", h.Letter.DeleteTemplate)
			}

			// outgoing letters
			letters := authorized.Group("/letters")
			letters.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				letters.GET("", h.Letter.List)
				letters.POST("", h.Letter.Create)
				letters.GET("/:id", h.Letter.Get)
				letters.PUT("/:id", h.Letter.Update)
				letters.POST("/:id/approve", h.Letter.Approve)
				letters.POST("/:id/send", h.Letter.Send)
				letters.GET("/:id/qr", h.Letter.QRCode)
			}

			// downloads
			export := authorized.Group("/export")
			{
				export.GET("/attendance-recap", h.Export.AttendanceRecap)
				export.GET("/schedule.ics", h.Export.ScheduleICS)
			}
		}
	}

	return r
}
