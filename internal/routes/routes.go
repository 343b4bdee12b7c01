package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rushikeshdhande/Library-Management-System/internal/config"
	"github.com/rushikeshdhande/Library-Management-System/internal/email"
	"github.com/rushikeshdhande/Library-Management-System/internal/handlers"
	"github.com/rushikeshdhande/Library-Management-System/internal/middleware"
	"github.com/rushikeshdhande/Library-Management-System/internal/service"
	"github.com/rushikeshdhande/Library-Management-System/internal/store"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, log *zap.Logger) {
	router.Use(corsMiddleware(cfg.FrontendURL))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "library-management-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := store.NewGormUserStore(db)
	borrows := store.NewGormBorrowStore(db)

	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		From:     cfg.SmtpFrom,
	})

	authSvc := service.NewAuthService(users, mailer, service.Config{
		FrontendURL: cfg.FrontendURL,
		OTPWindow:   time.Duration(cfg.OtpMinutes) * time.Minute,
		ResetWindow: time.Duration(cfg.ResetTokenMinutes) * time.Minute,
	}, log)

	authHandler := handlers.NewAuthHandler(authSvc, cfg)
	borrowHandler := handlers.NewBorrowHandler(borrows)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/verify-otp", authHandler.VerifyOTP)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/logout", authHandler.Logout)
		api.POST("/auth/password/forgot", authHandler.ForgotPassword)
		api.PUT("/auth/password/reset/:token", authHandler.ResetPassword)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/auth/password/update", authHandler.UpdatePassword)
		protected.GET("/borrow/my-borrowed-books", borrowHandler.MyBorrowedBooks)
	}
}

func corsMiddleware(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin == frontendURL {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
