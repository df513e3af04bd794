package router

import (
	"fmt"
	"strings"

	"github.com/shipdesk/internal/cache"
	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/http/handlers"
	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := handlers.New(c)
	prefix := strings.TrimSpace(cfg.Store.Prefix)
	if prefix == "" {
		prefix = "sd"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", prefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（备注图片）
	uploadDir := cfg.Upload.Dir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/"+uploadDir, "./"+uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.GET("/captcha", handler.GetCaptcha)
			auth.POST("/register", handler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), handler.Login)
		}

		// 读接口：匿名可访问，附带可选的当前用户
		read := apiV1.Group("")
		read.Use(CurrentUserMiddleware(cfg.JWT))
		{
			read.GET("/customers", handler.ListCustomers)
			read.GET("/customers/:id", handler.GetCustomer)
			read.GET("/shipments", handler.ListShipments)
			read.GET("/shipments/:id", handler.GetShipment)
			read.GET("/partial-shipments", handler.ListPartialShipments)
			read.GET("/partial-shipments/:id", handler.GetPartialShipment)
			read.GET("/dashboard", handler.GetDashboard)
		}

		// 写接口：需要有效 token
		write := apiV1.Group("")
		write.Use(JWTAuthMiddleware(cfg.JWT))
		{
			write.GET("/me", handler.Me)
			write.PUT("/me/password", handler.ChangePassword)

			write.POST("/customers", handler.CreateCustomer)
			write.PUT("/customers/:id", handler.UpdateCustomer)
			write.PUT("/customers/:id/note", handler.UpdateCustomerNote)
			write.POST("/customers/:id/balance", handler.AdjustCustomerBalance)
			write.DELETE("/customers/:id", handler.DeleteCustomer)

			write.POST("/shipments", handler.CreateShipment)
			write.PUT("/shipments/:id", handler.UpdateShipment)
			write.POST("/shipments/:id/close", handler.CloseShipment)
			write.POST("/shipments/:id/reopen", handler.ReopenShipment)
			write.PUT("/shipments/:id/note", handler.UpdateShipmentNote)
			write.POST("/shipments/:id/transfer", handler.TransferPartialShipment)
			write.DELETE("/shipments/:id", handler.DeleteShipment)

			write.POST("/partial-shipments", handler.CreatePartialShipment)
			write.PUT("/partial-shipments/:id", handler.UpdatePartialShipment)
			write.PUT("/partial-shipments/:id/note", handler.UpdatePartialShipmentNote)
			write.DELETE("/partial-shipments/:id", handler.DeletePartialShipment)
			write.POST("/partial-shipments/:id/packages", handler.AddPackage)
			write.PUT("/packages/:package_id", handler.UpdatePackage)
			write.DELETE("/packages/:package_id", handler.DeletePackage)
			write.POST("/partial-shipments/:id/items", handler.AddItem)
			write.PUT("/items/:item_id", handler.UpdateItem)
			write.DELETE("/items/:item_id", handler.DeleteItem)

			write.POST("/uploads/notes", handler.UploadNoteImage)
		}
	}

	return r
}
