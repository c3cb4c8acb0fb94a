package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"debate_arena/internal/api/handlers"
	"debate_arena/internal/middleware"
	"debate_arena/internal/models"
	"debate_arena/internal/service"
)

// registerValidations 在 gin 的驗證引擎上註冊自訂規則
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("debatecategory", func(fl validator.FieldLevel) bool {
			return models.ValidCategory(models.DebateCategory(fl.Field().String()))
		})
	}
}

func SetupRoutes(r *gin.Engine, services *service.Services, jwtSecret []byte) {
	registerValidations()

	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	debateHandler := handlers.NewDebateHandler(services.Debate)
	roomHandler := handlers.NewRoomHandler(services.Room)
	wsHandler := handlers.NewWebSocketHandler(services.Events, services.Room)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtSecret))
	{
		authorized.GET("/auth/profile", authHandler.Profile)
		authorized.POST("/auth/logout", authHandler.Logout)

		// 辯論主題相關
		debates := authorized.Group("/debates")
		{
			debates.GET("", debateHandler.ListDebates)   // 分頁查詢辯論主題
			debates.POST("", debateHandler.CreateDebate) // 建立辯論主題
			debates.GET("/:id", debateHandler.GetDebate) // 查詢單一辯論主題

			debates.GET("/:id/rooms", roomHandler.ListRooms)   // 查詢主題底下的房間
			debates.POST("/:id/rooms", roomHandler.CreateRoom) // 建立房間
		}

		// 辯論室相關
		rooms := authorized.Group("/rooms")
		{
			rooms.GET("/:id", roomHandler.GetRoom) // 獲取房間信息

			// 房間參與
			rooms.POST("/:id/join", roomHandler.JoinRoom)   // 加入房間
			rooms.POST("/:id/leave", roomHandler.LeaveRoom) // 離開房間

			// 狀態轉移：WAITING -> LIVE -> FINISHED
			rooms.PATCH("/:id/status", roomHandler.UpdateStatus)

			// WebSocket 連接點，訂閱房間事件
			rooms.GET("/:id/ws", wsHandler.HandleWebSocket)
		}
	}
}
