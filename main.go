package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"debate_arena/internal/api"
	"debate_arena/internal/models"
	"debate_arena/internal/repository"
	"debate_arena/internal/service"
	"debate_arena/internal/storage"
	"debate_arena/pkg/config"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// 設定日誌等級
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Debate{},
		&models.Room{},
		&models.RoomParticipant{},
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate database")
	}

	// 初始化 Redis，用於保存 refresh token
	rdb, err := storage.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db, rdb)
	services := service.NewServices(repos, cfg)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, []byte(cfg.JWT.Secret))

	// 啟動伺服器
	log.Info().Str("address", cfg.Server.Address).Msg("server starting")
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}
