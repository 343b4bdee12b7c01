package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rushikeshdhande/Library-Management-System/internal/config"
	"github.com/rushikeshdhande/Library-Management-System/internal/db"
	"github.com/rushikeshdhande/Library-Management-System/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		logger.Fatal("db error", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, cfg, logger)

	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
