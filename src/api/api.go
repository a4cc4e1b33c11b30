package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/truthlens/truthlens/src/api/config"
	"github.com/truthlens/truthlens/src/api/data"
	"github.com/truthlens/truthlens/src/api/types"
	"github.com/truthlens/truthlens/src/api/users"
	"github.com/truthlens/truthlens/src/api/webserver"
)

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(&types.User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	// Local development reads NEWS_API_KEY and friends from .env.
	_ = godotenv.Load()
	cfg := config.Load()

	db := data.MustDB(cfg.MySQLDSN, cfg.SQLitePath)
	migrate(db)

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	if cfg.NewsAPIKey == "" {
		log.Printf("NEWS_API_KEY not set - running in demo mode")
	}

	userSvc := users.NewService(db, users.NewHasher(cfg.PasswordScheme))

	cronManager := cron.New()
	if _, err := cronManager.AddFunc(cfg.UsageResetCron, func() {
		n, err := userSvc.ResetDailyUsage()
		if err != nil {
			log.Printf("usage reset: %v", err)
			return
		}
		if n > 0 {
			log.Printf("usage reset: restored quota for %d users", n)
		}
	}); err != nil {
		log.Fatalf("cron: %v", err)
	}
	cronManager.Start()
	defer cronManager.Stop()

	router := webserver.New(cfg, db, rdb)
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("TruthLens API listening on %s (strategy: %s)", cfg.Port, cfg.VerifyStrategy)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
