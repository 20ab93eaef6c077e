package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-crud-portal/internal/core/config"
	"go-crud-portal/internal/core/database"
	"go-crud-portal/internal/core/logger"
	"go-crud-portal/internal/core/server"
	"go-crud-portal/internal/repo"
	"go-crud-portal/internal/service"
	"go-crud-portal/internal/transport/http/handler"
	"go-crud-portal/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// portal 只碰用户目录，连 Mongo 就够了
	mongoDB, closeMongo, err := database.NewMongo(context.Background(), database.MongoOpts{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal("mongo connect", zap.Error(err))
	}
	defer closeMongo()
	log.Info("mongo connected", zap.String("database", cfg.Mongo.Database))

	userSvc := service.NewUserService(repo.NewUserRepo(mongoDB))
	router.Register(handler.NewPortalHandler(userSvc, log))

	r := router.NewPortalEngine(log)

	addr := server.Addr(cfg.App.Portal.Host, cfg.App.Portal.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	host4human := cfg.App.Portal.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Portal.Port)
	log.Info("portal starting",
		zap.String("addr", addr),
		zap.String("open", baseURL+"/portal/users"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("portal start FAILED", zap.Error(err))
		}
	}()
	log.Info("portal started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("portal stopped gracefully")
}
