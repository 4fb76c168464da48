package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"devconnector/config"
	"devconnector/handlers"
	"devconnector/notifications"
	"devconnector/posts"
	"devconnector/storage/mongostorage"
	"devconnector/storage/rediscached"
	"devconnector/workers"
)

func Start() error {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	switch cfg.AppMode {
	case "SERVER":
		return runAsServer(cfg)
	case "WORKER":
		return runAsWorker(cfg)
	default:
		panic(fmt.Errorf("unexpected app mode: %s", cfg.AppMode))
	}
}

func runAsServer(cfg *config.Config) error {
	ctx := context.Background()

	scheduler := workers.NewScheduler(cfg.RedisURL)

	postsStorage := mongostorage.NewStorage(cfg.MongoURL, cfg.MongoDB)
	notificationsStorage := notifications.NewStorage(ctx, cfg.MongoURL, cfg.MongoDB)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	cachedStorage := rediscached.NewCachedStorage(postsStorage, redisClient, cfg.CacheTTL)

	manager := posts.NewManager(cachedStorage, scheduler)

	executor := workers.NewNotificationTasksExecutor(postsStorage, notificationsStorage)
	err := scheduler.Register(*executor)
	if err != nil {
		panic(err)
	}

	handler := handlers.NewHTTPHandler(manager, notificationsStorage)
	r := handlers.NewRouter(handler, cfg.JWTSecret)

	server := &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf("0.0.0.0:%s", cfg.ServerPort),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Start serving at %s", server.Addr)
	return server.ListenAndServe()
}

func runAsWorker(cfg *config.Config) error {
	ctx := context.Background()

	scheduler := workers.NewScheduler(cfg.RedisURL)

	postsStorage := mongostorage.NewStorage(cfg.MongoURL, cfg.MongoDB)
	notificationsStorage := notifications.NewStorage(ctx, cfg.MongoURL, cfg.MongoDB)

	executor := workers.NewNotificationTasksExecutor(postsStorage, notificationsStorage)
	err := scheduler.Register(*executor)
	if err != nil {
		panic(err)
	}

	return scheduler.Listen()
}

func main() {
	log.Println(Start())
}
