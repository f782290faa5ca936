package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"github.com/MilesT98/Actify/internal/api"
	"github.com/MilesT98/Actify/internal/config"
	"github.com/MilesT98/Actify/internal/handler"
	"github.com/MilesT98/Actify/internal/logger"
	"github.com/MilesT98/Actify/internal/metrics"
	"github.com/MilesT98/Actify/internal/services"
	"github.com/MilesT98/Actify/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config: %v", err)
		os.Exit(1)
	}

	metrics.Register()

	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := store.ConnectPostgres(context.Background(), cfg.DatabaseURL())
		if err != nil {
			logger.Error("database connection failed: %v", err)
			os.Exit(1)
		}
		defer pool.Close()
		st = store.NewPostgresStore(pool)
		logger.Success("connected to postgres at %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "memory":
		st = store.NewMemoryStore()
		logger.Warning("using in-memory store, data will not survive a restart")
	}

	var photos services.PhotoStore
	if cfg.CloudinaryCloudName != "" {
		cld, err := services.NewCloudinaryService(cfg)
		if err != nil {
			logger.Error("cloudinary init failed: %v", err)
			os.Exit(1)
		}
		photos = cld
	} else {
		photos = services.NewLocalPhotoStore(cfg.BaseURL)
		logger.Warning("cloudinary not configured, photo uploads are stubbed")
	}

	h := handler.New(st, photos)
	router := api.SetupRouter(h, st)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	logger.Success("server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
