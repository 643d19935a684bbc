package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/secondchance/secondchance-backend/internal/config"
	"github.com/secondchance/secondchance-backend/internal/db"
	"github.com/secondchance/secondchance-backend/internal/model"
	"github.com/secondchance/secondchance-backend/internal/server"
	"github.com/secondchance/secondchance-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	var store storage.Store
	var uploadDir string
	if cfg.StorageBucket != "" {
		gcsStore, err := storage.NewGCS(context.Background(), cfg.StorageBucket)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		defer gcsStore.Close()
		store = gcsStore
	} else {
		localStore, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		store = localStore
		uploadDir = cfg.UploadDir
	}

	srv := server.New(nil, server.Options{
		JWTSecret:  cfg.JWTSecret,
		BcryptCost: cfg.BcryptCost,
		Store:      store,
		UploadDir:  uploadDir,
	})

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
