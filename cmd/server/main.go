package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/clubsync/internal/auth"
	"github.com/rpattn/clubsync/internal/config"
	"github.com/rpattn/clubsync/internal/db"
	"github.com/rpattn/clubsync/internal/importer"
	"github.com/rpattn/clubsync/internal/middleware"
	"github.com/rpattn/clubsync/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database.URL(), "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(conn.Pool)
	orgRepo := repository.NewOrganizationRepository(conn.Pool)
	recordRepo := repository.NewClubRecordRepository(conn.Pool)
	historyRepo := repository.NewImportHistoryRepository(conn.Pool)

	importService := importer.NewService(userRepo, orgRepo, recordRepo, historyRepo)
	importHandler := importer.NewHTTPHandler(importService, cfg.Server.MaxUploadBytes)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	router := chi.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(corsHandler.Handler)
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(auth.UUIDVerifier{}))
		r.Mount("/", importHandler.Routes())
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting import server on :%d", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
