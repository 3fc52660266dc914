// stockstub plays the stock query and product catalog collaborators for
// local development: an sqlite-backed API serving GET /stock/{id} and
// GET /products/{id}.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/webstore/cart-engine/internal/fixture"
)

func main() {
	log := logrus.New()

	dbPath := getEnv("DB_PATH", "./stockstub.db")
	migrationsPath := getEnv("MIGRATIONS_PATH", "./internal/fixture/migrations")
	httpPort := getEnv("HTTP_PORT", "8081")

	repo, err := fixture.NewRepository(dbPath)
	if err != nil {
		log.Fatalf("Failed to open fixture database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(migrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	handler := fixture.NewHandler(repo, log)
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: r,
	}

	go func() {
		log.Printf("Stock stub listening on port %s", httpPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down stock stub...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Stock stub stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
