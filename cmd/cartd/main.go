package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/webstore/cart-engine/internal/engine"
	"github.com/webstore/cart-engine/internal/httpapi"
	"github.com/webstore/cart-engine/internal/inventory"
	"github.com/webstore/cart-engine/internal/notify"
	"github.com/webstore/cart-engine/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	sessionID := getEnv("CART_SESSION_ID", uuid.New().String())
	inventoryAddr := getEnv("INVENTORY_ADDR", "http://localhost:8081")
	storeBackend := getEnv("STORE_BACKEND", "redis")
	notifyBackend := getEnv("NOTIFY_BACKEND", "log")

	ctx := context.Background()

	snapshots, cleanup, err := buildStore(ctx, storeBackend, sessionID, log)
	if err != nil {
		log.Fatalf("Failed to set up %s store: %v", storeBackend, err)
	}
	defer cleanup()
	log.Printf("Cart snapshots stored in %s, session %s", storeBackend, sessionID)

	sink, err := buildSink(notifyBackend, log)
	if err != nil {
		log.Fatalf("Failed to set up %s notification sink: %v", notifyBackend, err)
	}
	log.Printf("Notifications go to %s", notifyBackend)

	client := inventory.Guard(inventory.NewClient(inventoryAddr, nil))
	log.Printf("Inventory collaborator at %s", inventoryAddr)

	cartEngine, err := engine.New(ctx, client, client, snapshots, sink, log)
	if err != nil {
		log.Fatalf("Failed to start cart engine: %v", err)
	}

	handler := httpapi.NewCartHandler(cartEngine, log)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: r,
	}

	go func() {
		log.Printf("Cart engine listening on port %s", httpPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down cart engine...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Cart engine stopped")
}

func buildStore(ctx context.Context, backend, sessionID string, log *logrus.Logger) (store.SnapshotStore, func(), error) {
	switch backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return store.NewRedisStore(redisClient, sessionID), func() { redisClient.Close() }, nil

	case "mongo":
		mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
		mongoDBName := getEnv("MONGO_DB_NAME", "cartdb")
		db, err := store.Connect(ctx, mongoURI, mongoDBName)
		if err != nil {
			return nil, nil, err
		}
		mongoStore := store.NewMongoStore(db, sessionID)
		if err := mongoStore.CreateIndexes(ctx); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.Printf("Mongo disconnect error: %v", err)
			}
		}
		return mongoStore, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func buildSink(backend string, log *logrus.Logger) (notify.Notifier, error) {
	switch backend {
	case "log":
		return notify.NewLogSink(log), nil
	case "kafka":
		brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
		topic := getEnv("KAFKA_TOPIC", "cart-notifications")
		return notify.NewKafkaSink(brokers, topic, log), nil
	default:
		return nil, fmt.Errorf("unknown notification backend %q", backend)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
