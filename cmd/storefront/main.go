package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/httpapi"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

func main() {
	port := getEnv("PORT", "3000")

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lmicroseconds)

	s := store.New(catalog.Default())
	h := httpapi.NewHandler(s, logger)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      httpapi.NewRouter(h),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("storefront listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
