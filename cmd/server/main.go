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

	"github.com/stitbu/satupintu/internal/api"
	"github.com/stitbu/satupintu/internal/config"
	"github.com/stitbu/satupintu/internal/data"
	"github.com/stitbu/satupintu/internal/llm"
	"github.com/stitbu/satupintu/internal/notify"
	"github.com/stitbu/satupintu/internal/remote"
	"github.com/stitbu/satupintu/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Initialize the local store; it is the ultimate fallback for every read.
	localStore, err := store.New(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize local store: %v", err)
	}
	defer localStore.Close()

	// Remote connection: a persisted runtime override wins over the
	// environment defaults.
	params := remote.Params{
		URL:     config.AppConfig.RemoteURL,
		AnonKey: config.AppConfig.RemoteAnonKey,
	}
	if override, found := data.LoadRemoteOverride(localStore); found {
		log.Println("Using persisted remote connection override")
		params = override
	}
	remoteClient := remote.New(params)
	if !remoteClient.IsConfigured() {
		log.Println("Remote backend not configured; running on the local store only")
	}

	dataService := data.NewService(localStore, remoteClient)

	llmService := llm.NewService(context.Background(), config.AppConfig.GeminiAPIKey)
	defer llmService.Close()

	notifier := notify.NewDispatcher()

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(dataService, llmService, notifier, config.AppConfig.PollSeconds)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
