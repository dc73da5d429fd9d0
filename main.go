package main

import (
	"context"
	"expvar"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"reponotify/internal"
	"reponotify/pkg/api"
	"reponotify/pkg/notify"
	"reponotify/pkg/storage/subscriptions"
	"reponotify/webhook"
)

func main() {
	logger := internal.NewLogger("server")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	config, err := internal.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	store, err := subscriptions.Open(config.Storage)
	if err != nil {
		logger.Fatalf("subscription store: %v", err)
	}
	defer store.Close()

	sink, err := notify.NewSink(config.Sink)
	if err != nil {
		logger.Fatalf("sink: %v", err)
	}
	defer sink.Close()

	mux := http.NewServeMux()

	handler := webhook.NewHandler(store, sink, logger)
	handler.MaxBody = config.Webhook.MaxBodyBytes
	handler.SendTimeout = time.Duration(config.Webhook.SendTimeoutMS) * time.Millisecond
	mux.Handle(config.Webhook.Path, handler)
	logger.Printf("github webhook enabled on %s", config.Webhook.Path)

	if config.API.Enabled {
		mux.Handle(config.API.Path, &api.SubscriptionsHandler{
			Store:  store,
			Logger: internal.NewLogger("api"),
		})
		logger.Printf("subscriptions api enabled on %s", config.API.Path)
	}

	if config.Server.MetricsEnabled {
		mux.Handle(config.Server.MetricsPath, expvar.Handler())
		logger.Printf("metrics enabled on %s", config.Server.MetricsPath)
	}

	addr := ":" + strconv.Itoa(config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       time.Duration(config.Server.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(config.Server.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       time.Duration(config.Server.IdleTimeoutMS) * time.Millisecond,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderMS) * time.Millisecond,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
