package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisprometheus/v9"

	"github.com/ragserve/core"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := ragcore.LoadConfigFromEnv()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *configPath != "" {
		f, ferr := os.Open(*configPath)
		if ferr != nil {
			slog.Error("opening config", "error", ferr)
			os.Exit(1)
		}
		if derr := json.NewDecoder(f).Decode(&cfg); derr != nil {
			f.Close()
			slog.Error("parsing config", "error", derr)
			os.Exit(1)
		}
		f.Close()
		if verr := ragcore.ValidateConfig(cfg); verr != nil {
			slog.Error("invalid config", "error", verr)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	engine, err := ragcore.New(cfg)
	if err != nil {
		slog.Error("creating engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	prometheus.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if rc := engine.RedisClient(); rc != nil {
		prometheus.MustRegister(redisprometheus.NewCollector("ragserve", "cache", rc))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(recoveryMiddleware(), logMiddleware(), metricsMiddleware(), corsConfig(cfg.CORSOrigins), authMiddleware(cfg.APIKey))

	h := newHandler(engine)
	router.GET("/health", h.handleHealth)
	router.POST("/upload", h.handleUpload)
	router.POST("/query", h.handleQuery)
	router.POST("/query/stream", h.handleQueryStream)
	router.GET("/documents", h.handleListDocuments)
	router.DELETE("/documents/:filename", h.handleDeleteDocument)
	router.GET("/domains", h.handleDomains)
	router.POST("/reset_kb", h.handleResetKB)

	listenAddr := cfg.ListenAddr
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // streaming responses (ingest and /query/stream can be long)
		IdleTimeout:  120 * time.Second,
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}
		go func() {
			slog.Info("metrics server starting", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server error", "error", err)
			}
		}()
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			slog.Error("metrics server shutdown error", "error", err)
		}
	}

	slog.Info("server stopped")
}
