package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ragserve/core"
	"github.com/ragserve/core/queue"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON)")
	flag.Parse()

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
	redisAddr := cfg.AsynqRedisAddr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	engine, err := ragcore.New(cfg)
	if err != nil {
		slog.Error("creating engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6, // OCR retries: latency-sensitive, mostly waited on
				"default":  3,
				"low":      1, // index optimize passes
			},
			StrictPriority: true,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				slog.Error("worker: task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	p := newProcessor(engine)
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskOCRRetry, p.handleOCRRetry)
	mux.HandleFunc(queue.TaskIndexOptimize, p.handleIndexOptimize)

	go scheduleIndexOptimize(redisOpt, 1*time.Hour)

	slog.Info("worker starting", "redis", redisAddr, "concurrency", 10)
	if err := server.Run(mux); err != nil {
		slog.Error("worker run failed", "error", err)
		os.Exit(1)
	}
}

// scheduleIndexOptimize periodically enqueues an index-optimize task so
// the vector backend's maintenance pass runs without an external cron.
func scheduleIndexOptimize(redisOpt asynq.RedisClientOpt, interval time.Duration) {
	client := asynq.NewClient(redisOpt)
	defer client.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := client.Enqueue(queue.NewIndexOptimizeTask()); err != nil {
			slog.Error("worker: failed to enqueue index optimize", "error", err)
		}
	}
}
