// cmd/dialog-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	commonaws "dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/dialog"
	"dining-concierge/internal/fulfillment"
	"dining-concierge/internal/httpapi"
	"dining-concierge/internal/nlu"
	"dining-concierge/internal/queue"
	"dining-concierge/internal/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dialog server...")

	obs := observability.New("dialog-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init queue transport ---
	var q queue.Queue
	switch cfg.Queue.Driver {
	case "sqs":
		sqsClient, err := commonaws.NewSQSClient(ctx, cfg.Queue.SQS.Region)
		if err != nil {
			zapLog.Fatal("sqs client failed", zap.Error(err))
		}
		q = queue.NewSQSQueue(sqsClient, cfg.Queue.SQS.QueueURL)
	default:
		q = queue.NewRedisQueue(rdb.Client, cfg.Queue.Redis.Key)
	}
	zapLog.Info("Queue transport initialized", zap.String("driver", cfg.Queue.Driver))

	// --- Wire dialog pipeline ---
	producer := fulfillment.NewProducer(q, log)
	dialogHandler := dialog.NewHandler(producer, log)

	nluClient := nlu.NewClient(nlu.Config{
		BaseURL:   cfg.NLU.BaseURL,
		BotID:     cfg.NLU.BotID,
		BotAlias:  cfg.NLU.BotAlias,
		LocaleID:  cfg.NLU.LocaleID,
		AuthToken: cfg.NLU.AuthToken,
		Timeout:   time.Duration(cfg.NLU.Timeout) * time.Millisecond,
	}, log)

	sessions := session.NewStore(rdb.Client, time.Duration(cfg.Session.TTLSeconds)*time.Second)

	server := httpapi.NewServer(dialogHandler, nluClient, sessions, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("Dialog server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Dialog server stopped gracefully")
}
