// cmd/fulfillment-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonaws "dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	stderrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/delivery"
	"dining-concierge/internal/fulfillment"
	"dining-concierge/internal/queue"
	"dining-concierge/internal/store"
)

// pollInterval is how long the worker sleeps when the queue is empty.
const pollInterval = 2 * time.Second

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

	zapLog.Info("Starting fulfillment worker...")

	obs := observability.New("fulfillment-worker")
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

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
		redisQueue := queue.NewRedisQueue(rdb.Client, cfg.Queue.Redis.Key)
		// reclaim messages a previous worker received but never acknowledged
		moved, err := redisQueue.Redrive(ctx)
		if err != nil {
			zapLog.Fatal("queue redrive failed", zap.Error(err))
		}
		if moved > 0 {
			zapLog.Info("Redrove in-flight messages from previous run", zap.Int("count", moved))
		}
		q = redisQueue
	}
	zapLog.Info("Queue transport initialized", zap.String("driver", cfg.Queue.Driver))

	// --- Init delivery channel ---
	sender, err := buildSender(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("delivery channel failed", zap.Error(err))
	}
	zapLog.Info("Delivery channel initialized", zap.String("channel", cfg.Integrations.Delivery.Channel))

	records := store.NewPostgresStore(pg.DB)
	candidates := store.NewElasticsearchIndex(esClient.Client, cfg.Database.Elasticsearch.Index)
	consumer := fulfillment.NewConsumer(q, candidates, records, sender, obs, log)

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8081")
		if err := http.ListenAndServe(":8081", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Poll loop ---
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}

			processed, err := consumer.ProcessOne(ctx)
			if err != nil {
				if !stderrors.IsRetryable(err) {
					// hard stop for this message; it stays for redrive inspection
					zapLog.Error("message abandoned", zap.Error(err))
				} else {
					zapLog.Warn("message processing failed, will redeliver", zap.Error(err))
				}
				time.Sleep(pollInterval)
				continue
			}
			if !processed {
				time.Sleep(pollInterval)
			}
		}
	}()
	zapLog.Info("Fulfillment worker polling for messages")

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping worker...")
	cancel()

	zapLog.Info("Fulfillment worker stopped gracefully")
}

// buildSender selects the delivery channel from config. SES is the default.
func buildSender(ctx context.Context, cfg *config.Config, log logger.Logger) (delivery.Sender, error) {
	switch cfg.Integrations.Delivery.Channel {
	case "smtp":
		return delivery.NewSMTPSender(delivery.SMTPConfig{
			Host:     cfg.Integrations.SMTP.Host,
			Port:     cfg.Integrations.SMTP.Port,
			Username: cfg.Integrations.SMTP.Username,
			Password: cfg.Integrations.SMTP.Password,
			UseTLS:   cfg.Integrations.SMTP.UseTLS,
			From:     cfg.Integrations.SMTP.DefaultFrom,
		}, log), nil
	case "sns":
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
		return delivery.NewSNSSender(snsClient, cfg.Integrations.AWS.SNS.DefaultSMSSenderID, log), nil
	default:
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
		return delivery.NewSESSender(sesClient, cfg.Integrations.AWS.SES.FromEmail, log), nil
	}
}
