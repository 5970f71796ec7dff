// cmd/assistant-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"helpdesk-assistant/internal/chat"
	"helpdesk-assistant/internal/common/aws"
	"helpdesk-assistant/internal/common/config"
	"helpdesk-assistant/internal/common/database"
	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/common/observability"
	"helpdesk-assistant/internal/kb"
	"helpdesk-assistant/internal/mailbox"
	"helpdesk-assistant/internal/notify"
	"helpdesk-assistant/internal/onboarding"
	"helpdesk-assistant/internal/router"
	"helpdesk-assistant/internal/server"
	"helpdesk-assistant/internal/store"
	"helpdesk-assistant/internal/workflow"
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
			delay *= 2 // Exponential backoff
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

	zapLog.Info("Starting assistant server...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

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

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry (optional: KB lookups degrade) ---
	var esClient *database.ElasticsearchClient
	var knowledgeBase router.KnowledgeBase
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		knowledgeBase = kb.NewSearcher(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Warn("elasticsearch not configured, knowledge base lookups disabled")
	}

	// --- Init AWS notification clients ---
	var emailSender notify.EmailAPI
	if cfg.Notifications.AWS.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		emailSender = sesClient
	}
	var smsSender notify.SMSAPI
	if cfg.Notifications.AWS.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		smsSender = snsClient
	}
	notifier := notify.New(emailSender, smsSender,
		cfg.Notifications.AWS.SES.FromEmail,
		cfg.Notifications.AWS.SNS.OnCallNumber,
		log,
	)

	// --- Init Zeebe workflow client (optional) ---
	var workflowClient onboarding.Workflow
	if cfg.Workflow.Enabled {
		var wf *workflow.Client
		err = retryWithBackoff(func() error {
			var err error
			wf, err = workflow.NewClient(workflow.ClientConfig{
				GatewayAddress:         cfg.Workflow.GatewayAddress,
				ProcessID:              cfg.Workflow.ProcessID,
				UsePlaintextConnection: true,
			}, log)
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer wf.Close()
		workflowClient = wf
		zapLog.Info("Zeebe client connected successfully")
	}

	// --- Wire services ---
	records := store.NewPostgres(pg.DB, log)

	mailboxClient := mailbox.NewClient(
		cfg.Mailbox.BaseURL,
		cfg.Mailbox.Token,
		time.Duration(cfg.Mailbox.Timeout)*time.Millisecond,
		log,
	)

	commandRouter := router.New(records, mailboxClient, knowledgeBase, notifier,
		router.Options{
			MinConfidence: cfg.Chat.MinConfidence,
			MaxKBResults:  cfg.Chat.MaxKBResults,
		},
		obs, log,
	)

	sessions := chat.NewSessionStore(redisClient.Client, time.Duration(cfg.Chat.SessionTTL)*time.Second)
	chatService := chat.NewService(sessions, commandRouter,
		time.Duration(cfg.Chat.CommandTimeout)*time.Millisecond, log)

	onboardingService := onboarding.NewService(records, workflowClient, notifier, log)

	httpHandler := server.New(chatService, onboardingService, map[string]server.HealthChecker{
		"postgres": pg,
		"redis":    redisClient,
	}, log).Handler()

	// --- Metrics endpoint ---
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("metrics server error", zap.Error(err))
		}
	}()

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("assistant server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped")
}
