// cmd/worker-manager/main.go
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

	"warroom-workers/internal/common/aws"
	"warroom-workers/internal/common/camunda"
	"warroom-workers/internal/common/config"
	"warroom-workers/internal/common/database"
	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/common/observability"
	"warroom-workers/internal/structuring"
	"warroom-workers/internal/structuring/roster"
	"warroom-workers/pkg/registry"

	sd "warroom-workers/internal/workers/communication/send-draft"
	eb "warroom-workers/internal/workers/enrichment/enrich-bill-data"
	cb "warroom-workers/internal/workers/records/create-bundle"
	ct "warroom-workers/internal/workers/records/create-tasks"
	sdoc "warroom-workers/internal/workers/structuring/structure-document"
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

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, cfg.Observability.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Task Registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("task registry unavailable, continuing without it", zap.Error(err))
		reg = &registry.TaskRegistry{}
	} else {
		zapLog.Info("task registry loaded",
			zap.String("version", reg.Version),
			zap.Int("tasks", len(reg.Tasks)),
		)
	}

	// --- Init Camunda Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

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
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		rdb = database.NewRedis(cfg.Database.Redis)
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

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

	// --- Client Roster ---
	clients := roster.Default()
	if cfg.Structuring.RosterSource == "postgres" {
		store := roster.NewStore(pg.DB, rdb.Client,
			time.Duration(cfg.Structuring.RosterCacheTTLMin)*time.Minute, log)
		loaded, err := store.Load(ctx)
		if err != nil {
			zapLog.Warn("roster load failed, using builtin roster", zap.Error(err))
		} else {
			clients = loaded
		}
	}
	zapLog.Info("client roster ready", zap.Int("clients", len(clients)))

	pipeline := structuring.NewPipeline(clients)

	// --- AWS Clients ---
	var sesClient *aws.SESClient
	var snsClient *aws.SNSClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
	}
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
	}

	// --- Register Workers ---
	var workers []*camunda.Worker

	register := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		if reg.Find(taskType) == nil && len(reg.Tasks) > 0 {
			zapLog.Warn("worker missing from task registry", zap.String("taskType", taskType))
		}
		if wcfg.MaxJobsActive == 0 {
			wcfg.MaxJobsActive = cfg.Camunda.MaxJobsActive
		}
		workers = append(workers, camunda.NewWorker(zeebe.Raw(), taskType, wcfg.MaxJobsActive, handler, zapLog))
	}

	register(sdoc.TaskType, sdoc.NewHandler(
		&sdoc.Config{
			Timeout: time.Duration(cfg.Workers[sdoc.TaskType].Timeout) * time.Millisecond,
		},
		pipeline, obs, log,
	))

	register(ct.TaskType, ct.NewHandler(
		&ct.Config{
			Timeout: time.Duration(cfg.Workers[ct.TaskType].Timeout) * time.Millisecond,
		},
		pg.DB, log,
	))

	register(cb.TaskType, cb.NewHandler(
		&cb.Config{
			Timeout: time.Duration(cfg.Workers[cb.TaskType].Timeout) * time.Millisecond,
			Index:   cfg.Database.Elasticsearch.Index,
		},
		pg.DB, esClient.Client, log,
	))

	if sesClient != nil {
		var snsSvc sd.SNSService
		if snsClient != nil {
			snsSvc = snsClient
		}
		register(sd.TaskType, sd.NewHandler(
			&sd.Config{
				Timeout:    time.Duration(cfg.Workers[sd.TaskType].Timeout) * time.Millisecond,
				FromEmail:  cfg.Integrations.AWS.SES.FromEmail,
				SMSEnabled: cfg.Integrations.AWS.SNS.Enabled,
			},
			sesClient, snsSvc, log,
		))
	} else {
		zapLog.Info("worker disabled, SES not configured", zap.String("taskType", sd.TaskType))
	}

	register(eb.TaskType, eb.NewHandler(
		&eb.Config{
			Timeout:    time.Duration(cfg.APIs.Legislature.Timeout) * time.Millisecond,
			BaseURL:    cfg.APIs.Legislature.BaseURL,
			APIKey:     cfg.APIs.Legislature.APIKey,
			MaxRetries: cfg.APIs.Legislature.MaxRetries,
		},
		log,
	))

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

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
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())

		addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
