package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/itune8/autodoc-classifier/internal/bootstrap"
	"github.com/itune8/autodoc-classifier/internal/config"
	"github.com/itune8/autodoc-classifier/internal/core/usecase"
	"github.com/itune8/autodoc-classifier/internal/observability/logging"
	"github.com/itune8/autodoc-classifier/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	app.ProcessUC.(*usecase.ProcessDocumentUseCase).WithCacheObserver(func(hit bool) {
		workerMetrics.RecordCacheLookup(serviceName, hit)
	})
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux(workerMetrics),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_server_error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentQueued(ctx, func(handlerCtx context.Context, documentID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		observeQueueLag(processCtx, app, workerMetrics, documentID)

		workerMetrics.StartDocument()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, documentID)
		workerMetrics.FinishDocument(serviceName, time.Since(start), processErr)

		if processErr == nil {
			recordClassification(processCtx, app, workerMetrics, documentID)
		}
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

func metricsMux(m *metrics.WorkerMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func observeQueueLag(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics, documentID string) {
	doc, err := app.Repo.GetByID(ctx, documentID)
	if err != nil {
		return
	}
	m.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
}

func recordClassification(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics, documentID string) {
	doc, err := app.Repo.GetByID(ctx, documentID)
	if err != nil {
		return
	}
	m.RecordClassification(serviceName, string(doc.Type))
}
