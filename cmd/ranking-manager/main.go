package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ranking-workers/internal/common/camunda"
	"ranking-workers/internal/common/config"
	"ranking-workers/internal/common/database"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/common/observability"
	"ranking-workers/internal/ranking/engine"
	"ranking-workers/internal/ranking/skills"
	"ranking-workers/internal/store/cache"
	"ranking-workers/internal/store/memory"
	"ranking-workers/internal/store/postgres"
	"ranking-workers/internal/store/search"
	"ranking-workers/pkg/registry"

	cat "ranking-workers/internal/workers/ranking/candidates-above-threshold"
	em "ranking-workers/internal/workers/ranking/explain-match"
	rp "ranking-workers/internal/workers/ranking/rescore-pending"
	sa "ranking-workers/internal/workers/ranking/score-application"
	sja "ranking-workers/internal/workers/ranking/score-job-applications"
	ss "ranking-workers/internal/workers/ranking/score-statistics"
	tc "ranking-workers/internal/workers/ranking/top-candidates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	log.Info("Starting ranking manager...", map[string]interface{}{"store": cfg.Ranking.Store})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}

	var closers []func() error

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("repository setup failed", zap.Error(err))
	}
	closers = append(closers, closeRepo...)

	synonyms, err := skills.LoadSynonymTable(cfg.Ranking.SynonymsPath)
	if err != nil {
		zapLog.Fatal("synonym table load failed", zap.Error(err))
	}
	log.Info("Synonym table loaded", map[string]interface{}{"entries": synonyms.Len()})

	eng := engine.New(&engine.Config{
		Concurrency: cfg.Ranking.Concurrency,
		Observer:    openScoreIndex(ctx, cfg, log),
		Tracer:      obs.Tracer(),
	}, repo, skills.NewMatcher(synonyms), log)

	zeebe, err := camunda.NewClient(ctx, camunda.ConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	closers = append(closers, zeebe.Close)

	workers := startWorkers(zeebe, cfg, eng, obs, log)
	log.Info("Ranking workers registered", map[string]interface{}{"count": len(workers)})

	activities := loadActivities(cfg, log)
	srv := startHealthServer(cfg, zeebe, activities, log)

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Health server shutdown failed", map[string]interface{}{"error": err})
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Error("Error closing resource", map[string]interface{}{"error": err})
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Observability shutdown failed", map[string]interface{}{"error": err})
	}

	log.Info("Ranking manager stopped gracefully", nil)
}

// retry runs op with exponential backoff until it succeeds, maxElapsed
// passes or ctx is cancelled.
func retry(ctx context.Context, name string, maxElapsed time.Duration, op func() error, log logger.Logger) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxElapsedTime = maxElapsed

	err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), func(err error, next time.Duration) {
		log.Warn(fmt.Sprintf("%s failed, retrying...", name), map[string]interface{}{
			"error":       err,
			"nextRetryIn": next.String(),
		})
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Info(name+" succeeded", nil)
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (engine.Repository, []func() error, error) {
	var (
		repo    engine.Repository
		closers []func() error
	)

	switch cfg.Ranking.Store {
	case config.StoreMemory:
		store := memory.New()
		if path := cfg.Ranking.FixturesPath; path != "" {
			if err := store.LoadFixtures(path); err != nil {
				return nil, nil, err
			}
			log.Info("Memory store seeded", map[string]interface{}{"fixtures": path})
		}
		repo = store

	default:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := retry(ctx, "PostgreSQL connection", time.Minute, func() error { return pg.Ping(ctx) }, log); err != nil {
			pg.Close()
			return nil, nil, err
		}
		closers = append(closers, pg.Close)
		repo = postgres.New(pg.DB, log)
	}

	if !cfg.Database.Redis.Enabled() {
		return repo, closers, nil
	}

	rdb := database.NewRedis(cfg.Database.Redis)
	if err := retry(ctx, "Redis connection", 20*time.Second, func() error { return rdb.Ping(ctx) }, log); err != nil {
		log.Warn("Redis unavailable, running without lookup cache", map[string]interface{}{"error": err})
		rdb.Close()
		return repo, closers, nil
	}
	closers = append(closers, rdb.Close)
	return cache.New(repo, rdb.Client, cfg.Ranking.CacheTTL, log), closers, nil
}

// openScoreIndex returns nil when Elasticsearch is disabled or unreachable;
// scoring never depends on it.
func openScoreIndex(ctx context.Context, cfg *config.Config, log logger.Logger) engine.ScoreObserver {
	if !cfg.Database.Elasticsearch.Enabled() {
		return nil
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		log.Warn("Elasticsearch client setup failed, scores will not be indexed", map[string]interface{}{"error": err})
		return nil
	}
	if err := retry(ctx, "Elasticsearch connection", 30*time.Second, func() error { return es.Ping(ctx) }, log); err != nil {
		log.Warn("Elasticsearch unavailable, scores will not be indexed", map[string]interface{}{"error": err})
		return nil
	}

	indexer := search.NewIndexer(es.Client, cfg.Ranking.IndexName, log)
	if err := indexer.EnsureIndex(ctx); err != nil {
		log.Warn("Score index setup failed", map[string]interface{}{"error": err})
	}
	return indexer
}

func startWorkers(client *camunda.Client, cfg *config.Config, eng *engine.Engine, obs *observability.Observability, log logger.Logger) []worker.JobWorker {
	zb := client.Zeebe()
	handlers := []struct {
		taskType string
		handle   worker.JobHandler
	}{
		{sa.TaskType, sa.NewHandler(sa.LoadConfig(config.GetWorkerConfig(cfg, sa.TaskType)), eng, obs, log).Handle},
		{sja.TaskType, sja.NewHandler(sja.LoadConfig(config.GetWorkerConfig(cfg, sja.TaskType)), eng, obs, log).Handle},
		{tc.TaskType, tc.NewHandler(tc.LoadConfig(config.GetWorkerConfig(cfg, tc.TaskType)), eng, obs, log).Handle},
		{cat.TaskType, cat.NewHandler(cat.LoadConfig(config.GetWorkerConfig(cfg, cat.TaskType)), eng, obs, log).Handle},
		{ss.TaskType, ss.NewHandler(ss.LoadConfig(config.GetWorkerConfig(cfg, ss.TaskType)), eng, obs, log).Handle},
		{em.TaskType, em.NewHandler(em.LoadConfig(config.GetWorkerConfig(cfg, em.TaskType)), eng, obs, log).Handle},
		{rp.TaskType, rp.NewHandler(rp.LoadConfig(config.GetWorkerConfig(cfg, rp.TaskType)), eng, obs, log).Handle},
	}

	started := make([]worker.JobWorker, 0, len(handlers))
	for _, h := range handlers {
		if w := camunda.StartWorker(zb, h.taskType, config.GetWorkerConfig(cfg, h.taskType), h.handle, log); w != nil {
			started = append(started, w)
		}
	}
	return started
}

var taskTypes = []string{
	sa.TaskType, sja.TaskType, tc.TaskType, cat.TaskType, ss.TaskType, em.TaskType, rp.TaskType,
}

// loadActivities reads the activity registry served on /activities. A
// missing or invalid registry is logged and leaves the endpoint off.
func loadActivities(cfg *config.Config, log logger.Logger) *registry.ActivityRegistry {
	path := cfg.Ranking.RegistryPath
	if path == "" {
		return nil
	}

	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("Activity registry not loaded", map[string]interface{}{"path": path, "error": err})
		return nil
	}
	if err := reg.Validate(); err != nil {
		log.Warn("Activity registry invalid", map[string]interface{}{"path": path, "error": err})
		return nil
	}
	if missing := reg.Unregistered(taskTypes); len(missing) > 0 {
		log.Warn("Workers missing from activity registry", map[string]interface{}{"taskTypes": missing})
	}
	return reg
}

func startHealthServer(cfg *config.Config, zeebe *camunda.Client, activities *registry.ActivityRegistry, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	if activities != nil {
		mux.HandleFunc("/activities", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(activities)
		})
	}
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()
	return srv
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
