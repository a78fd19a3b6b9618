// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/common"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/config"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/lock/redislock"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/metrics"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/scheduler"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	if _, err := common.ConfigureLogger(logrus.StandardLogger(), common.LogOptions{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		File:  cfg.LogFile,
	}); err != nil {
		logrus.WithError(err).Fatal("unable to configure logger")
	}
	logrus.Infof("starting %s", constants.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := envelope.InitTracerProvider(ctx, constants.ServiceName, cfg.ZipkinURL)
	if err != nil {
		logrus.WithError(err).Fatal("unable to initialize tracing")
	}

	tolerances, err := cfg.Tolerances()
	if err != nil {
		logrus.WithError(err).Fatal("invalid tolerance table")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("unable to open database")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		logrus.WithError(err).Fatal("failed to connect to postgres")
	}
	cancel()
	if cfg.RunMigrations {
		if err := postgres.Migrate(db); err != nil {
			logrus.WithError(err).Fatal("unable to migrate database")
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		logrus.WithError(err).Fatal("failed to connect to redis")
	}
	cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mmMetrics := metrics.NewMetrics(registry)

	store := postgres.NewStore(db, cfg.FetchPageSize)
	service, err := scheduler.NewService(scheduler.Options{
		MatchPool:               cfg.MatchPool,
		ToleranceTable:          tolerances,
		Seed:                    cfg.RandomSeed,
		SortedSearchMinPoolSize: cfg.SortedSearchMinPoolSize,
		PartitionSize:           cfg.PartitionSize,
		MaxConcurrentPartitions: cfg.MaxConcurrentPartitions,
		LockTTL:                 time.Duration(cfg.LockTTLSecond) * time.Second,
		RunInterval:             time.Duration(cfg.RunIntervalSecond) * time.Second,
		RunOnStart:              cfg.RunOnStart,
	}, store, store, redislock.NewLocker(rdb), mmMetrics)
	if err != nil {
		logrus.WithError(err).Fatal("unable to create scheduler")
	}

	exitCode := 0
	if cfg.RunOnce {
		report, err := service.RunOnce(ctx)
		if err != nil {
			logrus.WithError(err).WithField("errorCode", models.ErrorCode(err)).Error("matchmaking run failed")
			exitCode = 1
		} else {
			logrus.Infof("run %s: %s", report.RunID, common.LogJSONFormatter(report))
		}
	} else {
		metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsHandler(registry), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logrus.Infof("serving metrics on %s", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Fatal("metrics server failed")
			}
		}()

		if err := service.Start(); err != nil {
			logrus.WithError(err).Fatal("unable to start scheduler")
		}
		<-ctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		service.Stop()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("unable to stop metrics server")
		}
		cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("unable to flush traces")
	}
	rdb.Close()
	db.Close()

	if exitCode != 0 {
		cancel()
		stop()
		os.Exit(exitCode)
	}
}

func metricsHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
