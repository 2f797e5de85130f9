package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsatlas/app/api"
	"newsatlas/app/cfg"
	"newsatlas/app/checkpoint"
	"newsatlas/app/crawler"
	"newsatlas/app/database"
	"newsatlas/app/geo"
	"newsatlas/app/lang"
	"newsatlas/app/pipeline"
	"newsatlas/app/search"
	"newsatlas/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting NewsAtlas", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		fatal("Failed to open database", err)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		fatal("Failed to run database migrations", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	pipelineConfig, err := pipeline.LoadConfig(appCfg.ConfigFile)
	if err != nil {
		fatal("Failed to load pipeline configuration", err)
	}
	slog.Info("Pipeline configuration loaded",
		"queries", len(pipelineConfig.Queries),
		"keyword_groups", len(pipelineConfig.Groups),
		"relevance_threshold", pipelineConfig.RelevanceThreshold)

	countryTable, err := geo.NewTable()
	if err != nil {
		fatal("Failed to load country table", err)
	}
	slog.Info("Country table loaded", "countries", countryTable.Size())

	// Without the analyzer the pipeline degrades to empty runs but the read
	// API keeps serving whatever is already stored.
	var analyzer lang.Analyzer
	if proseAnalyzer, err := lang.NewProseAnalyzer(); err != nil {
		slog.Warn("Language analyzer unavailable, pipeline runs will be degraded", "error", err)
	} else {
		analyzer = proseAnalyzer
	}

	checkpoints, err := checkpoint.NewStore(appCfg.DataDir)
	if err != nil {
		fatal("Failed to initialize checkpoint store", err)
	}

	articleRepo := database.NewArticleRepository(db)
	filter := pipeline.NewFilter(analyzer, countryTable, pipelineConfig)
	newsCrawler := crawler.New(appCfg.UserAgent, time.Duration(appCfg.FetchTimeout)*time.Second)

	index := search.NewIndex()
	if err := tasks.RebuildIndex(articleRepo, index); err != nil {
		slog.Warn("Failed to seed search index from database", "error", err)
	} else {
		slog.Info("Search index seeded", "documents", index.DocCount())
	}

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "schedule_at", appCfg.ScheduleAt, "run_on_startup", appCfg.RunOnStartup)
	scheduler := tasks.NewScheduler(newsCrawler, filter, checkpoints, articleRepo, index, pipelineConfig)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(articleRepo, index)
	server := api.NewServer(handler, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
