package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mosunmola/midnight-hub/api"
	"github.com/mosunmola/midnight-hub/blog"
	"github.com/mosunmola/midnight-hub/store"
	"github.com/mosunmola/midnight-hub/utils"
)

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	logLevel := flag.String("log-level", "debug", "Logging level (debug, info, warn, error)")
	flag.Parse()

	log := setupLogger(*logLevel)
	log.Info("Starting Midnight Hub")

	config, err := utils.LoadConfig(*envPath, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	log.WithFields(logrus.Fields{
		"categories":     config.Blog.Categories,
		"moods":          config.Blog.Moods,
		"sweep_interval": config.Blog.SweepIntervalSeconds,
		"server_port":    config.Server.Port,
	}).Info("Configuration loaded")

	kv, err := store.NewSQLite(config.Database.Path, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer kv.Close()

	events := blog.NewEventLog(50)

	repo, err := blog.NewRepository(kv, events, blog.Defaults{
		Author:         config.Blog.AuthorName,
		Category:       config.Blog.DefaultCategory,
		Mood:           config.Blog.DefaultMood,
		WordsPerMinute: config.Blog.WordsPerMinute,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load post collection")
	}

	if err := repo.SeedIfEmpty(blog.StarterPosts()); err != nil {
		log.WithError(err).Error("Failed to seed starter posts")
	}

	scheduler := blog.NewScheduler(repo, config.Blog.SweepIntervalSeconds, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := api.NewServer(repo, events, config, log)
	go server.Start(ctx)

	go func() {
		if err := scheduler.Start(ctx); err != nil && err != context.Canceled {
			log.WithError(err).Error("Sweep scheduler stopped unexpectedly")
		}
	}()

	waitForShutdown(cancel, log)
}

// setupLogger sets up the logger with the specified log level
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// waitForShutdown waits for a shutdown signal
func waitForShutdown(cancel context.CancelFunc, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("Shutdown signal received")

	cancel()

	time.Sleep(1 * time.Second)
	log.Info("Midnight Hub stopped")
}
