package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"salvadanaio/internal/amqp"
	"salvadanaio/internal/backup"
	"salvadanaio/internal/cli"
	applog "salvadanaio/internal/log"
)

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger()
	logger := applog.New(applog.Config{Component: applog.ComponentWorker})

	logger.Info("Starting salvadanaio-backup worker")

	cfg := cli.LoadAndValidateConfig(logger.Logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the backup worker")
		os.Exit(1)
	}

	result := cli.InitStore(context.Background(), logger.Logger, cfg)
	if result.Cleanup != nil {
		defer func() { _ = result.Cleanup() }()
	}

	writer := backup.NewWriter(cfg.BackupDir, result.Store)

	// The broker may come up after us. Retry with exponential backoff.
	var amqpClient *amqp.Client
	connect := func() error {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP connection failed, retrying", "error", err)
		}
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 5 * time.Minute
	if err := backoff.Retry(connect, policy); err != nil {
		logger.Error("Could not connect to AMQP broker", "error", err, "url", cfg.AMQPURL)
		os.Exit(1)
	}
	defer func() { _ = amqpClient.Close() }()
	logger.Info("Connected to AMQP broker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, nil)

	group, gctx := errgroup.WithContext(ctx)

	// Change messages are debounced so a burst of edits produces one
	// snapshot, not one per keystroke.
	changes := make(chan *amqp.ChangeMessage, 16)

	group.Go(func() error {
		err := amqpClient.ConsumeChanges(gctx, func(msg *amqp.ChangeMessage) error {
			select {
			case changes <- msg:
			case <-gctx.Done():
			}
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-gctx.Done():
				return nil
			case msg := <-changes:
				logger.Debug("Change received", "op", msg.Op, "bank_id", msg.BankID)
				if timer == nil {
					timer = time.NewTimer(cfg.BackupDebounce)
					fire = timer.C
				} else {
					if !timer.Stop() {
						<-timer.C
					}
					timer.Reset(cfg.BackupDebounce)
				}
			case <-fire:
				timer = nil
				fire = nil
				path, err := writer.WriteSnapshot(gctx)
				if err != nil {
					logger.Error("Snapshot failed", "error", err)
					continue
				}
				logger.Info("Snapshot written after changes", "path", path)
			}
		}
	})

	// Scheduled snapshots run regardless of change traffic.
	if cfg.BackupSchedule != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.BackupSchedule, func() {
			path, err := writer.WriteSnapshot(context.Background())
			if err != nil {
				logger.Error("Scheduled snapshot failed", "error", err)
				return
			}
			logger.Info("Scheduled snapshot written", "path", path)
		})
		if err != nil {
			logger.Error("Invalid backup schedule", "error", err, "schedule", cfg.BackupSchedule)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("Scheduled snapshots enabled", "schedule", cfg.BackupSchedule)
	}

	if err := group.Wait(); err != nil {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Backup worker stopped gracefully")
}
