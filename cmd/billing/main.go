package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	stripeclient "github.com/stripe/stripe-go/v76/client"

	"github.com/dtchealth/billing-engine/internal/billing"
	"github.com/dtchealth/billing-engine/internal/clients"
	"github.com/dtchealth/billing-engine/internal/config"
	"github.com/dtchealth/billing-engine/internal/httpapi"
	"github.com/dtchealth/billing-engine/internal/invoice"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	log.Info().Msg("starting invoicing engine")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid LOG_LEVEL, keeping default")
	} else {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("schedule", cfg.RunSchedule).
		Bool("dry_run", cfg.DryRun).
		Bool("email", cfg.EnableEmail).
		Bool("s3", cfg.EnableS3).
		Bool("stripe", cfg.EnableStripe).
		Msg("configuration loaded")

	// Client directory and sequence store: Postgres when configured,
	// sample data and random invoice numbers otherwise.
	var (
		directory clients.Directory = clients.NewSampleDirectory()
		sequences invoice.SequenceStore
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxConnections / 2)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("failed to ping database")
		}

		directory = clients.NewPostgresDirectory(db)
		sequences = invoice.NewPostgresSequenceStore(db)
		log.Info().Msg("connected to Postgres client directory")
	} else {
		log.Warn().Msg("DATABASE_URL not set, using built-in sample clients")
	}

	company := invoice.Company{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		Email:   cfg.CompanyEmail,
		Phone:   cfg.CompanyPhone,
	}

	assembler := billing.NewAssembler()
	assembler.TaxRate = cfg.TaxRate

	opts := invoice.RunnerOptions{
		Sequences: sequences,
		DryRun:    cfg.DryRun,
	}

	if cfg.EnableEmail && !cfg.DryRun {
		opts.Email = invoice.NewEmailSender(invoice.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			User:      cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, company)
	}

	if cfg.EnableTimesheet {
		opts.Timesheet = invoice.NewTimesheetRenderer(company)
	}

	if cfg.EnableS3 {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load AWS configuration")
		}
		s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = &cfg.S3Endpoint
				o.UsePathStyle = true
			}
		})
		archive := invoice.NewArchive(s3Client, cfg.S3Bucket)
		if err := archive.CheckBucket(context.Background()); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.S3Bucket).Msg("archive bucket is not accessible")
		}
		opts.Archive = archive
	}

	if cfg.EnableStripe {
		api := &stripeclient.API{}
		api.Init(cfg.StripeAPIKey, nil)
		opts.Payments = invoice.NewPaymentLinker(api)
	}

	runner := invoice.NewRunner(directory, assembler, invoice.NewPDFRenderer(company), opts, log)

	// Monthly trigger on the billing day.
	c := cron.New()
	jobFunc := func() {
		log.Info().Msg("scheduled billing run starting")
		if _, err := runner.RunAll(context.Background()); err != nil {
			log.Error().Err(err).Msg("scheduled billing run failed")
		}
	}
	if _, err := c.AddFunc(cfg.RunSchedule, jobFunc); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RunSchedule).Msg("failed to schedule billing job")
	}
	c.Start()
	defer c.Stop()
	log.Info().Str("schedule", cfg.RunSchedule).Msg("billing job scheduled")

	if cfg.RunImmediately {
		log.Info().Msg("running billing job immediately (RUN_IMMEDIATELY=true)")
		jobFunc()
	}

	// Manual trigger endpoint.
	api := httpapi.NewServer(runner, log)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // batch runs render and email synchronously
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("manual trigger listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
}
