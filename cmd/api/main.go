package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"godsendjoseph.dev/media-api/internal/cron"
	"godsendjoseph.dev/media-api/internal/env"
	"godsendjoseph.dev/media-api/internal/notification"
	ratelimiter "godsendjoseph.dev/media-api/internal/rateLimiter"
	"godsendjoseph.dev/media-api/internal/storage"
)

const version = "0.0.1"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	// The account name doubles as the bucket default on providers that
	// namespace buckets per account.
	accountName := env.GetString("STORAGE_ACCOUNT_NAME", "")

	cfg := config{
		addr:          env.GetString("ADDR", ":3000"),
		env:           env.GetString("ENV", "development"),
		timezone:      env.GetString("TIMEZONE", "UTC"),
		maxUploadSize: env.GetInt64("MAX_UPLOAD_SIZE", 10<<20), // 10mb
		storage: storageConfig{
			accessKeyID:       env.GetString("STORAGE_ACCESS_KEY_ID", ""),
			accessSecret:      env.GetString("STORAGE_ACCESS_SECRET", ""),
			endpoint:          env.GetString("STORAGE_ENDPOINT", ""),
			bucketName:        env.GetString("STORAGE_BUCKET_NAME", accountName),
			publicURL:         env.GetString("STORAGE_PUBLIC_URL", ""),
			uploadFolder:      env.GetString("STORAGE_UPLOAD_FOLDER", "uploads"),
			requestTimeout:    env.GetDuration("STORAGE_REQUEST_TIMEOUT", 30*time.Second),
			probeBeforeDelete: env.GetBool("STORAGE_PROBE_BEFORE_DELETE", false),
		},
		probe: probeConfig{
			enabled:     env.GetBool("STORAGE_PROBE_ENABLED", false),
			schedule:    env.GetString("STORAGE_PROBE_SCHEDULE", "*/10 * * * *"),
			sentinelKey: env.GetString("STORAGE_PROBE_SENTINEL", "healthcheck/sentinel"),
		},
		rateLimiter: ratelimiter.Config{
			RequestPerTimeForIP: env.GetInt("RATE_LIMITER_REQUEST_COUNT", 20),
			TimeFrame:           time.Minute * 5,
			Enabled:             env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		slack: slackConfig{
			webhookURL: env.GetString("SLACK_WEBHOOK_URL", ""),
			channel:    env.GetString("SLACK_CHANNEL", "#notifications"),
			username:   env.GetString("SLACK_USERNAME", "MediaAPI Bot"),
			iconEmoji:  env.GetString("SLACK_ICON_EMOJI", ":robot_face:"),
			enabled:    env.GetBool("SLACK_ENABLED", false),
		},
	}

	// Logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// Media store client
	storageClient, err := storage.NewS3Client(
		cfg.storage.endpoint,
		cfg.storage.accessKeyID,
		cfg.storage.accessSecret,
		cfg.storage.bucketName,
		cfg.storage.publicURL,
	)
	if err != nil {
		logger.Fatal("Failed to initialize storage client:", err)
	}
	logger.Info("storage client initialized")

	// Rate Limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestPerTimeForIP,
		cfg.rateLimiter.TimeFrame,
	)

	slackNotifier := notification.NewSlackNotifier(
		cfg.slack.webhookURL,
		cfg.slack.channel,
		cfg.slack.username,
		cfg.slack.iconEmoji,
		cfg.slack.enabled,
	)

	scheduler := cron.NewScheduler(logger, cfg.timezone)
	jobManager := cron.NewJobManager(logger, storageClient, slackNotifier)

	if cfg.probe.enabled {
		scheduler.Custom(
			"storage-reachability-probe",
			cfg.probe.schedule,
			jobManager.ProbeStorage(cfg.probe.sentinelKey, cfg.storage.requestTimeout),
		)
	}

	go scheduler.Start()
	defer scheduler.Stop()

	app := &application{
		config:        cfg,
		logger:        logger,
		storageClient: storageClient,
		rateLimiter:   rateLimiter,
		scheduler:     scheduler,
		slackNotifier: slackNotifier,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
