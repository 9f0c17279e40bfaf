package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"godsendjoseph.dev/media-api/internal/cron"
	"godsendjoseph.dev/media-api/internal/notification"
	ratelimiter "godsendjoseph.dev/media-api/internal/rateLimiter"
	"godsendjoseph.dev/media-api/internal/storage"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	storageClient storage.Client
	rateLimiter   ratelimiter.Limiter
	scheduler     *cron.Scheduler
	slackNotifier *notification.SlackNotifier
}

type config struct {
	addr          string
	env           string
	timezone      string
	maxUploadSize int64
	storage       storageConfig
	probe         probeConfig
	rateLimiter   ratelimiter.Config
	slack         slackConfig
}

type storageConfig struct {
	accessKeyID       string
	accessSecret      string
	endpoint          string
	bucketName        string
	publicURL         string
	uploadFolder      string
	requestTimeout    time.Duration
	probeBeforeDelete bool
}

type probeConfig struct {
	enabled     bool
	schedule    string
	sentinelKey string
}

type slackConfig struct {
	webhookURL string
	channel    string
	username   string
	iconEmoji  string
	enabled    bool
}

func (app *application) mount() http.Handler {
	router := chi.NewRouter()

	// middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// cors
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Use(app.RateLimiterMiddleware)

	router.Use(middleware.Timeout(60 * time.Second))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.notFoundResponse(w, r, errors.New("route not found"))
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.methodNotAllowedResponse(w, r, errors.New("method not allowed"))
	})

	// routes
	app.registerRoutes(router)

	return router
}

func (app *application) run(mux http.Handler) error {
	server := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		app.logger.Infow("signals caught", "signal", s.String())

		shutdown <- server.Shutdown(ctx)
	}()

	app.logger.Infow("Server has started", "addr", app.config.addr, "env", app.config.env)

	err := server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("Server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
