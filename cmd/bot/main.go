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

	"github.com/getsentry/sentry-go"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayneshih/threec-bot/internal/bot"
	"github.com/wayneshih/threec-bot/internal/bot/handlers"
	"github.com/wayneshih/threec-bot/internal/completion"
	"github.com/wayneshih/threec-bot/internal/dedup"
	apperrors "github.com/wayneshih/threec-bot/internal/errors"
	"github.com/wayneshih/threec-bot/internal/health"
	"github.com/wayneshih/threec-bot/internal/messaging"
	"github.com/wayneshih/threec-bot/internal/policy"
	"github.com/wayneshih/threec-bot/internal/ratelimit"
	"github.com/wayneshih/threec-bot/internal/state"
	"github.com/wayneshih/threec-bot/internal/wishlist"
	"github.com/wayneshih/threec-bot/pkg/config"
	"github.com/wayneshih/threec-bot/pkg/graceful"
	"github.com/wayneshih/threec-bot/pkg/logger"
	"github.com/wayneshih/threec-bot/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:         cfg.Log.Level,
		File:          cfg.Log.File,
		FileMaxSizeMB: cfg.Log.FileMaxSizeMB,
		FileMaxAge:    cfg.Log.FileMaxAge,
		SentryEnabled: cfg.Sentry.Enabled,
	})

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	log.Info("starting 3c assistant bot",
		slog.String("env", cfg.AppEnv),
		slog.Int("port", cfg.Server.Port))

	store := state.NewMemoryStore()

	cleaner := state.NewCleaner(store, log, cfg.State.TTL, cfg.State.CleanInterval)
	go cleaner.Run(ctx)
	go metrics.NewIntentCollector(store).Run(ctx)

	classifier := policy.New(policy.Mode(cfg.Policy.Mode), cfg.Policy.KeywordsFile, log)
	go func() {
		if err := classifier.Watch(ctx); err != nil {
			log.Warn("policy watcher stopped", slog.Any("error", err))
		}
	}()

	guard := dedup.NewGuard(time.Hour)
	go guard.Run(ctx, 10*time.Minute)

	limiter := ratelimit.New(cfg.RateLimit.Limit, cfg.RateLimit.Window, log)
	go limiter.Run(ctx, time.Minute)

	wl, err := wishlist.NewStore(cfg.Wishlist.Dir)
	if err != nil {
		return fmt.Errorf("init wishlist store: %w", err)
	}

	completer := completion.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Timeout, log)

	sender, err := messaging.NewLineSender(cfg.Line.ChannelToken)
	if err != nil {
		return fmt.Errorf("init messaging client: %w", err)
	}
	replies := messaging.NewDispatcher(sender, log)

	dispatcher := bot.NewDispatcher()
	dispatcher.Register(state.IntentSpecQuery, handlers.NewSpecQuery(completer, log))
	dispatcher.Register(state.IntentPriceQuery, handlers.NewPriceQuery(completer, log))
	dispatcher.Register(state.IntentCompare, handlers.NewCompare(completer, log))
	dispatcher.Register(state.IntentRecommend, handlers.NewRecommend(completer, classifier, log))
	dispatcher.Register(state.IntentRanking, handlers.NewRanking(completer, log))
	dispatcher.Register(state.IntentReview, handlers.NewReview(completer, log))

	router := bot.NewRouter(store, dispatcher, wl, replies, cfg.State.TTL, log)
	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)

	pipeline := bot.Chain(router.Handle,
		bot.RecoveryMiddleware(log, store, replies),
		bot.ErrorHandlingMiddleware(errHandler, replies),
		bot.LoggingMiddleware(log),
		bot.MetricsMiddleware(),
	)

	b := bot.New(cfg.Line.ChannelSecret, pipeline, guard, limiter, replies, log)

	checker := health.NewChecker(log)
	checker.AddCheck("wishlist", health.NewWishlistDirChecker(cfg.Wishlist.Dir))
	checker.AddCheck("completion", health.NewCompletionConfigChecker(cfg.OpenAI.APIKey))
	if api, err := messaging_api.NewMessagingApiAPI(cfg.Line.ChannelToken); err == nil {
		checker.AddCheck("line", health.NewLineChecker(api))
	}

	mux := http.NewServeMux()
	mux.Handle("/callback", logger.Middleware(http.HandlerFunc(b.Callback)))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", checker.Handler())

	srv := graceful.NewServer(log, &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}, cfg.Server.ShutdownTimeout)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("3c assistant bot stopped")
	return nil
}
