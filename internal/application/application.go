package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"tooldeals/internal/config"
	"tooldeals/internal/domain/service/deal"
	"tooldeals/internal/infrastructure/notifier"
	"tooldeals/internal/infrastructure/persistence"
	"tooldeals/internal/infrastructure/sources"
	"tooldeals/internal/server"
	"tooldeals/internal/worker"
	"tooldeals/pkg/application/connectors"
	"tooldeals/pkg/application/modules"
	"tooldeals/pkg/contextx"
	"tooldeals/pkg/httpx"
	"tooldeals/pkg/logx"
	"tooldeals/pkg/middlewarex"
)

const (
	appName = "tooldeals"

	notificationBuffer      = 100
	httpShutdownTimeout     = 10 * time.Second
	httpReadHeaderTimeout   = 5 * time.Second
	outboundLogFieldMaxLen  = 2048
	asynqDefaultQueueWeight = 1
)

func Run(ctx context.Context, log *slog.Logger, version string) error {
	ctx = contextx.WithLogger(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// connectors
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}

	rd := &connectors.Redis{
		Address:        cfg.Redis.Addr,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// repositories
	dealRepo := persistence.NewDealRepository(db)
	subscriberRepo := persistence.NewSubscriberRepository(db)
	settingsRepo := persistence.NewSettingsRepository(db)

	// domain
	engine := deal.NewEngine().
		WithDiscountThreshold(cfg.Scanner.MinDiscountPercent).
		WithRetentionWindow(cfg.Scanner.RetentionWindow)

	// outbound HTTP with logging and masking
	httpClient := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(outboundLogFieldMaxLen),
		),
	}

	srcs := buildSources(ctx, cfg.Sources, httpClient)

	notifications := make(chan deal.Notification, notificationBuffer)
	scanner := worker.NewDealScanner(engine, dealRepo, srcs, cfg.Scanner, notifications)

	// notification targets
	var targets []notifier.Target
	var newsletter worker.NewsletterSender

	if cfg.Notifier.EmailEnabled() {
		targets = append(targets, notifier.NewEmailNotifier(
			cfg.Notifier.ResendAPIKey, cfg.Notifier.FromAddress, cfg.Notifier.SiteURL, subscriberRepo,
		))
		newsletter = notifier.NewNewsletter(
			cfg.Notifier.ResendAPIKey, cfg.Notifier.FromAddress, cfg.Notifier.SiteURL, dealRepo, subscriberRepo,
		)
	}

	if cfg.Notifier.TelegramEnabled() {
		bot, err := notifier.NewTelegramBot(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}
		targets = append(targets, bot)
	}

	var video *worker.VideoRefresher
	if cfg.Notifier.YouTubeChannelID != "" {
		video = worker.NewVideoRefresher(cfg.Notifier.YouTubeChannelID, settingsRepo, httpClient)
	}

	g, ctx := errgroup.WithContext(ctx)

	dispatcher := notifier.NewDispatcher(targets...)
	g.Go(func() error {
		return dispatcher.Run(ctx, notifications)
	})

	runAsynq(ctx, g, cfg, worker.NewTaskHandlers(scanner, newsletter, video))

	// HTTP API
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, outboundLogFieldMaxLen),
		middlewarex.ResponseLogging(masker, outboundLogFieldMaxLen),
	)
	server.NewServer(
		server.NewDealServer(dealRepo, settingsRepo, redisClient, cfg.Server.DealsCacheTTL),
		server.NewSubscriberServer(subscriberRepo),
	).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: httpShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          appName,
		Version:       version,
		ListenAddress: cfg.Server.ProbeAddr,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Server.MetricsAddr}.Run(ctx, g)

	log.Info("application started", slog.Int("sources", len(srcs)))

	return g.Wait()
}

func buildSources(ctx context.Context, cfg config.Sources, httpClient *http.Client) []sources.Source {
	var srcs []sources.Source

	if cfg.Amazon.Enabled() {
		srcs = append(srcs, sources.NewAmazon(cfg.Amazon, httpClient))
	}
	if cfg.Impact.Enabled() {
		srcs = append(srcs, sources.NewImpact(cfg.Impact, httpClient))
	}
	if cfg.CJ.Enabled() {
		srcs = append(srcs, sources.NewCJ(cfg.CJ, httpClient))
	}
	if cfg.Awin.Enabled() {
		srcs = append(srcs, sources.NewAwin(cfg.Awin, httpClient))
	}
	if cfg.Apify.Enabled() {
		srcs = append(srcs, sources.NewApify(cfg.Apify, httpClient))
	}

	if len(srcs) == 0 {
		contextx.LoggerFromContextOrDefault(ctx).Warn("no sources configured, scan cycles will only sweep")
	}

	return srcs
}

func runAsynq(ctx context.Context, g *errgroup.Group, cfg config.Config, handlers *worker.TaskHandlers) {
	asynqHandlers := []modules.AsynqHandler{
		{Pattern: worker.TaskDealsRefresh, Handle: handlers.HandleDealsRefresh},
	}
	schedules := []modules.AsynqSchedule{
		{Spec: cfg.Scanner.RefreshSchedule, Task: asynq.NewTask(worker.TaskDealsRefresh, nil)},
	}

	if handlers.HasNewsletter() {
		asynqHandlers = append(asynqHandlers, modules.AsynqHandler{
			Pattern: worker.TaskNewsletterSend, Handle: handlers.HandleNewsletterSend,
		})
		schedules = append(schedules, modules.AsynqSchedule{
			Spec: cfg.Scanner.NewsletterSchedule, Task: asynq.NewTask(worker.TaskNewsletterSend, nil),
		})
	}

	if handlers.HasVideo() {
		asynqHandlers = append(asynqHandlers, modules.AsynqHandler{
			Pattern: worker.TaskVideoRefresh, Handle: handlers.HandleVideoRefresh,
		})
		schedules = append(schedules, modules.AsynqSchedule{
			Spec: cfg.Scanner.VideoSchedule, Task: asynq.NewTask(worker.TaskVideoRefresh, nil),
		})
	}

	asynqConn := modules.AsynqServer{
		RedisAddress:  cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	}
	asynqConn.Run(ctx, g, modules.AsynqQueues{"default": asynqDefaultQueueWeight}, asynqHandlers...)

	modules.AsynqScheduler{
		RedisAddress:  cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g, schedules...)
}
