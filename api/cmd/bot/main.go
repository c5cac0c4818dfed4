package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"landmark-lens/api/internal/config"
	"landmark-lens/api/internal/engines"
	"landmark-lens/api/internal/httpserver"
	"landmark-lens/api/internal/logging"
	"landmark-lens/api/internal/recognition"
	"landmark-lens/api/internal/store"
	"landmark-lens/api/internal/telegram"
	"landmark-lens/api/internal/util"
)

const historyRetention = 180 * 24 * time.Hour

func main() {
	cfg, cfgErr := config.Load()
	log := loggerFor(cfg)

	err := cfgErr
	if err == nil {
		err = run(cfg, log)
	}
	_ = log.Sync()
	if err != nil {
		log.Fatal("bot stopped", zap.Error(err))
	}
}

// loggerFor builds the one process logger; the env level is used only when
// config failed to load.
func loggerFor(cfg *config.Config) *zap.Logger {
	if cfg == nil {
		return logging.Must(os.Getenv("LOG_LEVEL"))
	}
	return logging.Must(cfg.LogLevel)
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.RequireTelegram(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Postgres (optional lookup history) ---
	var (
		history *store.LookupRepo
		ready   func(context.Context) error
	)
	if cfg.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("db connected", zap.String("dsn", store.SafeDSNSummary(cfg.DatabaseURL)))

		history = store.NewLookupRepo(db)
		if err := history.EnsureSchema(ctx); err != nil {
			return err
		}
		ready = db.PingContext
	}

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return err
	}
	bot.Debug = false

	engs, err := engines.Build(ctx, cfg, log)
	if err != nil {
		return err
	}

	r := &telegram.Router{
		Bot:        bot,
		Engines:    engs,
		EngManager: recognition.NewManager(engs.Default()),
		Lang:       cfg.DefaultLanguage,
		Timeout:    cfg.RequestTimeout,
		Log:        log,
	}
	if history != nil {
		r.History = history
	}

	gin.SetMode(gin.ReleaseMode)
	srv := httpserver.New(log, ready)
	updates := make(chan tgbotapi.Update, 64)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatch(gctx, r, updates, cfg.Workers) })

	// --- Choose mode: Webhook vs Polling ---
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		path, err := registerWebhook(bot, webhookURL)
		if err != nil {
			return err
		}
		srv.POST(path, webhookHandler(gctx, bot, updates, log))
		log.Info("webhook mode", zap.String("path", path))
	} else {
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.Warn("delete webhook failed", zap.Error(err))
		}
		g.Go(func() error {
			runPolling(gctx, bot, updates, log)
			return nil
		})
		log.Info("polling mode")
	}

	g.Go(func() error { return httpserver.Run(gctx, "0.0.0.0:"+cfg.Port, srv, log) })

	if history != nil {
		g.Go(func() error {
			purgeLoop(gctx, history, log)
			return nil
		})
	}

	return g.Wait()
}

// dispatch fans updates out to at most workers concurrent handlers.
func dispatch(ctx context.Context, r *telegram.Router, updates <-chan tgbotapi.Update, workers int) error {
	var g errgroup.Group
	g.SetLimit(workers)
	defer func() { _ = g.Wait() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd := <-updates:
			g.Go(func() error {
				r.HandleUpdate(ctx, upd)
				return nil
			})
		}
	}
}

func registerWebhook(bot *tgbotapi.BotAPI, baseURL string) (string, error) {
	// secret path derived from the token
	path := "/webhook/" + util.SHA256Hex([]byte(bot.Token))[:16]
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(baseURL, "/") + path)
	if err != nil {
		return "", err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return "", err
	}
	return path, nil
}

func webhookHandler(ctx context.Context, bot *tgbotapi.BotAPI, updates chan<- tgbotapi.Update, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		upd, err := bot.HandleUpdate(c.Request)
		if err != nil {
			log.Warn("bad webhook update", zap.Error(err))
			c.Status(http.StatusBadRequest)
			return
		}
		select {
		case updates <- *upd:
			c.Status(http.StatusOK)
		case <-ctx.Done():
			c.Status(http.StatusServiceUnavailable)
		}
	}
}

func purgeLoop(ctx context.Context, repo *store.LookupRepo, log *zap.Logger) {
	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for {
		n, err := repo.PurgeOlderThan(ctx, historyRetention)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("history purge failed", zap.Error(err))
		} else if n > 0 {
			log.Info("history purged", zap.Int64("rows", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 from Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, out chan<- tgbotapi.Update, log *zap.Logger) {
	offset := 0
	const (
		baseDelay = time.Second
		maxDelay  = 15 * time.Second
	)

	for {
		if ctx.Err() != nil {
			log.Info("polling: context cancelled")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling, seconds

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			log.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			if !sleep(ctx, d) {
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			select {
			case out <- upd:
			case <-ctx.Done():
				return
			}
		}

		if len(updates) == 0 && !sleep(ctx, 200*time.Millisecond) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
