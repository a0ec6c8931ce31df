package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/auth"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/config"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/database"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/handler"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/logging"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/notify"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/queue"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/ratelimit"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/repository"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/router"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info(".env not found; using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New("getyoursite", cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

type stores struct {
	messages     repository.MessageStore
	publications repository.PublicationStore
	content      repository.ContentStore
}

// openStores connects to MySQL when it is configured and falls back to
// in-memory stores otherwise.
func openStores(cfg config.Config, logger *log.Logger) (stores, func(), error) {
	if !cfg.UseDatabase() {
		logger.Warn("DB_HOST or DB_NAME not set; data is kept in memory and lost on restart")
		return stores{
			messages:     repository.NewMemoryMessages(),
			publications: repository.NewMemoryPublications(),
			content:      repository.NewMemoryContent(),
		}, func() {}, nil
	}

	db, err := database.Open(database.Params{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		return stores{}, nil, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(db, logger); err != nil {
			_ = db.Close()
			return stores{}, nil, err
		}
	}
	logger.Infof("connected to MySQL %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return stores{
		messages:     repository.NewMessageRepo(db),
		publications: repository.NewPublicationRepo(db),
		content:      repository.NewContentRepo(db),
	}, func() { _ = db.Close() }, nil
}

func run(cfg config.Config, logger *log.Logger) error {
	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		return err
	}
	cacheCfg, err := config.LoadCacheConfig()
	if err != nil {
		return err
	}
	redisCfg, err := config.LoadRedisConfig()
	if err != nil {
		return err
	}

	hash := cfg.AdminPasswordHash
	if hash == "" {
		hash, err = auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		logger.Warn("ADMIN_PASSWORD_HASH not set; hashing ADMIN_PASSWORD at start-up")
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL)
	if err != nil {
		return err
	}
	authn := auth.NewAuthenticator(cfg.AdminUsername, hash, tokens)

	st, closeStores, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	// Redis is optional: without it the limiter counts in memory and public
	// reads are not cached.
	rdb, err := config.NewRedisClient(redisCfg)
	if err != nil {
		logger.Warnf("redis unavailable, continuing without it: %v", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	sched := scheduler.New(logger)

	var limiter *ratelimit.Limiter
	if rlCfg.Enabled {
		var store ratelimit.Store
		if rdb != nil && rlCfg.UseRedis {
			store = ratelimit.NewRedisStore(rdb)
		} else {
			mem := ratelimit.NewMemoryStore()
			if err := sched.Add("ratelimit-sweep", rlCfg.SweepSchedule, scheduler.SweepWindows(mem, rlCfg.Window, logger)); err != nil {
				return err
			}
			store = mem
		}
		limiter = ratelimit.New(store, rlCfg.Limit, rlCfg.Window, ratelimit.WithPrefix(rlCfg.Prefix))
	} else {
		logger.Warn("contact rate limiting disabled")
	}

	throttle := middleware.NewLoginThrottle(rlCfg.LoginEvery, rlCfg.LoginBurst)
	if err := sched.Add("login-throttle-cleanup", rlCfg.SweepSchedule, scheduler.CleanupLogins(throttle, rlCfg.LoginIdle, logger)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer := notify.New(notify.Settings{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
		To:   cfg.MailTo,
	}, logger)
	if !cfg.MailConfigured() {
		logger.Warn("SMTP_USER or SMTP_PASS not set; contact notifications are only logged")
	}

	notifier := mailer
	var consumerDone chan struct{}
	if cfg.UseQueue() {
		notifier = queue.NewPublisher(cfg.RabbitMQURL, cfg.ContactQueue)
		consumer := queue.NewConsumer(cfg.RabbitMQURL, cfg.ContactQueue, mailer, logger, cfg.NotifyTimeout)
		consumerDone = make(chan struct{})
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("contact consumer stopped: %v", err)
			}
		}()
	}

	contact := handler.NewContactHandler(st.messages, notifier, cfg.MailConfigured(), cfg.NotifyTimeout)
	content := handler.NewContentHandler(st.content)
	pubs := handler.NewPublicationsHandler(st.publications)

	gate := router.Gate{
		Limiter:       limiter,
		FailClosed:    rlCfg.FailClosed,
		Cache:         middleware.NewResponseCache(cacheCfg, rdb),
		Tokens:        authn,
		LoginThrottle: throttle,
		Timeout:       cfg.HandlerTimeout,
	}
	e := router.New(logger, cfg.TrustProxy)
	router.RegisterRoutes(e)
	router.RegisterPublic(e, gate, contact, content, pubs)
	router.RegisterAdmin(e, gate, handler.NewAuthHandler(authn), content, handler.NewMessagesHandler(st.messages), pubs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sched.Start()
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (env=%s)", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		stop()
		return fmt.Errorf("listen: %w", err)
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	contact.Wait()
	sched.Stop(sctx)
	if consumerDone != nil {
		select {
		case <-consumerDone:
		case <-sctx.Done():
		}
	}
	logger.Info("server stopped")
	return nil
}
