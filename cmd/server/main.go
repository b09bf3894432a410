// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/aws"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/config"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/database"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/httpx"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/observability"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/stripeapi"
	notifydriver "github.com/KDR9MGR/beautyfetch-user-sub003/internal/functions/notify-driver"
	notifymerchant "github.com/KDR9MGR/beautyfetch-user-sub003/internal/functions/notify-merchant"
	notifyuser "github.com/KDR9MGR/beautyfetch-user-sub003/internal/functions/notify-user"
	stripepayment "github.com/KDR9MGR/beautyfetch-user-sub003/internal/functions/stripe-payment"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting notification function server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init delivery clients (optional channels stay nil when disabled) ---
	var email notifyuser.EmailSender
	if cfg.Notifications.AWS.SES.Enabled {
		ses, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.AWS.SES.FromEmail)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		email = ses
		zapLog.Info("SES email delivery enabled")
	}

	var push notifyuser.PushSender
	if cfg.Notifications.AWS.SNS.Enabled {
		sns, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.AWS.SNS.TopicARNPrefix)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		push = sns
		zapLog.Info("SNS push delivery enabled")
	}

	stripeClient := stripeapi.NewClient(cfg.Stripe.SecretKey)

	// --- Build function handlers ---
	userCfg := notifyuser.LoadConfig()
	userCfg.EmailDelivery = cfg.Notifications.AWS.SES.Enabled
	userCfg.PushDelivery = cfg.Notifications.AWS.SNS.Enabled
	userCfg.CacheTTL = time.Duration(cfg.Notifications.PreferenceCacheTTL) * time.Second
	userHandler := notifyuser.NewHandler(userCfg, pg.DB, redis.Client, log, email, push)

	merchantHandler := notifymerchant.NewHandler(notifymerchant.LoadConfig(), pg.DB, log)
	driverHandler := notifydriver.NewHandler(notifydriver.LoadConfig(), pg.DB, log)

	paymentCfg := stripepayment.LoadConfig()
	paymentCfg.SecretKey = cfg.Stripe.SecretKey
	paymentHandler := stripepayment.NewHandler(paymentCfg, stripeClient, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(httpx.CORS)

	r.Route("/functions/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/"+notifyuser.FunctionName,
			httpx.Instrument(notifyuser.FunctionName, userHandler))
		r.Method(http.MethodPost, "/"+notifymerchant.FunctionName,
			httpx.Instrument(notifymerchant.FunctionName, merchantHandler))
		r.Method(http.MethodPost, "/"+notifydriver.FunctionName,
			httpx.Instrument(notifydriver.FunctionName, driverHandler))
		r.Method(http.MethodPost, "/"+stripepayment.FunctionName,
			httpx.Instrument(stripepayment.FunctionName, paymentHandler))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := pg.Ping(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Server.RequestTimeout)*time.Millisecond + 5*time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
