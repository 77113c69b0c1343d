// Command server runs the gatehouse portal API: homeowner registration, vehicle
// stickers and the dues ledger, plus the background maintenance jobs.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"gatehouse/internal/admin"
	dueshandler "gatehouse/internal/dues/handler"
	duesmetrics "gatehouse/internal/dues/metrics"
	duesservice "gatehouse/internal/dues/service"
	jwttoken "gatehouse/internal/jwt_token"
	"gatehouse/internal/notification"
	"gatehouse/internal/notification/queue"
	"gatehouse/internal/notification/sender"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/database"
	"gatehouse/internal/platform/health"
	"gatehouse/internal/platform/idempotency"
	"gatehouse/internal/platform/kafka/producer"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/platform/metrics"
	platformredis "gatehouse/internal/platform/redis"
	"gatehouse/internal/platform/tracer"
	"gatehouse/internal/ratelimit"
	reghandler "gatehouse/internal/registration/handler"
	regmetrics "gatehouse/internal/registration/metrics"
	regservice "gatehouse/internal/registration/service"
	"gatehouse/internal/scheduler"
	"gatehouse/internal/seeder"
	httptransport "gatehouse/internal/transport/http"
	"gatehouse/internal/vehicle/codegen"
	vehiclehandler "gatehouse/internal/vehicle/handler"
	vehiclemetrics "gatehouse/internal/vehicle/metrics"
	vehicleservice "gatehouse/internal/vehicle/service"
	"gatehouse/pkg/platform/circuit"
	request "gatehouse/pkg/platform/middleware/request"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gatehouse:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close() //nolint:errcheck // process is exiting
	st := newStores(pool)

	rdb, err := platformredis.Open(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var (
		idemStore idempotency.Store = idempotency.NewMemory()
		limiter   ratelimit.Store   = ratelimit.NewMemory()
	)
	if rdb != nil {
		defer rdb.Close() //nolint:errcheck // process is exiting
		idemStore = rdb.Idempotency()
		limiter = rdb.RateLimit()
		prometheus.MustRegister(platformredis.NewPoolCollector(rdb))
	}

	mailSender, closeSender, err := newSender(cfg, log)
	if err != nil {
		return err
	}
	defer closeSender()
	mailQueue := queue.New(mailSender,
		queue.WithLogger(log),
		queue.WithMetrics(queue.NewMetrics()),
		queue.WithQueueSize(cfg.Notification.QueueSize),
		queue.WithWorkers(cfg.Notification.Workers),
		queue.WithSendTimeout(cfg.Notification.SendTimeout),
	)
	notifier := notification.New(mailQueue, cfg.Notification.FromAddress, cfg.Notification.PortalURL, log)
	tr := tracer.NewOTel()

	registrations := regservice.New(st.registrations, st.residents, st.accounts,
		regservice.WithLogger(log),
		regservice.WithAuditEmitter(st.audit),
		regservice.WithMetrics(regmetrics.New()),
		regservice.WithNotifier(notifier),
		regservice.WithTracer(tr),
		regservice.WithTx(st.registrationTx),
	)
	vehicles := vehicleservice.New(st.vehicles, st.stickers, st.vehicleRequests, st.residents,
		vehicleservice.WithLogger(log),
		vehicleservice.WithAuditEmitter(st.audit),
		vehicleservice.WithMetrics(vehiclemetrics.New()),
		vehicleservice.WithNotifier(notifier),
		vehicleservice.WithTracer(tr),
		vehicleservice.WithCodeOptions(
			codegen.WithPrefix(cfg.Sticker.CodePrefix),
			codegen.WithMaxAttempts(cfg.Sticker.MaxAttempts),
		),
	)
	dues := duesservice.New(st.duesConfigs, st.duesPayments, st.duesLedger, st.residents,
		duesservice.WithLogger(log),
		duesservice.WithAuditEmitter(st.audit),
		duesservice.WithMetrics(duesmetrics.New()),
		duesservice.WithNotifier(notifier),
		duesservice.WithTracer(tr),
		duesservice.WithTx(st.duesTx),
	)

	if cfg.Server.DemoSeed {
		if err := seeder.New(st.residents, st.accounts, st.duesConfigs, log).SeedAll(ctx, time.Now()); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	platformMetrics := metrics.New()
	dashboard := admin.NewService(registrations, vehicles, dues, vehicles,
		admin.WithMetrics(platformMetrics),
		admin.WithAuditReader(st.audit),
	)

	probes := health.New(cfg.Server.Environment)
	if pool != nil {
		probes.RegisterCheck("database", pool.Health)
	}
	if rdb != nil {
		probes.RegisterCheck("redis", rdb.Health)
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenTTL)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:          log,
		Validator:       jwttoken.NewJWTServiceAdapter(jwtService),
		Health:          probes,
		Metrics:         promhttp.Handler(),
		RequestMetrics:  request.NewMetrics(),
		Idempotency:     idemStore,
		IdempotencyTTL:  cfg.Redis.IdempotencyTTL,
		RateLimit:       limiter,
		RateLimitMax:    cfg.RateLimit.Submissions,
		RateLimitWindow: cfg.RateLimit.Window,
		CORSOrigins:     cfg.Server.CORSAllowedOrigins,
		RequestTimeout:  cfg.Server.RequestTimeout,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		Modules: []httptransport.ModuleRoutes{
			reghandler.New(registrations, log),
			vehiclehandler.New(vehicles, log),
			dueshandler.New(dues, log),
		},
		Dashboard: admin.New(dashboard, log),
	})

	jobs := scheduler.New(scheduler.WithLogger(log), scheduler.WithMetrics(platformMetrics))
	if cfg.Scheduler.Enabled {
		if err := jobs.Add(scheduler.StickerExpiryJob(cfg.Scheduler.ExpirySchedule, vehicles, log)); err != nil {
			return err
		}
		if err := jobs.Add(scheduler.LedgerReconcileJob(cfg.Scheduler.ReconcileSchedule, dues, log)); err != nil {
			return err
		}
		jobs.Start()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	log.Info("starting gatehouse",
		"addr", cfg.Server.Addr,
		"env", cfg.Server.Environment,
		"database", pool != nil,
		"redis", rdb != nil,
		"notify_driver", cfg.Notification.Driver,
		"version", health.Version,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if err := jobs.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler shutdown: %w", err))
		}
		// Drain after the server stops so in-flight decisions still notify.
		if err := mailQueue.Close(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("notification queue: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// newSender picks the notification transport named by NOTIFY_DRIVER. Remote
// transports sit behind a circuit breaker. The returned close func releases
// broker connections.
func newSender(cfg *config.Config, log *slog.Logger) (queue.Sender, func(), error) {
	var (
		transport sender.Transport
		closeFn   = func() {}
	)
	switch cfg.Notification.Driver {
	case "http":
		transport = sender.NewRelay(cfg.Notification.RelayURL, cfg.Notification.SendTimeout)
	case "kafka":
		p, err := producer.New(cfg.Kafka, log)
		if err != nil {
			return nil, nil, err
		}
		transport = sender.NewKafka(p, cfg.Kafka.NotificationTopic)
		closeFn = func() { _ = p.Close() }
	case "rabbitmq":
		s, err := sender.DialRabbitMQ(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
		if err != nil {
			return nil, nil, err
		}
		transport = s
		closeFn = func() { _ = s.Close() }
	default:
		return sender.NewLog(log), closeFn, nil
	}
	breaker := circuit.New("notify_"+cfg.Notification.Driver, circuit.WithCooldown(cfg.Notification.SendTimeout*3))
	return sender.NewGuarded(transport, breaker, log), closeFn, nil
}
