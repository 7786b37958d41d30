package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rogerio-castellano/inventory-billing/internal/alerts"
	"github.com/rogerio-castellano/inventory-billing/internal/auth"
	"github.com/rogerio-castellano/inventory-billing/internal/billing"
	"github.com/rogerio-castellano/inventory-billing/internal/config"
	"github.com/rogerio-castellano/inventory-billing/internal/db"
	"github.com/rogerio-castellano/inventory-billing/internal/events"
	"github.com/rogerio-castellano/inventory-billing/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-billing/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-billing/internal/http/router"
	"github.com/rogerio-castellano/inventory-billing/internal/logger"
	"github.com/rogerio-castellano/inventory-billing/internal/redissvc"
	"github.com/rogerio-castellano/inventory-billing/internal/report"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"github.com/rogerio-castellano/inventory-billing/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type stores struct {
	products  repo.ProductRepository
	bills     repo.BillRepository
	movements repo.MovementRepository
	users     repo.UserRepository
	requests  repo.AccessRequestRepository
	health    map[string]handlers.HealthCheck
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.Mongo.Database)
		if err := db.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			products:  repo.NewMongoProductRepository(database),
			bills:     repo.NewMongoBillRepository(database),
			movements: repo.NewMongoMovementRepository(database),
			users:     repo.NewMongoUserRepository(database),
			requests:  repo.NewMongoAccessRequestRepository(database),
			health:    map[string]handlers.HealthCheck{"mongo": mongoPing(client)},
			close:     func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(database); err != nil {
			_ = database.Close()
			return nil, err
		}
		return &stores{
			products:  repo.NewPostgresProductRepository(database),
			bills:     repo.NewPostgresBillRepository(database),
			movements: repo.NewPostgresMovementRepository(database),
			users:     repo.NewPostgresUserRepository(database),
			requests:  repo.NewPostgresAccessRequestRepository(database),
			health:    map[string]handlers.HealthCheck{"postgres": postgresPing(database)},
			close:     func() { _ = database.Close() },
		}, nil
	}

	products := repo.NewInMemoryProductRepository()
	return &stores{
		products:  products,
		bills:     repo.NewInMemoryBillRepository(products),
		movements: repo.NewInMemoryMovementRepository(),
		users:     repo.NewInMemoryUserRepository(),
		requests:  repo.NewInMemoryAccessRequestRepository(),
		health:    map[string]handlers.HealthCheck{},
		close:     func() {},
	}, nil
}

func mongoPing(client *mongo.Client) handlers.HealthCheck {
	return func(ctx context.Context) error { return client.Ping(ctx, nil) }
}

func postgresPing(database *sql.DB) handlers.HealthCheck {
	return database.PingContext
}

// @title Inventory Billing API
// @version 1.0
// @description REST API for products, stock-checked bills and users.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := run(ctx, cfg); err != nil {
		zap.L().Fatal("❌ Server stopped with error", zap.Error(err))
	}
}

// bootstrap loads the configuration and installs the zap logger. Until it
// returns, errors can only go through the standard logger.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.App.Env, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	defer func() { _ = zap.L().Sync() }()

	if cfg.Telemetry.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry.ServiceName, os.Stdout)
		if err != nil {
			return err
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		zap.L().Fatal("❌ Could not connect to the store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.close()
	zap.L().Info("✅ Store ready", zap.String("driver", cfg.Store.Driver))

	g, gctx := errgroup.WithContext(ctx)

	mailer := alerts.NewMailer(cfg.Alerts.SMTP)
	var notifier alerts.Notifier = alerts.NewMemoryLog(mailer)
	if cfg.Redis.Addr != "" {
		redisService, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zap.L().Fatal("❌ Could not connect to Redis", zap.Error(err))
		}
		defer redisService.Close()

		redisLog := alerts.NewRedisLog(redisService, mailer)
		notifier = redisLog
		st.health["redis"] = redisService.Ping
		g.Go(func() error {
			redisLog.StartDailySummary(gctx)
			return nil
		})
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Nats.URL != "" {
		nc, err := events.NewClient(cfg.Nats.URL, cfg.Nats.Timeout)
		if err != nil {
			zap.L().Fatal("❌ Could not connect to NATS", zap.Error(err))
		}
		defer nc.Drain()

		js, err := events.NewJetStream(ctx, nc)
		if err != nil {
			zap.L().Fatal("❌ Could not set up JetStream", zap.Error(err))
		}
		publisher = events.NewNatsPublisher(js)
		st.health["nats"] = natsStatus(nc)
	}

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := auth.NewService(st.users)
	created, err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		zap.L().Info("👤 Bootstrap admin created", zap.String("email", cfg.Auth.AdminEmail))
	}

	handlers.SetProductRepo(st.products)
	handlers.SetMovementRepo(st.movements)
	handlers.SetUserRepo(st.users)
	handlers.SetAccessRequestRepo(st.requests)
	handlers.SetAuthService(authService)
	handlers.SetBillingService(billing.NewService(st.products, st.bills, st.movements, notifier, publisher))
	handlers.SetReportService(report.NewService(st.products, st.bills))
	handlers.SetNotifier(notifier)
	handlers.SetHealthChecks(st.health)

	rl.Configure(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	g.Go(func() error {
		rl.StartVisitorCleanupLoop(gctx)
		return nil
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		zap.L().Info("✅ Server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("🛑 Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func natsStatus(nc *nats.Conn) handlers.HealthCheck {
	return func(context.Context) error {
		if !nc.IsConnected() {
			return errors.New("nats connection is " + nc.Status().String())
		}
		return nil
	}
}
