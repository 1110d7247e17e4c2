package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/game-storefront/internal/config"
	"github.com/iliyamo/game-storefront/internal/database"
	"github.com/iliyamo/game-storefront/internal/handler"
	"github.com/iliyamo/game-storefront/internal/metrics"
	"github.com/iliyamo/game-storefront/internal/middleware"
	"github.com/iliyamo/game-storefront/internal/queue"
	"github.com/iliyamo/game-storefront/internal/repository"
	"github.com/iliyamo/game-storefront/internal/router"
	"github.com/iliyamo/game-storefront/internal/service"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	if cfg.Env == "dev" {
		e.Logger.SetLevel(log.DEBUG)
	}

	rec := metrics.NewRecorder()
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := log.JSON{
				"id":      v.RequestID,
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			c.Logger().Infoj(fields)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics(rec))

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		e.Logger.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		e.Logger.Warn("redis unavailable; response cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb, rec)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	var events service.EventPublisher
	if cfg.EventsEnabled {
		pub := queue.NewPublisher(cfg.AMQPURL, e.Logger.(*log.Logger))
		pub.Metrics = rec
		events = pub

		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.CatalogLogDir, e.Logger.(*log.Logger))
		consumer.Metrics = rec
		g.Go(func() error {
			if err := consumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	svc := service.NewCatalogService(service.Stores{
		Games:      repository.NewGameRepo(db),
		Categories: repository.NewCategoryRepo(db),
		Discounts:  repository.NewDiscountRepo(db),
		Images:     repository.NewImageRepo(db),
		Reviews:    repository.NewReviewRepo(db),
		Library:    repository.NewLibraryRepo(db),
	}, events)
	h := handler.NewCatalogHandler(svc, repository.NewUserRepo(db), cache)

	router.RegisterRoutes(e, db, rec)
	router.RegisterCatalog(e, h, cfg.JWTSecret, limiter, cache.Middleware())
	router.RegisterAdmin(e, h, cfg.JWTSecret, limiter)

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	g.Go(func() error {
		addr := ":" + cfg.Port
		e.Logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		e.Logger.Errorf("server: %v", err)
	}
}
