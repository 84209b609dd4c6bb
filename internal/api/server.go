package api

import (
	"context"
	"fmt"

	"shiningstar/internal/app/config"
	"shiningstar/internal/app/distance"
	"shiningstar/internal/app/filestore"
	"shiningstar/internal/app/handler"
	"shiningstar/internal/app/logger"
	"shiningstar/internal/app/metrics"
	"shiningstar/internal/app/middleware"
	"shiningstar/internal/app/payment"
	"shiningstar/internal/app/quote"
	"shiningstar/internal/app/redis"
	"shiningstar/internal/app/repository"
	"shiningstar/internal/app/storage"
	"shiningstar/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OpenStore открывает хранилище, выбранное в storage.driver
func OpenStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return repository.New(cfg.Storage.DSN)
	case config.StorageDriverFile:
		return filestore.NewFileRepository(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func StartServer() error {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg.Log)
	ctx := context.Background()

	store, err := OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	defer store.Close()
	logrus.WithField("driver", cfg.Storage.Driver).Info("store opened")

	var (
		blacklist middleware.TokenBlacklist
		cache     distance.Cache
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		blacklist, cache = redisClient, redisClient
	} else {
		logrus.Warn("redis is not configured: token revocation and the distance cache are disabled")
	}

	var images handler.ImageStore
	if cfg.Minio.Enabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.Minio)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
		images = minioClient
	} else {
		logrus.Warn("minio is not configured: image uploads are disabled")
	}

	resolver, err := distance.FromConfig(cfg.Distance, cache)
	if err != nil {
		return err
	}

	engine := quote.NewEngine(quote.PricingConfig(cfg.Pricing))
	processor := payment.NewProcessor(store, payment.Business{
		Name:    cfg.Business.Name,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
		Email:   cfg.Business.Email,
	}, cfg.Pricing.TaxRate)

	authMiddleware := middleware.NewAuthMiddleware(blacklist, cfg)
	h := handler.NewHandler(store, engine, resolver, images, processor, cfg)
	authHandler := handler.NewAuthHandler(store, authMiddleware, cfg)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery(), cors.New(corsConfig(cfg.CORS)), metrics.Instrument())
	h.RegisterRoutes(router, authMiddleware, authHandler)

	return pkg.NewApp(cfg, router).RunApp()
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	if len(c.AllowOrigins) == 0 || (len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*") {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = c.AllowOrigins
	cc.AllowCredentials = true
	return cc
}
