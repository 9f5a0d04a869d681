package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eadsgraphic/vizreport/handlers"
	"github.com/eadsgraphic/vizreport/internal/config"
	"github.com/eadsgraphic/vizreport/internal/database"
	"github.com/eadsgraphic/vizreport/internal/report"
	"github.com/eadsgraphic/vizreport/internal/server"
	"github.com/eadsgraphic/vizreport/internal/storage"
	"github.com/eadsgraphic/vizreport/internal/visualization/handler"
	"github.com/eadsgraphic/vizreport/internal/visualization/service"
	"github.com/eadsgraphic/vizreport/pkg/logger"
	"github.com/eadsgraphic/vizreport/pkg/metrics"
	"github.com/eadsgraphic/vizreport/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownGrace = 10 * time.Second

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v report=%v tls=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Addr() != "", cfg.MinIO.Enabled(), cfg.Report.Enabled, cfg.TLS.Enabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors())
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	deps := map[string]handlers.Pinger{}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s unreachable: %v", addr, err)
		}
	}
	if cfg.RateLimit.Enabled {
		rps := float64(cfg.RateLimit.RPS)
		if cfg.RateLimit.UseRedis && rdb != nil {
			r.Use(middleware.RedisRateLimitMiddleware(rdb, rps, cfg.RateLimit.Burst, cfg.RateLimit.Window))
			deps["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		} else {
			r.Use(middleware.RateLimitMiddleware(rps, cfg.RateLimit.Burst))
		}
	}

	var svc *service.Service
	var db *mongo.Database
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, database.ConnectMongo, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db = client.Database(cfg.MongoDB.Database)
		svc = service.NewMongoService(db.Collection(cfg.MongoDB.Collection))
		logger.Infof("using MongoDB collection %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	} else {
		svc = service.NewMemoryService()
	}
	deps["storage"] = svc

	handlers.RegisterHealth(r, deps, 2*time.Second)
	handlers.RegisterSwagger(r)
	handler.RegisterVisualizationRoutes(r, svc)

	if cfg.Report.Enabled {
		if closer := registerReports(ctx, r, cfg, svc, db); closer != nil {
			defer closer()
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := server.Run(ctx, srv, server.NewTransport(cfg.TLS), shutdownGrace); err != nil {
		logger.Errorf("server failed: %v", err)
		stop()
		os.Exit(1)
	}
	logger.Infof("server stopped")
}

// registerReports wires the PDF report routes. It returns a cleanup func, or
// nil when the renderer could not start. db may be nil.
func registerReports(ctx context.Context, r gin.IRouter, cfg *config.Config, svc *service.Service, db *mongo.Database) func() {
	renderer, err := report.NewChromeRenderer(report.ChromeOptions{
		ExecPath:  cfg.Report.ChromePath,
		NoSandbox: cfg.Report.NoSandbox,
		Timeout:   cfg.Report.Timeout,
	})
	if err != nil {
		logger.Warnf("reports disabled: %v", err)
		return nil
	}

	var store report.ArtifactStore
	if cfg.MinIO.Enabled() {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("report storage disabled: %v", err)
		} else {
			store = s
		}
	}

	rs := report.NewService(svc, renderer, store, cfg.Report.URLExpiry)
	if store != nil && db != nil {
		rs.WithIndex(report.NewMongoIndex(db.Collection("reports")))
	}
	report.RegisterReportRoutes(r, rs)
	logger.Infof("reports enabled (stored=%v)", store != nil)
	return func() { _ = renderer.Close() }
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, "+middleware.FirmHeader)
		h.Set("Access-Control-Expose-Headers", "Content-Length, X-Report-Key, X-Report-URL")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
