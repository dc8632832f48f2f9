package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blogsphere/blogsphere/handlers"
	"github.com/blogsphere/blogsphere/internal/config"
	"github.com/blogsphere/blogsphere/internal/database"
	"github.com/blogsphere/blogsphere/internal/googleauth"
	postrepo "github.com/blogsphere/blogsphere/internal/posts/repository"
	postservice "github.com/blogsphere/blogsphere/internal/posts/service"
	"github.com/blogsphere/blogsphere/internal/tokens"
	"github.com/blogsphere/blogsphere/internal/users"
	"github.com/blogsphere/blogsphere/pkg/logger"
	"github.com/blogsphere/blogsphere/pkg/metrics"
	"github.com/blogsphere/blogsphere/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v google=%v frontend=%s", cfg.MongoDB.URI != "", cfg.Google.ClientID != "", cfg.CORS.FrontendURL)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS(cfg.CORS.FrontendURL))
	r.Use(gin.Logger(), gin.Recovery())

	// shared runtime vars used by the readiness endpoint
	var userSvc *users.Service
	var postSvc *postservice.Service

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only once the store-backed services are wired
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"users": userSvc != nil,
			"posts": postSvc != nil,
		}
		if !deps["users"] || !deps["posts"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	ctx := context.Background()

	// Connect to MongoDB with retry/backoff to tolerate startup races; an
	// unreachable store at startup is fatal.
	const maxAttempts = 5
	backoff := time.Second
	var db *database.DB
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, errConn = database.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = db.Close(ctx) }()

	userRepo := users.NewMongoRepository(db.Database.Collection("users"))
	userSvc = users.NewService(userRepo)
	postRepo := postrepo.NewMongoRepository(db.Database.Collection("posts"))
	postSvc = postservice.New(postRepo)

	issuer := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	google := googleauth.New(ctx, cfg.Google)
	requireAuth := middleware.RequireAuth(issuer, userSvc)

	root := r.Group("/")
	handlers.NewAuthHandler(cfg, google, userSvc, issuer).Register(root, requireAuth)
	handlers.NewPostsHandler(postSvc, userSvc).Register(root, requireAuth)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting blogsphere api on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
