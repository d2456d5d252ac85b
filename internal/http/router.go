// Package httpapi wires the HTTP transport (Gin) to the post service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, error
// translation, metrics, compression, CORS, security headers and idempotency.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Every failure leaves through one translator as an envelope
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/campus-pulse/docs" // registers the OpenAPI document
	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/categories"
	"github.com/tbourn/campus-pulse/internal/config"
	"github.com/tbourn/campus-pulse/internal/http/envelope"
	"github.com/tbourn/campus-pulse/internal/http/handlers"
	"github.com/tbourn/campus-pulse/internal/http/middleware"
	"github.com/tbourn/campus-pulse/internal/services"
)

const metricsPath = "/metrics"

// Methods and headers accepted from browsers.
var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		"X-Request-ID", "If-None-Match", middleware.HeaderIdempotencyKey,
	}
	corsExpose = []string{
		"X-Request-ID", "ETag", "Content-Length", middleware.HeaderIdempotentReplayed,
	}
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), error translation,
// compression, CORS and security headers, idempotency, health and metrics
// endpoints, optional Swagger UI, and then mounts the public API under
// cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access log with redaction
//  4. Gzip: wraps the writer before anything below may write
//  5. Recovery: panics become a 500 envelope
//  6. Metrics
//  7. Errors: raised errors become envelopes
//  8. Origin allowlist, CORS and Security headers
//  9. Body size limiter
//  10. Idempotency-Key validation
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cats *categories.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	handlers.RegisterBindingTagNames()

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.Logger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Response compression (Prometheus negotiates its own)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{metricsPath})))

	// 5) Panic recovery to a 500 envelope
	r.Use(middleware.Recovery())

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics(metricsPath))
	r.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	// 7) Global error translators
	r.Use(middleware.Errors())

	// 8) CORS posture and security headers; foreign origins are refused
	// with an envelope before gin-contrib/cors can answer with a bare 403
	r.Use(middleware.OriginAllowlist(cfg.CORS.AllowedOrigins))
	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Global body size limit
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	// 10) Idempotency-Key validation
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, apierr.HTTP(http.StatusNotFound, "Not Found"))
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, apierr.HTTP(http.StatusMethodNotAllowed, "Method Not Allowed"))
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) {
		envelope.JSON(c, http.StatusOK, "Service is healthy.", "Service is healthy.", gin.H{"status": "ok"})
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: service ← db/categories
	svc := services.NewPostService(db, cats)
	svc.IdempotencyTTL = cfg.IdempotencyTTL
	h := handlers.New(svc, cfg.MaxListLimit)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/categories", h.ListCategories)

		api.POST("/posts", h.CreatePost)
		api.GET("/posts", h.ListPosts)
		api.POST("/posts/:post_id/flag", h.FlagPost)
	}
}

// corsConfig allows every origin when no allowlist is configured, echoing the
// request Origin so credentials stay usable. With an allowlist only those
// origins are echoed.
func corsConfig(cc config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    corsExpose,
		AllowCredentials: cc.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(cc.AllowedOrigins) == 0 {
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = cc.AllowedOrigins
	}
	return c
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
