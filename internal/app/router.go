package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/api/generated"
	"incidentlens.io/lens/internal/api/handlers"
	"incidentlens.io/lens/internal/api/middleware"
	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/metrics"
)

// apiBasePath prefixes every query route.
const apiBasePath = "/api"

// defaultAllowedOrigins are the local frontend dev servers.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func newRouter(cfg *config.Config, server *handlers.Server, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
	)
	if m != nil {
		router.Use(middleware.Metrics(m))
	}
	router.Use(cors.New(buildCORSConfig(cfg)), middleware.ErrorHandler())
	if cfg.OpenAPI.ValidateRequests {
		router.Use(middleware.MustOpenAPIValidator(apiBasePath))
	}

	router.GET("/", server.GetRoot)
	if m != nil && cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(m.Handler()))
	}

	generated.RegisterHandlersWithOptions(router, server, generated.GinServerOptions{
		BaseURL:      apiBasePath,
		ErrorHandler: handlers.ParamErrorHandler,
	})
	return router
}

// buildCORSConfig derives the CORS policy from server settings. A "*"
// origin only takes effect with UnsafeAllowAllOrigins, which also turns off
// credentials since browsers reject that combination.
func buildCORSConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.Server.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}

	if cfg.Server.UnsafeAllowAllOrigins {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
		return corsCfg
	}

	origins := make([]string, 0, len(cfg.Server.AllowedOrigins))
	for _, origin := range cfg.Server.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" || origin == "*" {
			continue
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		origins = append(origins, defaultAllowedOrigins...)
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}
