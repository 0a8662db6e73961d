package server

import (
	"net/http"

	"github.com/aikoandre/Chutes-Proxy/internal/config"
	"github.com/aikoandre/Chutes-Proxy/internal/constants"
	mw "github.com/aikoandre/Chutes-Proxy/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Build constructs the Gin engine exposing the OpenAI-compatible surface.
func Build(cfg *config.Config) *gin.Engine {
	engine := gin.New()
	applyStandardEngineSettings(engine, cfg)

	RegisterOpenAIRoutes(engine, cfg)

	// Liveness endpoints. Neither touches the upstream.
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "chutes-proxy",
			"version": constants.GetVersion(),
		})
	})
	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.GET("/metrics", mw.MetricsHandler)

	return engine
}

// applyStandardEngineSettings applies the Gin settings and the middleware
// chain shared by every route.
func applyStandardEngineSettings(engine *gin.Engine, cfg *config.Config) {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	_ = engine.SetTrustedProxies([]string{})

	engine.Use(mw.Recovery(), mw.RequestID(), mw.Metrics())
	engine.Use(mw.CORS())
	engine.Use(mw.RequestLogger())
}
