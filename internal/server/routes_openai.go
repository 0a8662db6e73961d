package server

import (
	"github.com/aikoandre/Chutes-Proxy/internal/config"
	oh "github.com/aikoandre/Chutes-Proxy/internal/handlers/openai"
	"github.com/gin-gonic/gin"
)

// RegisterOpenAIRoutes mounts the OpenAI-compatible endpoints. The bare
// aliases mirror the /v1 group because some SDKs are configured with a base
// URL that already includes /v1 and others expect to append it themselves.
func RegisterOpenAIRoutes(engine *gin.Engine, cfg *config.Config) *oh.Handler {
	oa := oh.New(cfg)

	v1 := engine.Group("/v1")
	v1.GET("/models", oa.ListModels)
	v1.GET("/models/:id", oa.GetModel)
	v1.POST("/chat/completions", oa.ChatCompletions)

	engine.GET("/models", oa.ListModels)
	engine.POST("/chat/completions", oa.ChatCompletions)

	return oa
}
