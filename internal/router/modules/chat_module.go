package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/http"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/middleware"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/helpers"
)

// ChatModule wires the assistant relay.
// Protected: POST /api/chat
type ChatModule struct {
	Handler *handlers.ChatHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewChatModule(h *handlers.ChatHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ChatModule {
	return &ChatModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	// Per-user limit: each upstream call costs real money, so the budget is
	// tied to the account rather than the network path.
	auth.Use(middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/chat", m.Handler.Relay)
	}
}
