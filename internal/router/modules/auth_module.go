package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/http"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/middleware"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/helpers"
)

// AuthModule wires the account routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Tight per-IP limits on the unauthenticated routes; register is the
	// strictest since it both writes the store and costs a bcrypt hash.
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
