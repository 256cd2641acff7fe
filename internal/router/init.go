package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skmohanty2628/Finverse-AI-Finance/config"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/application"
	handlers "github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/http"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/router/modules"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/helpers"
)

// Deps carries everything the feature modules need. Construction happens in
// main and flows down through this struct, so tests can assemble the same
// modules around fakes without a global container.
type Deps struct {
	Cfg    *config.Config
	Auth   *application.AuthService
	Chat   *application.ChatService
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

// InitModules builds the handlers and registers every feature module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, d *Deps) {
	authHandler := handlers.NewAuthHandler(d.Auth, d.Logger)
	chatHandler := handlers.NewChatHandler(d.Chat)

	r.Add(modules.NewAuthModule(authHandler, d.JWT, d.Redis))
	r.Add(modules.NewChatModule(chatHandler, d.JWT, d.Redis))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}
}
