package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skmohanty2628/Finverse-AI-Finance/internal/application"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/domain/entity"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/middleware"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/response"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Login has no pwd rule: short passwords cannot match any stored hash, and
// rejecting them at binding would make that failure distinguishable from a
// plain wrong password.
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userBody(u *entity.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email}
}

// Register POST /api/auth/register
// Creates the account and signs the caller in with the same response shape as
// login, so the client never needs a second round trip.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, tok, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Err(c, http.StatusBadRequest, "email already in use")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Err(c, http.StatusInternalServerError, "server error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": tok.Token, "user": userBody(u)})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, tok, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Err(c, http.StatusBadRequest, "invalid credentials")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Err(c, http.StatusInternalServerError, "server error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": tok.Token, "user": userBody(u)})
}

// Me GET /api/auth/me
// Resolves the token subject against the store, so a token for a deleted
// account stops working even though the guard itself is stateless.
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	u, err := h.Svc.Profile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Err(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("profile lookup failed")
		}
		response.Err(c, http.StatusInternalServerError, "server error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": gin.H{"name": u.Name, "email": u.Email}})
}
