package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skmohanty2628/Finverse-AI-Finance/internal/application"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/domain/entity"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/domain/repository"
	"github.com/skmohanty2628/Finverse-AI-Finance/internal/interface/middleware"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/helpers"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type memUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) delete(u *entity.User) {
	delete(m.byEmail, u.Email)
	delete(m.byID, u.ID)
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthRouter(repo repository.UserRepository) (*gin.Engine, *helpers.JWTManager) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewAuthService(repo, jwt, nil, discardLogger())
	h := NewAuthHandler(svc, discardLogger())

	r := gin.New()
	grp := r.Group("/api/auth")
	grp.POST("/register", h.Register)
	grp.POST("/login", h.Login)
	grp.GET("/me", middleware.Auth(jwt), h.Me)
	return r, jwt
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, jwt := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"secret12"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.NotEmpty(t, reg.User.ID)
	assert.Equal(t, "Sam", reg.User.Name)
	assert.Equal(t, "sam@example.com", reg.User.Email)

	claims, err := jwt.Parse(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"sam@example.com","password":"secret12"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","password":"secret12"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid payload", body.Message)
	assert.Equal(t, "is required", body.Details["email"])
}

func TestRegisterShortPassword(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"password"`)
}

func TestRegisterBadJSON(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid json")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"secret12"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Other","email":"sam@example.com","password":"different"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"email already in use"}`, w.Body.String())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"secret12"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	wrongPass := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"sam@example.com","password":"nope-nope"}`, nil)
	unknownEmail := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"nope-nope"}`, nil)

	assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
	assert.JSONEq(t, `{"message":"invalid credentials"}`, wrongPass.Body.String())
}

func TestMe(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"secret12"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = doJSON(r, http.MethodGet, "/api/auth/me", "", map[string]string{
		"Authorization": "Bearer " + reg.Token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":{"name":"Sam","email":"sam@example.com"}}`, w.Body.String())
}

func TestMeWithoutToken(t *testing.T) {
	r, _ := newAuthRouter(newMemUserRepo())

	w := doJSON(r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeDeletedAccount(t *testing.T) {
	repo := newMemUserRepo()
	r, _ := newAuthRouter(repo)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"secret12"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	repo.delete(&entity.User{ID: reg.User.ID, Email: "sam@example.com"})

	w = doJSON(r, http.MethodGet, "/api/auth/me", "", map[string]string{
		"Authorization": "Bearer " + reg.Token,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
