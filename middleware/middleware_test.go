package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/metrics"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	users map[string]models.User
	err   error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (models.User, *dto.TokenClaims, error) {
	if s.err != nil {
		return models.User{}, nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return models.User{}, nil, services.ErrInvalidToken
	}
	return user, &dto.TokenClaims{UserID: user.ID}, nil
}

var (
	alice = models.User{ID: "u-alice", Username: "alice"}
	root  = models.User{ID: "u-root", Username: "root", IsAdmin: true}
	auth  = stubAuthenticator{users: map[string]models.User{"alice-token": alice, "root-token": root}}
)

func newRouter(authn Authenticator, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(authn, zap.NewNop()))
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": CurrentActor(c), "hasClaims": CurrentClaims(c) != nil})
	})
	r.GET("/", chain...)
	return r
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthMiddlewareAnonymous(t *testing.T) {
	w, body := serve(newRouter(auth), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", body["actor"].(map[string]interface{})["userId"])
	assert.Equal(t, false, body["hasClaims"])
}

func TestAuthMiddlewareBearerAndCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w, body := serve(newRouter(auth), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-alice", body["actor"].(map[string]interface{})["userId"])
	assert.Equal(t, true, body["hasClaims"])

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "root-token"})
	w, body = serve(newRouter(auth), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["actor"].(map[string]interface{})["isAdmin"])
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w, body := serve(newRouter(auth), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, LoginPath, body["redirect"])

	revoked := stubAuthenticator{err: services.ErrTokenRevoked}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w, _ = serve(newRouter(revoked), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	broken := stubAuthenticator{err: errors.New("redis down")}
	w, body = serve(newRouter(broken), req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestRequireAuth(t *testing.T) {
	r := newRouter(auth, RequireAuth())

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, LoginPath, body["redirect"])

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w, _ = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	r := newRouter(auth, AdminMiddleware(policy.CanReviewApplications))

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w, body := serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin privileges required", body["message"])

	req.Header.Set("Authorization", "Bearer root-token")
	w, _ = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", BodyLimit(8), func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(data))
	})

	w, _ := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345678")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345678", w.Body.String())

	w, body := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large", body["message"])

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789"))
	req.ContentLength = -1
	w, _ = serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(RequestLogger(zap.New(core), m))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["route"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "unmatched", entries[2].ContextMap()["route"])
}
