package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/config"
)

func sessionTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			Secret:     "test-secret-test-secret-test-secret",
			CookieName: "healthea_session",
		},
	}
}

func sessionTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(cfg, zap.NewNop()))
	r.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, SessionKey(c))
	})
	return r
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	cfg := sessionTestConfig()
	router := sessionTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	key := w.Body.String()
	assert.NotEmpty(t, key)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "healthea_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The cookie round-trips to the same session key
	parsed, err := parseSessionToken(cookies[0].Value, cfg.Session.Secret)
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestSessionMiddlewareReusesValidCookie(t *testing.T) {
	cfg := sessionTestConfig()
	router := sessionTestRouter(cfg)

	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/probe", nil))
	cookie := w1.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w2, req)

	assert.Equal(t, w1.Body.String(), w2.Body.String())
	// No replacement cookie needed
	assert.Empty(t, w2.Result().Cookies())
}

func TestSessionMiddlewareRejectsTamperedCookie(t *testing.T) {
	cfg := sessionTestConfig()
	router := sessionTestRouter(cfg)

	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/probe", nil))
	firstKey := w1.Body.String()

	forged, err := signSessionToken("attacker-chosen-key", "wrong-secret")
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: forged})
	router.ServeHTTP(w2, req)

	// A tampered cookie means a fresh session, never the forged key
	assert.NotEqual(t, "attacker-chosen-key", w2.Body.String())
	assert.NotEqual(t, firstKey, w2.Body.String())
	assert.Len(t, w2.Result().Cookies(), 1)
}
