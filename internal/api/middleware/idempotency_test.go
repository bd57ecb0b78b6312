package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/session"
)

func idempotencyRouter(repo session.IdempotencyRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/complete", IdempotencyMiddleware(repo, zap.NewNop()), func(c *gin.Context) {
		key, hash, existingID, isExisting := GetIdempotencyInfo(c)
		if isExisting {
			c.JSON(http.StatusOK, gin.H{"order_id": existingID, "replayed": true})
			return
		}
		if key != "" {
			repo.Create(c.Request.Context(), &session.CompletionRecord{
				Key: key, SessionKey: "sess_1", OrderID: "order_new", RequestHash: hash,
			})
		}
		c.JSON(http.StatusOK, gin.H{"order_id": "order_new"})
	})
	return r
}

func postComplete(router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/complete", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotentReplayReturnsOriginalOrder(t *testing.T) {
	repo := session.NewMemoryRepository()
	router := idempotencyRouter(repo)

	first := postComplete(router, "idem_1", `{"note":"a"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postComplete(router, "idem_1", `{"note":"a"}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "order_new")
	assert.Contains(t, second.Body.String(), "replayed")
}

func TestSameKeyDifferentPayloadConflicts(t *testing.T) {
	repo := session.NewMemoryRepository()
	router := idempotencyRouter(repo)

	first := postComplete(router, "idem_1", `{"note":"a"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postComplete(router, "idem_1", `{"note":"b"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestMissingKeyPassesThrough(t *testing.T) {
	repo := session.NewMemoryRepository()
	router := idempotencyRouter(repo)

	first := postComplete(router, "", `{"note":"a"}`)
	second := postComplete(router, "", `{"note":"a"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.NotContains(t, second.Body.String(), "replayed")
}
