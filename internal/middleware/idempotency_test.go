package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/Berkayssy/leave-management-system/internal/middleware"
)

func idempotentRouter(rdb *redis.Client, handled *bool) *gin.Engine {
	r := gin.New()
	r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		if handled != nil {
			*handled = true
		}
		c.JSON(http.StatusCreated, gin.H{"fresh": true})
	})
	return r
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/leaves:0:key-1"
	const lockKey = cacheKey + ":lock"

	t.Run("replay repeats the original status and body", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		cached, err := json.Marshal(middleware.CachedResponse{
			Status: http.StatusCreated,
			Body:   json.RawMessage(`{"id":1,"status":"pending"}`),
		})
		assert.NoError(t, err)
		mock.ExpectGet(cacheKey).SetVal(string(cached))

		handled := false
		r := idempotentRouter(rdb, &handled)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1,"status":"pending"}`, w.Body.String())
		assert.False(t, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request acquires the lock and reaches the handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		handled := false
		r := idempotentRouter(rdb, &handled)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative in-flight duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		handled := false
		r := idempotentRouter(rdb, &handled)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"Request is already being processed"}`, w.Body.String())
		assert.False(t, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes straight through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		handled := false
		r := idempotentRouter(rdb, &handled)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
