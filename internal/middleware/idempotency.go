package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Berkayssy/leave-management-system/internal/shared/response"
)

// CachedResponse is the envelope handlers store under the idempotency cache
// key: the original status code together with the rendered body, so a replay
// repeats the first response exactly.
type CachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Idempotency lets clients retry POSTs safely via an Idempotency-Key header:
// a cached response is replayed with its original status, and a short-lived
// redis lock rejects the same key while the first request is still in
// flight. Handlers store the response under the cache key and release the
// lock when done.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetUint("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%d:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var cached CachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil && cached.Status != 0 {
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		// Lock expiry keeps a crashed request from wedging the key forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			response.Error(c, http.StatusConflict, "Request is already being processed")
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
