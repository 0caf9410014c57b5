package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/karanprajapat824/hr-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// cachedResponse is the redis payload for a completed idempotent
// request: the status code of the first attempt plus its response
// data verbatim.
type cachedResponse struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// CacheResponse marshals a completed response so Idempotency can
// replay it later with the original status code.
func CacheResponse(status int, data any) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(cachedResponse{Status: status, Data: body})
}

// replayCached re-emits a previously cached response in the regular
// envelope. Payloads that do not decode fall through so the request is
// processed again.
func replayCached(c *gin.Context, raw string) bool {
	var cached cachedResponse
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || cached.Status == 0 {
		return false
	}

	response.Success(c, cached.Status, cached.Data, nil)
	c.Abort()
	return true
}

// Idempotency guards POST endpoints with an Idempotency-Key header:
// a cached response is replayed, an in-flight duplicate is rejected.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		employeeID := c.GetString("employee_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), employeeID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil && replayCached(c, val) {
			return
		}

		// SetNX with a short expiry so a crashed request cannot hold the
		// lock forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Your request is still being processed, please wait.",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
