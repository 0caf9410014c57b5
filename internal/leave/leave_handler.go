package leave

import (
	"net/http"
	"strconv"
	"time"

	leaveerrors "github.com/karanprajapat824/hr-system/internal/leave/errors"
	"github.com/karanprajapat824/hr-system/internal/middleware"
	"github.com/karanprajapat824/hr-system/internal/shared/apperror"
	"github.com/karanprajapat824/hr-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Apply submits a leave request for the authenticated employee.
func (h *Handler) Apply(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	employeeID := c.GetString("employee_id")

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply leave validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := middleware.CacheResponse(http.StatusCreated, resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Review records an admin decision on a pending request.
func (h *Handler) Review(c *gin.Context) {
	id := c.Param("id")
	reviewerID := c.GetString("employee_id")

	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http review leave validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Review(c.Request.Context(), reviewerID, id, req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Cancel withdraws the caller's own pending request.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	employeeID := c.GetString("employee_id")

	resp, err := h.service.Cancel(c.Request.Context(), employeeID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// History lists the caller's requests, newest first. The optional size
// query parameter caps the result.
func (h *Handler) History(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	limit := 0
	if size := c.Query("size"); size != "" {
		v, err := strconv.Atoi(size)
		if err != nil || v <= 0 {
			h.writeServiceError(c, leaveerrors.ErrInvalidLimit)
			return
		}
		limit = v
	}

	resp, err := h.service.History(c.Request.Context(), employeeID, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Balance returns the caller's remaining leave days per category.
func (h *Handler) Balance(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.RemainingBalance(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leave_balance": resp}, nil)
}
