// Package http exposes liveness and dependency health endpoints.
package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handler serves health probes
type Handler struct {
	sqlDB *sql.DB
	rdb   *redis.Client
}

// NewHandler creates a new ops handler. Either dependency may be nil when the
// process runs on memory backends.
func NewHandler(sqlDB *sql.DB, rdb *redis.Client) *Handler {
	return &Handler{
		sqlDB: sqlDB,
		rdb:   rdb,
	}
}

// RegisterRoutes registers health routes at the router root
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/health/full", h.HealthFull)
}

// RegisterAPIRoutes registers diagnostic routes under /api
func (h *Handler) RegisterAPIRoutes(router *gin.RouterGroup) {
	router.GET("/ping", h.Ping)
	router.GET("/db-check", h.DBCheck)
	router.GET("/redis-check", h.RedisCheck)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "slot-arcade",
	})
}

// HealthFull handles GET /health/full
func (h *Handler) HealthFull(c *gin.Context) {
	dbOK := h.checkDB(c)
	redisOK := h.checkRedis(c)

	status := "healthy"
	if !dbOK || !redisOK {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks": gin.H{
			"database": dbOK,
			"redis":    redisOK,
		},
	})
}

// Ping handles GET /api/ping
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "pong",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// DBCheck handles GET /api/db-check
func (h *Handler) DBCheck(c *gin.Context) {
	if !h.checkDB(c) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Database connected"})
}

// RedisCheck handles GET /api/redis-check
func (h *Handler) RedisCheck(c *gin.Context) {
	if !h.checkRedis(c) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Redis unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Redis connected"})
}

func (h *Handler) checkDB(c *gin.Context) bool {
	if h.sqlDB == nil {
		return true
	}
	return h.sqlDB.PingContext(c.Request.Context()) == nil
}

func (h *Handler) checkRedis(c *gin.Context) bool {
	if h.rdb == nil {
		return true
	}
	return h.rdb.Ping(c.Request.Context()).Err() == nil
}
