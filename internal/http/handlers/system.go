package handlers

import (
	"context"
	"net/http"
	"time"

	"hrms/internal/domain"
	"hrms/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type SystemHandler struct {
	DB     *sqlx.DB
	Engine *gin.Engine
}

// GET /health reports liveness and whether the database answers a ping.
func (h SystemHandler) Health(c *gin.Context) {
	if h.DB == nil {
		response.Write(c, http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		fail(c, domain.New(domain.KindInternal, "Database unavailable", http.StatusServiceUnavailable))
		return
	}
	response.Write(c, http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

// NotFound answers unknown routes with the error envelope.
func NotFound(c *gin.Context) {
	fail(c, domain.NewNotFound("Route "+c.Request.Method+" "+c.Request.URL.Path))
}

// Routes lists the registered routes of Engine.
func (h SystemHandler) Routes(c *gin.Context) {
	if h.Engine == nil {
		fail(c, domain.New(domain.KindInternal, "Router is not ready", http.StatusServiceUnavailable))
		return
	}
	routes := h.Engine.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	response.Write(c, http.StatusOK, out)
}
