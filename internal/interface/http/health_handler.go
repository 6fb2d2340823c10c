package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lifedrop/lifedrop-backend/pkg/response"
)

type HealthHandler struct {
	Mongo *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{Mongo: client}
}

// Root handles GET /, the plain-text liveness probe.
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "LifeDrop backend is running")
}

// Healthz handles GET /healthz and also checks database reachability.
func (h *HealthHandler) Healthz(c *gin.Context) {
	status := gin.H{"server": "ok"}
	code := http.StatusOK
	if h.Mongo != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
			status["mongo"] = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			status["mongo"] = "ok"
		}
	}
	if code == http.StatusOK {
		response.Success[any](c, code, status, "healthy", nil)
		return
	}
	response.Error(c, code, "unhealthy", status)
}
