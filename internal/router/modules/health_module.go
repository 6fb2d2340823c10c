package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/lifedrop/lifedrop-backend/internal/interface/http"
)

// HealthModule wires the liveness endpoints.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Root)
	rg.GET("/healthz", m.Handler.Healthz)
}
