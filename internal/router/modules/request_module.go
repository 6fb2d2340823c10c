package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/lifedrop/lifedrop-backend/internal/identity"
	handlers "github.com/lifedrop/lifedrop-backend/internal/interface/http"
	"github.com/lifedrop/lifedrop-backend/internal/interface/middleware"
)

// RequestModule wires donation-request HTTP handlers into routes.
// Public: GET /search-request
// Protected: everything else.
type RequestModule struct {
	Handler  *handlers.RequestHandler
	Verifier identity.Verifier
}

func NewRequestModule(h *handlers.RequestHandler, v identity.Verifier) *RequestModule {
	return &RequestModule{Handler: h, Verifier: v}
}

func (m *RequestModule) Register(rg *gin.RouterGroup) {
	rg.GET("/search-request", m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	{
		auth.POST("/requests", m.Handler.Create)
		auth.GET("/requests/:id", m.Handler.GetByID)
		auth.GET("/my-donation-requests-recent", m.Handler.Recent)
		auth.GET("/my-donation-requests", m.Handler.ListMine)
		auth.PATCH("/update/user/request-status", m.Handler.SetStatus)
		auth.GET("/get-blood-donation-requests-info", m.Handler.ListAll)
		auth.GET("/search-requests-text", m.Handler.SearchText)
	}
}
