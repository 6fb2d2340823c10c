package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/lifedrop/lifedrop-backend/internal/identity"
	handlers "github.com/lifedrop/lifedrop-backend/internal/interface/http"
	"github.com/lifedrop/lifedrop-backend/internal/interface/middleware"
)

// AccountModule wires account HTTP handlers and the auth middleware into
// routes.
// Public: POST /users, GET /users/role/:email
// Protected: GET /users, PATCH /update/user/status, PATCH /update/user/role,
// POST /users/avatar
type AccountModule struct {
	Handler  *handlers.AccountHandler
	Verifier identity.Verifier
}

func NewAccountModule(h *handlers.AccountHandler, v identity.Verifier) *AccountModule {
	return &AccountModule{Handler: h, Verifier: v}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)
	rg.GET("/users/role/:email", m.Handler.RoleByEmail)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	{
		auth.GET("/users", m.Handler.ListAll)
		auth.PATCH("/update/user/status", m.Handler.SetStatus)
		auth.PATCH("/update/user/role", m.Handler.SetRole)
		auth.POST("/users/avatar", m.Handler.UploadAvatar)
	}
}
