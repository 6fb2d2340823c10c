package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/lifedrop/lifedrop-backend/internal/application"
	"github.com/lifedrop/lifedrop-backend/internal/interface/middleware"
	"github.com/lifedrop/lifedrop-backend/pkg/response"
	"github.com/lifedrop/lifedrop-backend/pkg/validation"
)

type AccountHandler struct {
	Svc    *app.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *app.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	AvatarURL  string `json:"avatar_url" binding:"omitempty,url"`
	BloodGroup string `json:"blood_group" binding:"omitempty,bloodgroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// Register handles POST /users.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		AvatarURL:  req.AvatarURL,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
	})
	if err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "failed to register", nil)
		return
	}
	response.Success(c, http.StatusCreated, a, "account registered", nil)
}

// ListAll handles GET /users.
func (h *AccountHandler) ListAll(c *gin.Context) {
	accounts, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list accounts failed")
		response.Error(c, http.StatusInternalServerError, "failed to list accounts", nil)
		return
	}
	response.Success(c, http.StatusOK, accounts, "accounts", map[string]any{"count": len(accounts)})
}

// RoleByEmail handles GET /users/role/:email.
func (h *AccountHandler) RoleByEmail(c *gin.Context) {
	a, err := h.Svc.RoleByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "account not found", nil)
			return
		}
		h.Logger.WithError(err).Error("role lookup failed")
		response.Error(c, http.StatusInternalServerError, "failed to look up role", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"email":  a.Email,
		"role":   a.Role,
		"status": a.Status,
	}, "role", nil)
}

// SetStatus handles PATCH /update/user/status?email=..&status=..
func (h *AccountHandler) SetStatus(c *gin.Context) {
	email := c.Query("email")
	status := c.Query("status")
	if email == "" || status == "" {
		response.Error(c, http.StatusBadRequest, "email and status are required", nil)
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), email, status); err != nil {
		h.writeUpdateError(c, err, "status")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"email": email, "status": status}, "status updated", nil)
}

// SetRole handles PATCH /update/user/role?email=..&role=..
func (h *AccountHandler) SetRole(c *gin.Context) {
	email := c.Query("email")
	role := c.Query("role")
	if email == "" || role == "" {
		response.Error(c, http.StatusBadRequest, "email and role are required", nil)
		return
	}
	if err := h.Svc.SetRole(c.Request.Context(), email, role); err != nil {
		h.writeUpdateError(c, err, "role")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"email": email, "role": role}, "role updated", nil)
}

// UploadAvatar handles POST /users/avatar (multipart field "avatar").
// The target account is the verified caller.
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), email, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "account not found", nil)
			return
		}
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error(c, http.StatusInternalServerError, "failed to upload avatar", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}

func (h *AccountHandler) writeUpdateError(c *gin.Context, err error, field string) {
	switch {
	case errors.Is(err, app.ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, "account not found", nil)
	case errors.Is(err, app.ErrInvalidValue):
		response.Error(c, http.StatusUnprocessableEntity, "unknown "+field+" value", nil)
	case errors.Is(err, app.ErrInvalidTransition):
		response.Error(c, http.StatusUnprocessableEntity, "illegal "+field+" transition", nil)
	default:
		h.Logger.WithError(err).Error("account update failed")
		response.Error(c, http.StatusInternalServerError, "failed to update account", nil)
	}
}
