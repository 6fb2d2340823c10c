package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/lifedrop/lifedrop-backend/internal/application"
	"github.com/lifedrop/lifedrop-backend/internal/interface/middleware"
	"github.com/lifedrop/lifedrop-backend/pkg/response"
	"github.com/lifedrop/lifedrop-backend/pkg/validation"
)

type RequestHandler struct {
	Svc    *app.RequestService
	Logger *logrus.Logger
}

func NewRequestHandler(svc *app.RequestService, logger *logrus.Logger) *RequestHandler {
	return &RequestHandler{Svc: svc, Logger: logger}
}

type createRequestRequest struct {
	RequesterName string `json:"requester_name" binding:"required"`
	RecipientName string `json:"recipient_name" binding:"required"`
	BloodGroup    string `json:"blood_group" binding:"required,bloodgroup"`
	District      string `json:"district" binding:"required"`
	Upazila       string `json:"upazila" binding:"required"`
	Hospital      string `json:"hospital"`
	Message       string `json:"message"`
}

// Create handles POST /requests. The owner is always the verified caller.
func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserEmailKey), app.CreateRequestInput{
		RequesterName: req.RequesterName,
		RecipientName: req.RecipientName,
		BloodGroup:    req.BloodGroup,
		District:      req.District,
		Upazila:       req.Upazila,
		Hospital:      req.Hospital,
		Message:       req.Message,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create request failed")
		response.Error(c, http.StatusInternalServerError, "failed to create request", nil)
		return
	}
	response.Success(c, http.StatusCreated, created, "request created", nil)
}

// GetByID handles GET /requests/:id.
func (h *RequestHandler) GetByID(c *gin.Context) {
	req, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrRequestNotFound) {
			response.Error(c, http.StatusNotFound, "request not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get request failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch request", nil)
		return
	}
	response.Success(c, http.StatusOK, req, "request", nil)
}

// Recent handles GET /my-donation-requests-recent.
func (h *RequestHandler) Recent(c *gin.Context) {
	reqs, err := h.Svc.Recent(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("recent requests failed")
		response.Error(c, http.StatusInternalServerError, "failed to list recent requests", nil)
		return
	}
	response.Success(c, http.StatusOK, reqs, "recent requests", nil)
}

// ListMine handles GET /my-donation-requests?page=&size=&status=.
func (h *RequestHandler) ListMine(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "0"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "10"), 10, 64)
	status := c.Query("status")

	reqs, total, err := h.Svc.ListMine(c.Request.Context(), c.GetString(middleware.CtxUserEmailKey), page, size, status)
	if err != nil {
		if errors.Is(err, app.ErrInvalidValue) {
			response.Error(c, http.StatusUnprocessableEntity, "unknown status value", nil)
			return
		}
		h.Logger.WithError(err).Error("list my requests failed")
		response.Error(c, http.StatusInternalServerError, "failed to list requests", nil)
		return
	}
	response.Success(c, http.StatusOK, reqs, "my requests", map[string]any{
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// SetStatus handles PATCH /update/user/request-status?_id=..&request_status=..
func (h *RequestHandler) SetStatus(c *gin.Context) {
	id := c.Query("_id")
	status := c.Query("request_status")
	if id == "" || status == "" {
		response.Error(c, http.StatusBadRequest, "_id and request_status are required", nil)
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), id, status); err != nil {
		switch {
		case errors.Is(err, app.ErrRequestNotFound):
			response.Error(c, http.StatusNotFound, "request not found", nil)
		case errors.Is(err, app.ErrInvalidValue):
			response.Error(c, http.StatusUnprocessableEntity, "unknown request status", nil)
		case errors.Is(err, app.ErrInvalidTransition):
			response.Error(c, http.StatusUnprocessableEntity, "illegal status transition", nil)
		default:
			h.Logger.WithError(err).Error("request status update failed")
			response.Error(c, http.StatusInternalServerError, "failed to update request", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": id, "request_status": status}, "request status updated", nil)
}

// Search handles GET /search-request?blood=&district=&upazila=&status=.
func (h *RequestHandler) Search(c *gin.Context) {
	reqs, err := h.Svc.Search(c.Request.Context(),
		c.Query("blood"),
		c.Query("district"),
		c.Query("upazila"),
		c.Query("status"),
	)
	if err != nil {
		h.Logger.WithError(err).Error("search requests failed")
		response.Error(c, http.StatusInternalServerError, "failed to search requests", nil)
		return
	}
	response.Success(c, http.StatusOK, reqs, "search results", map[string]any{"count": len(reqs)})
}

// ListAll handles GET /get-blood-donation-requests-info.
func (h *RequestHandler) ListAll(c *gin.Context) {
	reqs, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list requests failed")
		response.Error(c, http.StatusInternalServerError, "failed to list requests", nil)
		return
	}
	response.Success(c, http.StatusOK, reqs, "requests", map[string]any{"count": len(reqs)})
}

// SearchText handles GET /search-requests-text?q=&size=, the full-text
// variant backed by Elasticsearch.
func (h *RequestHandler) SearchText(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchText(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("full-text search failed")
		response.Error(c, http.StatusInternalServerError, "failed to search requests", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
