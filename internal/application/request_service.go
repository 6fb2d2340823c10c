package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	repo "github.com/lifedrop/lifedrop-backend/internal/domain/repository"
)

var ErrRequestNotFound = errors.New("request not found")

// recentDashboardLimit is the fixed size of the dashboard listing.
const recentDashboardLimit = 3

// RequestService owns creation, retrieval, listing, search, and status
// transitions of donation requests.
type RequestService struct {
	Repo    repo.RequestRepository
	Logger  *logrus.Logger
	ES      *elasticsearch.Client // optional; nil disables full-text indexing
	ESIndex string
}

func NewRequestService(r repo.RequestRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *RequestService {
	return &RequestService{Repo: r, Logger: logger, ES: es, ESIndex: esIndex}
}

type CreateRequestInput struct {
	RequesterName string
	RecipientName string
	BloodGroup    string
	District      string
	Upazila       string
	Hospital      string
	Message       string
}

// Create stores a new request owned by the verified caller. The requester
// email always comes from the verified identity, never from the payload,
// and the creation time and initial pending status are server-assigned.
func (s *RequestService) Create(ctx context.Context, requesterEmail string, in CreateRequestInput) (*entity.DonationRequest, error) {
	req := &entity.DonationRequest{
		RequesterName:  in.RequesterName,
		RequesterEmail: requesterEmail,
		RecipientName:  in.RecipientName,
		BloodGroup:     in.BloodGroup,
		District:       in.District,
		Upazila:        in.Upazila,
		Hospital:       in.Hospital,
		Message:        in.Message,
		Status:         entity.RequestPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, req); err != nil {
		return nil, err
	}
	s.indexRequest(ctx, req)
	return req, nil
}

func (s *RequestService) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	req, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Recent returns the three most recently created requests system-wide.
// The upstream contract has this dashboard global rather than scoped to
// the caller; kept as-is.
func (s *RequestService) Recent(ctx context.Context) ([]entity.DonationRequest, error) {
	return s.Repo.FindRecent(ctx, recentDashboardLimit)
}

// ListMine returns one page of the caller's requests plus the total count
// of everything matching, so the client can compute page numbers.
func (s *RequestService) ListMine(ctx context.Context, callerEmail string, page, size int64, statusFilter string) ([]entity.DonationRequest, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	var status *entity.RequestStatus
	if statusFilter != "" {
		st, err := entity.ParseRequestStatus(statusFilter)
		if err != nil {
			return nil, 0, ErrInvalidValue
		}
		status = &st
	}
	return s.Repo.FindByRequester(ctx, callerEmail, status, page, size)
}

// SetStatus advances a request along pending -> inprogress -> done.
func (s *RequestService) SetStatus(ctx context.Context, id, status string) error {
	next, err := entity.ParseRequestStatus(status)
	if err != nil {
		return ErrInvalidValue
	}
	req, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if !req.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	if err := s.Repo.UpdateStatusByID(ctx, id, next); err != nil {
		return err
	}
	req.Status = next
	s.indexRequest(ctx, req)
	return nil
}

// Search runs the public filtered search. Absent criteria impose no
// constraint; present ones combine as a logical AND.
func (s *RequestService) Search(ctx context.Context, bloodGroup, district, upazila, status string) ([]entity.DonationRequest, error) {
	return s.Repo.Search(ctx, repo.RequestFilter{
		BloodGroup: bloodGroup,
		District:   district,
		Upazila:    upazila,
		Status:     status,
	})
}

func (s *RequestService) ListAll(ctx context.Context) ([]entity.DonationRequest, error) {
	return s.Repo.FindAll(ctx)
}

// indexRequest mirrors the request into Elasticsearch, best effort. The
// document store stays authoritative; a failed index write only costs a
// stale full-text result.
func (s *RequestService) indexRequest(ctx context.Context, req *entity.DonationRequest) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":              req.ID.Hex(),
		"requester_name":  req.RequesterName,
		"requester_email": req.RequesterEmail,
		"recipient_name":  req.RecipientName,
		"blood_group":     req.BloodGroup,
		"district":        req.District,
		"upazila":         req.Upazila,
		"hospital":        req.Hospital,
		"message":         req.Message,
		"request_status":  string(req.Status),
		"created_at":      req.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	r := esapi.IndexRequest{Index: s.ESIndex, DocumentID: req.ID.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("request_id", req.ID.Hex()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("request_id", req.ID.Hex()).Warn("es index response error")
	}
}

// SearchText performs a full-text search over the indexed requests.
func (s *RequestService) SearchText(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"recipient_name^2", "hospital", "district", "upazila", "message"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
