package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	repo "github.com/lifedrop/lifedrop-backend/internal/domain/repository"
	"github.com/lifedrop/lifedrop-backend/pkg/helpers"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidValue      = errors.New("invalid value")
	ErrInvalidTransition = errors.New("invalid transition")
)

func roleCacheKey(email string) string {
	return "account:role:" + email
}

// AccountService owns account registration, role lookup, and the
// role/status transitions.
type AccountService struct {
	Repo         repo.AccountRepository
	Redis        *redis.Client // optional; nil disables the lookup cache
	GCS          *storage.Client
	GCSBucket    string
	Logger       *logrus.Logger
	RoleCacheTTL time.Duration
}

func NewAccountService(r repo.AccountRepository, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, roleCacheTTL time.Duration) *AccountService {
	return &AccountService{
		Repo:         r,
		Redis:        rdb,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		Logger:       logger,
		RoleCacheTTL: roleCacheTTL,
	}
}

type RegisterInput struct {
	Name       string
	Email      string
	AvatarURL  string
	BloodGroup string
	District   string
	Upazila    string
}

// Register stores a new account. Every registration starts as an active
// Donor with a server-assigned creation time; duplicate emails are rejected.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	a := &entity.Account{
		Name:       in.Name,
		Email:      in.Email,
		AvatarURL:  in.AvatarURL,
		BloodGroup: in.BloodGroup,
		District:   in.District,
		Upazila:    in.Upazila,
		Role:       entity.RoleDonor,
		Status:     entity.AccountActive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return a, nil
}

func (s *AccountService) ListAll(ctx context.Context) ([]entity.Account, error) {
	return s.Repo.FindAll(ctx)
}

// RoleByEmail returns the account for a role/status lookup. The result is
// cached briefly in Redis because the route is public and hit on every
// client page load.
func (s *AccountService) RoleByEmail(ctx context.Context, email string) (*entity.Account, error) {
	key := roleCacheKey(email)
	if s.Redis != nil {
		var cached entity.Account
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	a, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, a, s.RoleCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("role cache write failed")
		}
	}
	return a, nil
}

// SetStatus moves an account between active and blocked. The value must be
// a known status and differ from the current one.
func (s *AccountService) SetStatus(ctx context.Context, email, status string) error {
	next, err := entity.ParseAccountStatus(status)
	if err != nil {
		return ErrInvalidValue
	}
	a, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}
	if !a.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	if err := s.Repo.UpdateStatusByEmail(ctx, email, next); err != nil {
		return err
	}
	s.invalidateRoleCache(ctx, email)
	return nil
}

// SetRole promotes or demotes an account to any of the known roles.
func (s *AccountService) SetRole(ctx context.Context, email, role string) error {
	next, err := entity.ParseRole(role)
	if err != nil {
		return ErrInvalidValue
	}
	if err := s.Repo.UpdateRoleByEmail(ctx, email, next); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	s.invalidateRoleCache(ctx, email)
	return nil
}

// UploadAvatar stores the image in GCS and records its public URL.
func (s *AccountService) UploadAvatar(ctx context.Context, email string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	if _, err := s.Repo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", email, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAvatarByEmail(ctx, email, url); err != nil {
		return "", err
	}
	s.invalidateRoleCache(ctx, email)
	return url, nil
}

func (s *AccountService) invalidateRoleCache(ctx context.Context, email string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, roleCacheKey(email)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("role cache invalidation failed")
	}
}
