package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dstclan/internal/metrics"
	"dstclan/internal/model"
	"dstclan/internal/repository"
	"dstclan/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"
)

var (
	// ErrInvalidCredentials unknown username or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRegistrationForbidden registration needs an admin session once an admin exists
	ErrRegistrationForbidden = errors.New("registration forbidden")
	// ErrUsernameExists the username is taken
	ErrUsernameExists = errors.New("username already exists")
	// ErrUnauthorized missing or unknown token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCredentialsRequired empty username or password
	ErrCredentialsRequired = errors.New("username and password are required")
)

const (
	tokenLength    = 32
	adminTokenTTL  = 10 * time.Minute
	adminTokenKey  = "admin:token:"
	minPasswordLen = 6
)

// AuthService authenticates moderators and issues session tokens
type AuthService struct {
	adminRepo   repository.AdminRepository
	redisClient redis.Cmdable
	logger      *logger.Logger
}

// NewAuthService creates an auth service
func NewAuthService(adminRepo repository.AdminRepository, redisClient redis.Cmdable, logger *logger.Logger) *AuthService {
	return &AuthService{adminRepo: adminRepo, redisClient: redisClient, logger: logger}
}

// Login checks the credentials and returns the admin's token.
// A token is only generated the first time; later logins reuse it.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		return "", ErrCredentialsRequired
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.AdminLogins.WithLabelValues("rejected").Inc()
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		s.logger.Warn("admin login failed", "username", username)
		return "", ErrInvalidCredentials
	}

	if admin.Token == "" {
		admin.Token = rand.String(tokenLength)
		if err := s.adminRepo.UpdateToken(ctx, admin.ID, admin.Token); err != nil {
			return "", err
		}
	}

	metrics.AdminLogins.WithLabelValues("accepted").Inc()
	s.logger.Info("admin logged in", "username", username)
	return admin.Token, nil
}

// Register creates an admin account. It is open while no admin exists;
// afterwards the caller must present a valid admin token.
func (s *AuthService) Register(ctx context.Context, callerToken, username, password string) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if _, err := s.Authenticate(ctx, callerToken); err != nil {
			return nil, ErrRegistrationForbidden
		}
	}

	return s.create(ctx, username, password)
}

func (s *AuthService) create(ctx context.Context, username, password string) (*model.Admin, error) {
	if len(password) < minPasswordLen {
		return nil, &model.ValidationError{Fields: []model.FieldError{{Field: "password", Rule: "min", Param: "6"}}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{Username: username, PasswordHash: string(hash)}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	s.logger.Info("admin registered", "username", username, "id", admin.ID)
	return admin, nil
}

// Authenticate resolves a session token to its admin. Lookups are cached in Redis.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.Admin, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	key := adminTokenKey + token
	if username, err := s.redisClient.Get(ctx, key).Result(); err == nil {
		metrics.RecordCache("admin_token", true)
		return &model.Admin{Username: username, Token: token}, nil
	}
	metrics.RecordCache("admin_token", false)

	admin, err := s.adminRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := s.redisClient.Set(ctx, key, admin.Username, adminTokenTTL).Err(); err != nil {
		s.logger.Warn("failed to cache admin token", "error", err)
	}
	return admin, nil
}

// HasAdmins reports whether at least one admin account exists
func (s *AuthService) HasAdmins(ctx context.Context) (bool, error) {
	count, err := s.adminRepo.Count(ctx)
	return count > 0, err
}

// EnsureAdmin creates the bootstrap admin when no admin exists yet
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	exists, err := s.HasAdmins(ctx)
	if err != nil || exists {
		return err
	}
	_, err = s.create(ctx, username, password)
	if err == nil {
		s.logger.Info("bootstrap admin created", "username", username)
	}
	return err
}
