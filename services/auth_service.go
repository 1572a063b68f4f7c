package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
	"github.com/TeamPaintbrush/thejerktracker/utils"
)

// AuthService handles registration, login and profile lookups.
type AuthService struct {
	store     store.Store
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(st store.Store, secret string, ttl time.Duration) *AuthService {
	return &AuthService{store: st, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a STAFF account. Admins are created through the user
// admin endpoints or seeding, never by self-registration.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict.New("email already registered")
	} else if !apperr.NotFound.Has(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}

	user := &entity.User{
		Email:    email,
		Name:     strings.TrimSpace(name),
		Password: string(hashed),
		Role:     entity.RoleStaff,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a JWT. Bad email and bad password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if apperr.NotFound.Has(err) {
			return "", nil, apperr.Authentication.New("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Authentication.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Database.Wrap(err)
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.store.Users().GetByID(ctx, userID)
}
