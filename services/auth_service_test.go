package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store/memstore"
	"github.com/TeamPaintbrush/thejerktracker/utils"
)

const testSecret = "test-secret"

func newAuthService() *AuthService {
	return NewAuthService(memstore.New(), testSecret, time.Hour)
}

func TestRegisterCreatesStaff(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	u, err := svc.Register(ctx, "  Chef@Example.COM ", "secret123", " Chef ")
	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", u.Email)
	assert.Equal(t, "Chef", u.Name)
	assert.Equal(t, entity.RoleStaff, u.Role, "self-registration never grants admin")
	assert.NotEqual(t, "secret123", u.Password, "password stored hashed")

	_, err = svc.Register(ctx, "chef@example.com", "other", "Chef 2")
	assert.True(t, apperr.Conflict.Has(err))
}

func TestLoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	u, err := svc.Register(ctx, "login@example.com", "secret123", "Login")
	require.NoError(t, err)

	token, got, err := svc.Login(ctx, "login@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, token)

	claims := &utils.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, "victim@example.com", "correct-pw", "V")
	require.NoError(t, err)

	// wrong password and unknown email produce the same error
	_, _, badPw := svc.Login(ctx, "victim@example.com", "wrong-pw")
	_, _, badEmail := svc.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, badPw)
	require.Error(t, badEmail)
	assert.True(t, apperr.Authentication.Has(badPw))
	assert.True(t, apperr.Authentication.Has(badEmail))
	assert.Equal(t, badPw.Error(), badEmail.Error())
}
