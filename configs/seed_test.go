package configs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/store/memstore"
)

func TestSeedAdminCreatesAccount(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	cfg := &Config{AdminEmail: "boss@example.com", AdminPassword: "supersecret"}

	require.NoError(t, SeedAdmin(ctx, st, cfg, zaptest.NewLogger(t)))

	admin, err := st.Users().GetByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("supersecret")))
	require.NotNil(t, admin.RestaurantID)

	r, err := st.Restaurants().GetByID(ctx, *admin.RestaurantID)
	require.NoError(t, err)
	assert.Equal(t, "restaurant@thejerktracker.com", r.Email)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	cfg := &Config{AdminEmail: "boss@example.com", AdminPassword: "supersecret"}
	log := zaptest.NewLogger(t)

	require.NoError(t, SeedAdmin(ctx, st, cfg, log))
	require.NoError(t, SeedAdmin(ctx, st, cfg, log))

	users, err := st.Users().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	restaurants, err := st.Restaurants().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, restaurants, 1)
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	require.NoError(t, SeedAdmin(ctx, st, &Config{}, zaptest.NewLogger(t)))

	users, err := st.Users().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.NotZero(t, cfg.JWTTTL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "bolt")
	t.Setenv("DB_SOURCE", "/tmp/test.bolt")

	cfg := LoadConfig()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "bolt", cfg.DBDriver)
	assert.Equal(t, "/tmp/test.bolt", cfg.DBSource)
}
