package configs

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

// SeedAdmin creates the demo restaurant and the first admin account when
// ADMIN_EMAIL/ADMIN_PASSWORD are configured and the admin does not exist
// yet. Safe to run on every startup.
func SeedAdmin(ctx context.Context, st store.Store, cfg *Config, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	if _, err := st.Users().GetByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Info("admin already exists", zap.String("email", cfg.AdminEmail))
		return nil
	} else if !apperr.NotFound.Has(err) {
		return err
	}

	restaurant := &entity.Restaurant{
		Name:        "TheJERKTracker Demo Restaurant",
		Email:       "restaurant@thejerktracker.com",
		Phone:       "(555) 123-4567",
		Address:     "123 Main Street",
		City:        "Demo City",
		State:       "DC",
		ZipCode:     "12345",
		Description: "Demo restaurant for TheJERKTracker application",
	}
	if existing, err := st.Restaurants().GetByEmail(ctx, restaurant.Email); err == nil {
		restaurant = existing
	} else if apperr.NotFound.Has(err) {
		if err := st.Restaurants().Create(ctx, restaurant); err != nil {
			return err
		}
		log.Info("created demo restaurant", zap.String("id", restaurant.ID))
	} else {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &entity.User{
		Email:        cfg.AdminEmail,
		Name:         "Admin User",
		Password:     string(hash),
		Role:         entity.RoleAdmin,
		RestaurantID: &restaurant.ID,
	}
	if err := st.Users().Create(ctx, admin); err != nil {
		return err
	}
	log.Info("seeded admin user", zap.String("email", admin.Email))
	return nil
}
