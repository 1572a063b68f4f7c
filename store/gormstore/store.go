// Package gormstore is the relational persistence adapter, backed by GORM
// with a sqlite or mysql driver.
package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

type Store struct {
	db *gorm.DB
}

// Open connects with the requested driver ("sqlite" or "mysql") and migrates
// the schema.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{},
		&entity.Order{},
		&entity.OrderItem{},
	); err != nil {
		return nil, apperr.Database.Wrap(err)
	}

	return &Store{db: db}, nil
}

// New wraps an already opened gorm.DB.
func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() store.UserStore             { return &userStore{db: s.db} }
func (s *Store) Restaurants() store.RestaurantStore { return &restaurantStore{db: s.db} }
func (s *Store) Orders() store.OrderStore           { return &orderStore{db: s.db} }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Database.Wrap(err)
	}
	return sqlDB.Close()
}

// wrapErr translates gorm errors into the shared taxonomy.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound.New("record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict.New("duplicate key")
	default:
		return apperr.Database.Wrap(err)
	}
}
