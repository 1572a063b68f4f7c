// Package boltstore is the key-value persistence adapter, backed by an
// embedded Bolt database. Records are JSON-encoded under one bucket per
// entity and secondary lookups are full-bucket scans, which is acceptable at
// this data volume.
package boltstore

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"

	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

const fileMode = 0600

var defaultTimeout = 1 * time.Second

var (
	usersBucket       = []byte("users")
	restaurantsBucket = []byte("restaurants")
	ordersBucket      = []byte("orders")
	orderItemsBucket  = []byte("order_items")
)

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bolt file at path and ensures all entity
// buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: defaultTimeout})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{usersBucket, restaurantsBucket, ordersBucket, orderItemsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, apperr.Database.Wrap(err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Users() store.UserStore             { return &userStore{db: s.db} }
func (s *Store) Restaurants() store.RestaurantStore { return &restaurantStore{db: s.db} }
func (s *Store) Orders() store.OrderStore           { return &orderStore{db: s.db} }

func (s *Store) Close() error {
	return s.db.Close()
}

// put JSON-encodes v under key in bucket.
func put(tx *bolt.Tx, bucket []byte, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Bucket(bucket).Put([]byte(key), data)
}

// get decodes the record at key into v; ok is false when the key is absent.
func get(tx *bolt.Tx, bucket []byte, key string, v any) (bool, error) {
	data := tx.Bucket(bucket).Get([]byte(key))
	if data == nil {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

// scan decodes every record in bucket through fn.
func scan[T any](tx *bolt.Tx, bucket []byte, fn func(T) error) error {
	return tx.Bucket(bucket).ForEach(func(_, data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		return fn(v)
	})
}
