// Package legacy models the exported browser-storage order blob as a
// read-only snapshot source, so the migration engine stays backend-agnostic
// and testable with an in-memory fake.
package legacy

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

// Order is the shape the legacy client kept under its storage key. Status is
// the display string ("Pending", "Picked Up", ...), not the canonical enum.
type Order struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"orderNumber"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	OrderDetails  string `json:"orderDetails,omitempty"`
	Status        string `json:"status"`
	QRUrl         string `json:"qrUrl,omitempty"`

	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
	PreparingAt      *time.Time `json:"preparingAt,omitempty"`
	ReadyAt          *time.Time `json:"readyAt,omitempty"`
	OutForDeliveryAt *time.Time `json:"outForDeliveryAt,omitempty"`
	PickedUpAt       *time.Time `json:"pickedUpAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`

	DriverName      string `json:"driverName,omitempty"`
	DeliveryCompany string `json:"deliveryCompany,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Source is the read side of the legacy store. Clear removes the legacy copy
// only, never server-side data.
type Source interface {
	Orders() ([]Order, error)
	Clear() error
}

// FileSource reads the exported storage blob from disk. A missing file means
// there is nothing to migrate, not an error.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (f *FileSource) Orders() ([]Order, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, apperr.Validation.New("legacy data file is not a valid order list: %v", err)
	}
	return orders, nil
}

func (f *FileSource) Clear() error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return apperr.Database.Wrap(err)
}

// MemSource backs migration tests.
type MemSource struct {
	mu     sync.Mutex
	orders []Order

	// OrdersErr, when set, is returned by Orders to simulate a broken source.
	OrdersErr error
}

func NewMemSource(orders ...Order) *MemSource {
	return &MemSource{orders: orders}
}

func (m *MemSource) Orders() ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OrdersErr != nil {
		return nil, m.OrdersErr
	}
	out := make([]Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *MemSource) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = nil
	return nil
}
