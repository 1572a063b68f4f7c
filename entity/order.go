package entity

import (
	"time"

	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

// OrderType distinguishes how the customer receives the order.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeout  OrderType = "TAKEOUT"
	OrderTypeDelivery OrderType = "DELIVERY"
)

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeDelivery:
		return true
	}
	return false
}

type Order struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"orderNumber"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	// Free-text summary kept from the legacy client; structured items live
	// in OrderItems.
	OrderDetails string `json:"orderDetails,omitempty"`

	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `gorm:"not null;default:PENDING" json:"status"`
	OrderType   OrderType   `gorm:"not null;default:TAKEOUT" json:"orderType"`

	Notes           string `json:"notes,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	DriverName      string `json:"driverName,omitempty"`
	DeliveryCompany string `json:"deliveryCompany,omitempty"`

	EstimatedTime *time.Time `json:"estimatedTime,omitempty"`
	ActualTime    *time.Time `json:"actualTime,omitempty"`

	RestaurantID string  `gorm:"index;not null" json:"restaurantId"`
	CreatedByID  *string `gorm:"size:36" json:"createdById,omitempty"`
	UpdatedByID  *string `gorm:"size:36" json:"updatedById,omitempty"`

	// One timestamp per status, set the first time the order enters that
	// status and never overwritten.
	PreparingAt      *time.Time `json:"preparingAt,omitempty"`
	ReadyAt          *time.Time `json:"readyAt,omitempty"`
	OutForDeliveryAt *time.Time `json:"outForDeliveryAt,omitempty"`
	PickedUpAt       *time.Time `json:"pickedUpAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `json:"price"`
	Notes    string  `json:"notes,omitempty"`

	OrderID string `gorm:"index;not null" json:"orderId"`
}

// StatusUpdate carries the side data a transition may attach atomically.
type StatusUpdate struct {
	DriverName      string
	DeliveryCompany string
	Notes           string
	EstimatedTime   *time.Time
	ActualTime      *time.Time
	UpdatedByID     *string
}

// ApplyStatus validates the transition from the order's current status and
// mutates the order in place: status, UpdatedAt, the per-status timestamp
// (only when still unset) and the attached side data. The write itself must
// still be guarded on the previous status by the store.
func (o *Order) ApplyStatus(next OrderStatus, up StatusUpdate, now time.Time) error {
	if !next.IsValid() {
		return apperr.Validation.New("unknown status %q", next)
	}
	if !o.Status.CanTransitionTo(next) {
		return apperr.InvalidTransition.New("cannot move order from %s to %s", o.Status, next)
	}

	o.Status = next
	o.UpdatedAt = now

	switch next {
	case StatusInProgress:
		if o.PreparingAt == nil {
			o.PreparingAt = &now
		}
	case StatusReady:
		if o.ReadyAt == nil {
			o.ReadyAt = &now
		}
	case StatusOutForDelivery:
		if o.OutForDeliveryAt == nil {
			o.OutForDeliveryAt = &now
		}
	case StatusDelivered:
		if o.PickedUpAt == nil {
			o.PickedUpAt = &now
		}
	case StatusCancelled:
		if o.CancelledAt == nil {
			o.CancelledAt = &now
		}
	}

	if up.DriverName != "" {
		o.DriverName = up.DriverName
	}
	if up.DeliveryCompany != "" {
		o.DeliveryCompany = up.DeliveryCompany
	}
	if up.Notes != "" {
		o.Notes = up.Notes
	}
	if up.EstimatedTime != nil {
		o.EstimatedTime = up.EstimatedTime
	}
	// a supplied completion time sticks on any transition; DELIVERED defaults
	// it to now when nothing was recorded
	if up.ActualTime != nil && o.ActualTime == nil {
		o.ActualTime = up.ActualTime
	}
	if next == StatusDelivered && o.ActualTime == nil {
		t := now
		o.ActualTime = &t
	}
	if up.UpdatedByID != nil {
		o.UpdatedByID = up.UpdatedByID
	}
	return nil
}
