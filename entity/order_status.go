package entity

// OrderStatus is the canonical order lifecycle state.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusInProgress     OrderStatus = "IN_PROGRESS"
	StatusReady          OrderStatus = "READY"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// transitions maps each status to the set of statuses reachable from it.
// DELIVERED and CANCELLED are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// legacyStatusNames maps the display strings the legacy client stored to the
// canonical enum. Unknown strings fall back to PENDING during migration.
var legacyStatusNames = map[string]OrderStatus{
	"Pending":          StatusPending,
	"Preparing":        StatusInProgress,
	"Ready":            StatusReady,
	"Out for Delivery": StatusOutForDelivery,
	"Picked Up":        StatusDelivered,
	"Cancelled":        StatusCancelled,
}

// IsValid reports whether s is one of the canonical statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether next is in the allowed-next set for s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusFromLegacy resolves a legacy display name ("Picked Up", "Preparing", ...)
// to the canonical enum. ok is false when the name is unknown.
func StatusFromLegacy(name string) (OrderStatus, bool) {
	s, ok := legacyStatusNames[name]
	return s, ok
}
