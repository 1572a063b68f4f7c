package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

func TestCanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		StatusPending:        {StatusInProgress, StatusCancelled},
		StatusInProgress:     {StatusReady, StatusCancelled},
		StatusReady:          {StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusOutForDelivery: {StatusDelivered, StatusCancelled},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}

	all := []OrderStatus{StatusPending, StatusInProgress, StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled}
	for from, nexts := range allowed {
		ok := map[OrderStatus]bool{}
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
	assert.False(t, OrderStatus("BOGUS").IsTerminal())
}

func TestStatusFromLegacy(t *testing.T) {
	cases := map[string]OrderStatus{
		"Pending":          StatusPending,
		"Preparing":        StatusInProgress,
		"Ready":            StatusReady,
		"Out for Delivery": StatusOutForDelivery,
		"Picked Up":        StatusDelivered,
		"Cancelled":        StatusCancelled,
	}
	for name, want := range cases {
		got, ok := StatusFromLegacy(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
	}

	_, ok := StatusFromLegacy("PENDING")
	assert.False(t, ok, "canonical names are not legacy names")
	_, ok = StatusFromLegacy("picked up")
	assert.False(t, ok)
}

func TestApplyStatusHappyPath(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending}

	require.NoError(t, o.ApplyStatus(StatusInProgress, StatusUpdate{}, now))
	assert.Equal(t, StatusInProgress, o.Status)
	require.NotNil(t, o.PreparingAt)
	assert.Equal(t, now, *o.PreparingAt)
	assert.Equal(t, now, o.UpdatedAt)

	later := now.Add(10 * time.Minute)
	require.NoError(t, o.ApplyStatus(StatusReady, StatusUpdate{}, later))
	require.NotNil(t, o.ReadyAt)
	assert.Equal(t, later, *o.ReadyAt)
	assert.Equal(t, now, *o.PreparingAt, "earlier stamps stay put")
}

func TestApplyStatusRejectsInvalid(t *testing.T) {
	now := time.Now()

	o := &Order{Status: StatusPending}
	err := o.ApplyStatus(StatusDelivered, StatusUpdate{}, now)
	require.Error(t, err)
	assert.True(t, apperr.InvalidTransition.Has(err))
	assert.Equal(t, StatusPending, o.Status, "order untouched on rejection")

	o = &Order{Status: StatusDelivered}
	err = o.ApplyStatus(StatusPending, StatusUpdate{}, now)
	assert.True(t, apperr.InvalidTransition.Has(err), "terminal states allow nothing")

	o = &Order{Status: StatusPending}
	err = o.ApplyStatus(OrderStatus("SHIPPED"), StatusUpdate{}, now)
	assert.True(t, apperr.Validation.Has(err))
}

func TestApplyStatusDeliveredSetsActualTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	o := &Order{Status: StatusReady}
	require.NoError(t, o.ApplyStatus(StatusDelivered, StatusUpdate{}, now))
	require.NotNil(t, o.ActualTime)
	assert.Equal(t, now, *o.ActualTime)
	require.NotNil(t, o.PickedUpAt)
	assert.Equal(t, now, *o.PickedUpAt)

	// caller-supplied completion time wins
	supplied := now.Add(-5 * time.Minute)
	o = &Order{Status: StatusReady}
	require.NoError(t, o.ApplyStatus(StatusDelivered, StatusUpdate{ActualTime: &supplied}, now))
	assert.Equal(t, supplied, *o.ActualTime)
}

func TestApplyStatusActualTimeOnAnyTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	handoff := now.Add(-2 * time.Minute)

	// a supplied completion time is kept on non-terminal transitions too
	o := &Order{Status: StatusReady}
	require.NoError(t, o.ApplyStatus(StatusOutForDelivery, StatusUpdate{ActualTime: &handoff}, now))
	require.NotNil(t, o.ActualTime)
	assert.Equal(t, handoff, *o.ActualTime)

	// and never overwritten once set
	later := now.Add(time.Hour)
	require.NoError(t, o.ApplyStatus(StatusDelivered, StatusUpdate{ActualTime: &later}, later))
	assert.Equal(t, handoff, *o.ActualTime)
}

func TestApplyStatusStampsOnce(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	// an order that was already in progress once keeps its original stamp
	o := &Order{Status: StatusPending, PreparingAt: &first}
	require.NoError(t, o.ApplyStatus(StatusInProgress, StatusUpdate{}, second))
	assert.Equal(t, first, *o.PreparingAt)
}

func TestApplyStatusSideData(t *testing.T) {
	now := time.Now()
	eta := now.Add(30 * time.Minute)
	uid := "user-1"

	o := &Order{Status: StatusReady}
	up := StatusUpdate{
		DriverName:      "Des",
		DeliveryCompany: "QuickWheels",
		Notes:           "call on arrival",
		EstimatedTime:   &eta,
		UpdatedByID:     &uid,
	}
	require.NoError(t, o.ApplyStatus(StatusOutForDelivery, up, now))
	assert.Equal(t, "Des", o.DriverName)
	assert.Equal(t, "QuickWheels", o.DeliveryCompany)
	assert.Equal(t, "call on arrival", o.Notes)
	assert.Equal(t, &eta, o.EstimatedTime)
	assert.Equal(t, &uid, o.UpdatedByID)
}

// Delivery flow end to end: PENDING through OUT_FOR_DELIVERY to DELIVERED,
// every stamp present afterwards. The old client allowed arbitrary status
// jumps; this walk is the strict path replacing them.
func TestApplyStatusDeliveryLifecycle(t *testing.T) {
	base := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending}

	steps := []OrderStatus{StatusInProgress, StatusReady, StatusOutForDelivery, StatusDelivered}
	for i, s := range steps {
		require.NoError(t, o.ApplyStatus(s, StatusUpdate{}, base.Add(time.Duration(i)*time.Minute)))
	}

	assert.NotNil(t, o.PreparingAt)
	assert.NotNil(t, o.ReadyAt)
	assert.NotNil(t, o.OutForDeliveryAt)
	assert.NotNil(t, o.PickedUpAt)
	assert.NotNil(t, o.ActualTime)
	assert.Nil(t, o.CancelledAt)
	assert.True(t, o.Status.IsTerminal())
}
