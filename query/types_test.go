package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxidispatch/simulator/geo"
)

func TestNewQuerySetsWindows(t *testing.T) {
	origin := geo.WithLocation(0, 0, 5)
	dest := geo.WithLocation(0, 1, 5)
	q := NewQuery(1, 100, origin, dest, 300, 10, 20, true, true)

	assert.Equal(t, int64(100), q.PickupWindow.Early)
	assert.Equal(t, int64(400), q.PickupWindow.Late)
	assert.Equal(t, int64(100), q.DeliveryWindow.Early)
	assert.Equal(t, MaxInt, q.DeliveryWindow.Late)
	assert.Equal(t, Waiting, q.Status)
	assert.True(t, q.OriginNode.Valid)
	assert.True(t, q.OriginNode.IsOrigin)
	assert.False(t, q.DestNode.IsOrigin)
}

func TestTransitionLegalPath(t *testing.T) {
	q := NewQuery(1, 0, geo.Location{}, geo.Location{}, 300, 0, 0, true, true)

	assert.True(t, q.Transition(Riding))
	assert.Equal(t, Riding, q.Status)
	assert.True(t, q.Transition(Satisfied))
	assert.Equal(t, Satisfied, q.Status)
}

func TestTransitionRejectsIllegalJumps(t *testing.T) {
	q := NewQuery(1, 0, geo.Location{}, geo.Location{}, 300, 0, 0, true, true)

	assert.False(t, q.Transition(Satisfied))
	assert.Equal(t, Waiting, q.Status)

	require.True(t, q.Transition(Cancelled))
	assert.False(t, q.Transition(Riding))
	assert.Equal(t, Cancelled, q.Status)
}

func TestNewTimeWindowRejectsInverted(t *testing.T) {
	_, err := NewTimeWindow(10, 5)
	assert.ErrorIs(t, err, ErrEmptyTimeWindow)
}
