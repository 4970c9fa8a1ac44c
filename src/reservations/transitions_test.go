package reservations

import (
	"stowage/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []types.ReservationStatus{
	types.RESERVATION_PENDING,
	types.RESERVATION_APPROVED,
	types.RESERVATION_DECLINED,
	types.RESERVATION_CANCELLED,
	types.RESERVATION_COMPLETED,
}

func TestTransitionTableCompleteness(t *testing.T) {
	legal := map[[2]types.ReservationStatus]bool{
		{types.RESERVATION_PENDING, types.RESERVATION_APPROVED}:   true,
		{types.RESERVATION_PENDING, types.RESERVATION_DECLINED}:   true,
		{types.RESERVATION_PENDING, types.RESERVATION_CANCELLED}:  true,
		{types.RESERVATION_APPROVED, types.RESERVATION_CANCELLED}: true,
		{types.RESERVATION_APPROVED, types.RESERVATION_COMPLETED}: true,
	}
	count := 0
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			_, ok := transitions[from][to]
			assert.Equalf(t, legal[[2]types.ReservationStatus{from, to}], ok,
				"transition %s -> %s", from, to)
			if ok {
				count++
			}
		}
	}
	assert.Equal(t, 5, count)
}

func TestTransitionRoles(t *testing.T) {
	assert.Equal(t, RoleHost, transitions[types.RESERVATION_PENDING][types.RESERVATION_APPROVED].role)
	assert.Equal(t, RoleHost, transitions[types.RESERVATION_PENDING][types.RESERVATION_DECLINED].role)
	assert.Equal(t, RoleClient, transitions[types.RESERVATION_PENDING][types.RESERVATION_CANCELLED].role)
	assert.Equal(t, RoleClient, transitions[types.RESERVATION_APPROVED][types.RESERVATION_CANCELLED].role)
	assert.Equal(t, RoleHost, transitions[types.RESERVATION_APPROVED][types.RESERVATION_COMPLETED].role)
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	for _, terminal := range []types.ReservationStatus{
		types.RESERVATION_DECLINED,
		types.RESERVATION_CANCELLED,
		types.RESERVATION_COMPLETED,
	} {
		assert.Empty(t, transitions[terminal])
	}
}
