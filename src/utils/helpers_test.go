package utils

import (
	"context"
	"errors"
	"stowage/src/models"
	"stowage/src/reservations"
	"stowage/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCascadeRepo struct {
	affected  []models.Reservation
	err       error
	listingID uint
	hostID    uint
}

func (s *stubCascadeRepo) RemoveListingWithCascade(_ context.Context, listingID, hostID uint) ([]models.Reservation, error) {
	s.listingID = listingID
	s.hostID = hostID
	if s.err != nil {
		return nil, s.err
	}
	return s.affected, nil
}

func (s *stubCascadeRepo) ListingWithBookings(context.Context, uint) (*models.Listing, error) {
	return nil, nil
}
func (s *stubCascadeRepo) ReservationWithListing(context.Context, uint) (*models.Reservation, error) {
	return nil, nil
}
func (s *stubCascadeRepo) CreateReservation(context.Context, *models.Reservation) error { return nil }
func (s *stubCascadeRepo) UpdateReservation(context.Context, uint, map[string]any) error {
	return nil
}
func (s *stubCascadeRepo) ApproveWithBooking(context.Context, *models.Reservation) error { return nil }
func (s *stubCascadeRepo) CancelWithBookingCleanup(context.Context, *models.Reservation) error {
	return nil
}
func (s *stubCascadeRepo) RateListing(context.Context, uint, uint, bool) error { return nil }

type statusNotifier struct {
	notified []types.ReservationStatus
	err      error
}

func (n *statusNotifier) NotifyHostOfNewReservation(*models.Reservation) error { return nil }
func (n *statusNotifier) NotifyHostOfCancellation(*models.Reservation) error   { return nil }
func (n *statusNotifier) NotifyClientOfStatusChange(r *models.Reservation) error {
	n.notified = append(n.notified, r.Status)
	return n.err
}

func TestDeleteListingNotifiesAffectedClients(t *testing.T) {
	repo := &stubCascadeRepo{
		affected: []models.Reservation{
			{ID: 1, ClientID: 2, Status: types.RESERVATION_DECLINED},
			{ID: 2, ClientID: 3, Status: types.RESERVATION_CANCELLED},
		},
	}
	n := &statusNotifier{}

	err := DeleteListing(context.Background(), 4, 9, repo, n)
	require.NoError(t, err)
	assert.Equal(t, uint(4), repo.listingID)
	assert.Equal(t, uint(9), repo.hostID)
	assert.Equal(t, []types.ReservationStatus{
		types.RESERVATION_DECLINED,
		types.RESERVATION_CANCELLED,
	}, n.notified)
}

func TestDeleteListingMissingListing(t *testing.T) {
	repo := &stubCascadeRepo{err: reservations.ErrListingNotFound}
	n := &statusNotifier{}

	err := DeleteListing(context.Background(), 4, 9, repo, n)
	assert.ErrorIs(t, err, reservations.ErrListingNotFound)
	assert.Empty(t, n.notified)
}

func TestDeleteListingNotifierFailureIgnored(t *testing.T) {
	repo := &stubCascadeRepo{
		affected: []models.Reservation{
			{ID: 1, ClientID: 2, Status: types.RESERVATION_DECLINED},
		},
	}
	n := &statusNotifier{err: errors.New("smtp down")}

	err := DeleteListing(context.Background(), 4, 9, repo, n)
	require.NoError(t, err)
	assert.Len(t, n.notified, 1)
}
