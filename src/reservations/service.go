package reservations

import (
	"context"
	"log"
	"stowage/src/models"
	"stowage/src/types"
	"time"
)

// Service is the single mutation path for reservations and their bookings.
// Collaborators come in through the constructor; nothing registers itself
// on a global bus.
type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

type CreateParams struct {
	ListingID      uint
	ClientID       uint
	SpaceRequested float64
	StartDate      time.Time
	EndDate        time.Time
	Message        *string
	Items          *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Reservation, error) {
	if params.SpaceRequested <= 0 {
		return nil, newError(CodeInvalidInput, "space requested must be positive")
	}
	if !params.EndDate.After(params.StartDate) {
		return nil, newError(CodeInvalidInput, "end date must be after start date")
	}
	listing, err := s.repo.ListingWithBookings(ctx, params.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.HostID == params.ClientID {
		return nil, ErrOwnListing
	}
	if !listing.IsActive {
		return nil, newError(CodeInvalidInput, "listing is not accepting reservations")
	}
	if listing.AvailableFrom != nil && params.StartDate.Before(*listing.AvailableFrom) {
		return nil, newError(CodeInvalidInput, "requested dates start before the listing opens")
	}
	if listing.AvailableTo != nil && params.EndDate.After(*listing.AvailableTo) {
		return nil, newError(CodeInvalidInput, "requested dates end after the listing closes")
	}
	available := AvailableSpace(listing.Bookings, params.StartDate, params.EndDate, listing.SpaceAvailable)
	if available < params.SpaceRequested {
		return nil, newError(CodeInvalidInput, "not enough space available: %.2f left, %.2f requested", available, params.SpaceRequested)
	}

	reservation := &models.Reservation{
		ListingID:      listing.ID,
		HostID:         listing.HostID,
		ClientID:       params.ClientID,
		SpaceRequested: params.SpaceRequested,
		StartDate:      params.StartDate,
		EndDate:        params.EndDate,
		TotalCost:      TotalCost(listing.Price, params.SpaceRequested, params.StartDate, params.EndDate),
		Status:         types.RESERVATION_PENDING,
		Message:        params.Message,
		Items:          params.Items,
	}
	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	created, err := s.repo.ReservationWithListing(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	s.notify(s.notifier.NotifyHostOfNewReservation, created)
	return created, nil
}

// UpdateStatus dispatches a status change through the transition table, or,
// when only the rated flag is supplied, records client feedback under the
// same preconditions Rate enforces.
func (s *Service) UpdateStatus(ctx context.Context, reservationID, userID uint, status *types.ReservationStatus, rated *bool) (*models.Reservation, error) {
	reservation, err := s.repo.ReservationWithListing(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	isHost := reservation.HostID == userID
	isClient := reservation.ClientID == userID
	if !isHost && !isClient {
		return nil, ErrNotParticipant
	}

	if status != nil {
		t, ok := transitions[reservation.Status][*status]
		if !ok {
			return nil, newError(CodeInvalidTransition, "cannot transition reservation from %s to %s", reservation.Status, *status)
		}
		if (t.role == RoleHost && !isHost) || (t.role == RoleClient && !isClient) {
			return nil, newError(CodeForbidden, "only the %s may perform this action", t.role)
		}
		if err := t.apply(ctx, s, reservation); err != nil {
			return nil, err
		}
		return reservation, nil
	}

	if rated != nil {
		if !*rated {
			return nil, newError(CodeInvalidInput, "rated can only be set to true")
		}
		if err := ratingPreconditions(reservation, userID, s.now()); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateReservation(ctx, reservation.ID, map[string]any{"rated": true}); err != nil {
			return nil, err
		}
		reservation.Rated = true
	}
	return reservation, nil
}

// Rate records the client's verdict on a finished stay: the listing's like
// counter moves only on a positive vote, but the reservation is marked
// rated either way so a verdict cannot be cast twice.
func (s *Service) Rate(ctx context.Context, listingID, userID, reservationID uint, liked bool) error {
	reservation, err := s.repo.ReservationWithListing(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.ListingID != listingID {
		return ErrRatingWrongListing
	}
	if err := ratingPreconditions(reservation, userID, s.now()); err != nil {
		return err
	}
	return s.repo.RateListing(ctx, listingID, reservationID, liked)
}

// ratingPreconditions is shared by Rate and the rated-flag path of
// UpdateStatus so the two entry points cannot drift apart. Each failure
// mode is its own error.
func ratingPreconditions(r *models.Reservation, userID uint, now time.Time) error {
	if r.ClientID != userID {
		return ErrRatingNotClient
	}
	if r.Status != types.RESERVATION_APPROVED {
		return ErrRatingNotApproved
	}
	if r.Rated {
		return ErrRatingAlreadyRated
	}
	if r.StartDate.After(now) {
		return ErrRatingNotStarted
	}
	return nil
}

// notify runs a notification best-effort: failures are logged and never
// reach the caller, so a dead mail relay cannot fail a reservation.
func (s *Service) notify(fn func(*models.Reservation) error, r *models.Reservation) {
	if s.notifier == nil {
		return
	}
	if err := fn(r); err != nil {
		log.Printf("Error notifying for reservation [%d]: %s\n", r.ID, err.Error())
	}
}
