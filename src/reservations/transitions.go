package reservations

import (
	"context"
	"stowage/src/models"
	"stowage/src/types"
)

type Role string

const (
	RoleHost   Role = "host"
	RoleClient Role = "client"
)

// transition couples the role allowed to trigger a status change with the
// effect the change carries. Legality is a table lookup: any (from, to)
// pair without an entry is rejected uniformly, whoever asks.
type transition struct {
	role  Role
	apply func(ctx context.Context, s *Service, r *models.Reservation) error
}

var transitions = map[types.ReservationStatus]map[types.ReservationStatus]transition{
	types.RESERVATION_PENDING: {
		types.RESERVATION_APPROVED:  {role: RoleHost, apply: applyApprove},
		types.RESERVATION_DECLINED:  {role: RoleHost, apply: applyDecline},
		types.RESERVATION_CANCELLED: {role: RoleClient, apply: applyCancel},
	},
	types.RESERVATION_APPROVED: {
		types.RESERVATION_CANCELLED: {role: RoleClient, apply: applyCancel},
		types.RESERVATION_COMPLETED: {role: RoleHost, apply: applyComplete},
	},
}

// applyApprove re-checks availability and writes the booking inside the
// repository transaction; losing the race surfaces as a Conflict and the
// reservation stays pending.
func applyApprove(ctx context.Context, s *Service, r *models.Reservation) error {
	if err := s.repo.ApproveWithBooking(ctx, r); err != nil {
		return err
	}
	r.Status = types.RESERVATION_APPROVED
	s.notify(s.notifier.NotifyClientOfStatusChange, r)
	return nil
}

func applyDecline(ctx context.Context, s *Service, r *models.Reservation) error {
	if err := s.repo.UpdateReservation(ctx, r.ID, map[string]any{"status": types.RESERVATION_DECLINED}); err != nil {
		return err
	}
	r.Status = types.RESERVATION_DECLINED
	s.notify(s.notifier.NotifyClientOfStatusChange, r)
	return nil
}

// applyCancel serves both the pending and the approved case: the booking
// cleanup is a no-op when no booking was ever created.
func applyCancel(ctx context.Context, s *Service, r *models.Reservation) error {
	if err := s.repo.CancelWithBookingCleanup(ctx, r); err != nil {
		return err
	}
	r.Status = types.RESERVATION_CANCELLED
	s.notify(s.notifier.NotifyHostOfCancellation, r)
	return nil
}

func applyComplete(ctx context.Context, s *Service, r *models.Reservation) error {
	if r.EndDate.After(s.now()) {
		return newError(CodeInvalidInput, "cannot complete a reservation before its term ends")
	}
	if err := s.repo.UpdateReservation(ctx, r.ID, map[string]any{"status": types.RESERVATION_COMPLETED}); err != nil {
		return err
	}
	r.Status = types.RESERVATION_COMPLETED
	return nil
}
