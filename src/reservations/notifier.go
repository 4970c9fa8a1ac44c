package reservations

import "stowage/src/models"

// Notifier is the outbound notification port. Implementations deliver
// best-effort; the orchestrator logs failures and never propagates them.
type Notifier interface {
	NotifyHostOfNewReservation(r *models.Reservation) error
	NotifyClientOfStatusChange(r *models.Reservation) error
	NotifyHostOfCancellation(r *models.Reservation) error
}
