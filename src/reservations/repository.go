package reservations

import (
	"context"
	"errors"
	"log"
	"stowage/src/models"
	"stowage/src/models/scopes"
	"stowage/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the persistence port for reservation lifecycle management.
// The transactional methods bundle the booking mutation and the status
// write so a reservation and its booking can never disagree.
type Repository interface {
	ListingWithBookings(ctx context.Context, id uint) (*models.Listing, error)
	ReservationWithListing(ctx context.Context, id uint) (*models.Reservation, error)
	CreateReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservation(ctx context.Context, id uint, patch map[string]any) error
	ApproveWithBooking(ctx context.Context, r *models.Reservation) error
	CancelWithBookingCleanup(ctx context.Context, r *models.Reservation) error
	RateListing(ctx context.Context, listingID, reservationID uint, liked bool) error
	RemoveListingWithCascade(ctx context.Context, listingID, hostID uint) ([]models.Reservation, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (g *gormRepository) ListingWithBookings(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := g.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where(&models.Listing{ID: id}).
		Preload("Bookings").
		Preload("Host").
		First(&listing).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (g *gormRepository) ReservationWithListing(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := g.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(&models.Reservation{ID: id}).
		Preload("Listing").
		Preload("Listing.Bookings").
		Preload("Host").
		Preload("Client").
		First(&reservation).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (g *gormRepository) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		return nil
	})
}

func (g *gormRepository) UpdateReservation(ctx context.Context, id uint, patch map[string]any) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: id}).
			Updates(patch).
			Error; err != nil {
			return err
		}
		return nil
	})
}

// ApproveWithBooking performs the check-then-act of an approval inside one
// transaction: the listing row is locked, bookings are re-read and the
// availability re-computed immediately before the booking insert. Two
// racing approvals therefore serialize, and the loser gets
// ErrSpaceUnavailable instead of overbooking the listing.
func (g *gormRepository) ApproveWithBooking(ctx context.Context, r *models.Reservation) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Listing{ID: r.ListingID}).
			First(&listing).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		var bookings []models.Booking
		if err := tx.
			Where(&models.Booking{ListingID: r.ListingID}).
			Find(&bookings).
			Error; err != nil {
			return err
		}
		available := AvailableSpace(bookings, r.StartDate, r.EndDate, listing.SpaceAvailable)
		if available < r.SpaceRequested {
			return ErrSpaceUnavailable
		}
		booking := models.Booking{
			ListingID:     r.ListingID,
			ReservationID: r.ID,
			StartDate:     r.StartDate,
			EndDate:       r.EndDate,
			ReservedSpace: r.SpaceRequested,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: r.ID}).
			Update("status", types.RESERVATION_APPROVED).
			Error; err != nil {
			return err
		}
		return nil
	})
}

// CancelWithBookingCleanup removes the booking owned by the reservation,
// then marks the reservation cancelled. Matching on reservation_id keeps
// sibling bookings with identical dates and space intact. Safe to call
// when no booking exists (a pending reservation never created one).
func (g *gormRepository) CancelWithBookingCleanup(ctx context.Context, r *models.Reservation) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Booking{ListingID: r.ListingID, ReservationID: r.ID}).
			Delete(&models.Booking{}).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: r.ID}).
			Update("status", types.RESERVATION_CANCELLED).
			Error; err != nil {
			return err
		}
		return nil
	})
}

func (g *gormRepository) RateListing(ctx context.Context, listingID, reservationID uint, liked bool) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if liked {
			if err := tx.
				Model(&models.Listing{}).
				Where(&models.Listing{ID: listingID}).
				Update("likes", gorm.Expr("likes + 1")).
				Error; err != nil {
				return err
			}
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: reservationID}).
			Update("rated", true).
			Error; err != nil {
			return err
		}
		return nil
	})
}

// RemoveListingWithCascade soft-deletes the listing and resolves every open
// reservation against it in the same transaction: pending reservations
// decline, approved ones cancel, and every booking for the listing goes
// away. Returns the affected reservations carrying their new status so
// callers can notify their clients.
func (g *gormRepository) RemoveListingWithCascade(ctx context.Context, listingID, hostID uint) ([]models.Reservation, error) {
	var affected []models.Reservation
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.
			Where(&models.Listing{ID: listingID, HostID: hostID}).
			First(&listing).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}
		if err := tx.
			Scopes(scopes.ForListing(listingID), scopes.WithOpenStatus).
			Find(&affected).
			Error; err != nil {
			return err
		}
		if err := tx.
			Where(&models.Booking{ListingID: listingID}).
			Delete(&models.Booking{}).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where("listing_id = ? AND status = ?", listingID, types.RESERVATION_PENDING).
			Update("status", types.RESERVATION_DECLINED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where("listing_id = ? AND status = ?", listingID, types.RESERVATION_APPROVED).
			Update("status", types.RESERVATION_CANCELLED).
			Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, listingID).Error
	})
	if err != nil {
		if !errors.Is(err, ErrListingNotFound) {
			log.Printf("Error cascading reservation cleanup for listing [%d]: %s\n", listingID, err.Error())
		}
		return nil, err
	}
	for i := range affected {
		switch affected[i].Status {
		case types.RESERVATION_PENDING:
			affected[i].Status = types.RESERVATION_DECLINED
		case types.RESERVATION_APPROVED:
			affected[i].Status = types.RESERVATION_CANCELLED
		}
	}
	return affected, nil
}
