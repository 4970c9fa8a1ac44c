package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"stowage/src/config"
	"stowage/src/db"
	"stowage/src/lib"
	"stowage/src/models"
	"stowage/src/models/scopes"
	"stowage/src/reservations"
	"stowage/src/types"
	"time"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const availabilityCacheTTL = 5 * time.Minute

func CreateNewListing(params *types.CreateListingRequestBody, hostID uint) (uint, error) {
	listing := models.Listing{
		HostID:         hostID,
		Title:          params.Title,
		Slug:           slug.Make(params.Title),
		Location:       params.Location,
		Price:          params.Price,
		SpaceAvailable: params.SpaceAvailable,
	}
	if params.Description != "" {
		listing.Description = &params.Description
	}
	if params.IsActive != nil {
		listing.IsActive = *params.IsActive
	} else {
		listing.IsActive = true
	}
	if params.AvailableFrom != nil {
		from, err := time.Parse(config.DATE_PARSE_FORMAT, *params.AvailableFrom)
		if err != nil {
			log.Printf("Error parsing available_from: %s\n", err.Error())
			return 0, err
		}
		listing.AvailableFrom = &from
	}
	if params.AvailableTo != nil {
		to, err := time.Parse(config.DATE_PARSE_FORMAT, *params.AvailableTo)
		if err != nil {
			log.Printf("Error parsing available_to: %s\n", err.Error())
			return 0, err
		}
		listing.AvailableTo = &to
	}

	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var host models.User
		if err := tx.Scopes(scopes.WithID(hostID)).First(&host).Error; err != nil {
			return err
		}
		var taken int64
		if err := tx.Model(&models.Listing{}).Where("slug = ?", listing.Slug).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			listing.Slug = fmt.Sprintf("%s-%d", listing.Slug, time.Now().UnixMilli())
		}
		return tx.Create(&listing).Error
	})
	if err != nil {
		return 0, err
	}
	return listing.ID, nil
}

func GetListing(id uint) (*models.Listing, error) {
	var listing models.Listing
	db := db.GetDb()
	err := db.
		Preload("Host").
		Preload("Bookings").
		Scopes(scopes.WithID(id)).
		First(&listing).
		Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func FindListings(filters *types.ListingQueryFilters, userID uint) ([]models.Listing, error) {
	listings := make([]models.Listing, 0)
	db := db.GetDb()
	q := db.Model(&models.Listing{})
	if filters.Owned {
		q = q.Where(&models.Listing{HostID: userID})
	} else {
		q = q.Where(&models.Listing{IsActive: true})
	}
	if filters.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.MaxPrice != nil {
		q = q.Where("price <= ?", *filters.MaxPrice)
	}
	err := q.Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func UpdateListing(id uint, hostID uint, params *types.UpdateListingRequestBody) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.
			Where(&models.Listing{ID: id, HostID: hostID}).
			First(&listing).
			Error
		if err != nil {
			return err
		}
		patch := map[string]any{}
		if params.Title != nil {
			patch["title"] = *params.Title
			patch["slug"] = slug.Make(*params.Title)
		}
		if params.Description != nil {
			patch["description"] = *params.Description
		}
		if params.Location != nil {
			patch["location"] = *params.Location
		}
		if params.Price != nil {
			patch["price"] = *params.Price
		}
		if params.SpaceAvailable != nil {
			patch["space_available"] = *params.SpaceAvailable
		}
		if params.IsActive != nil {
			patch["is_active"] = *params.IsActive
		}
		if len(patch) == 0 {
			return nil
		}
		err = tx.
			Model(&models.Listing{}).
			Scopes(scopes.WithID(id)).
			Updates(patch).
			Error
		if err != nil {
			return err
		}
		invalidateAvailabilityCache(id)
		return nil
	})
}

// DeleteListing soft-deletes the listing and declines or cancels every open
// reservation against it in a single transaction owned by the repository.
// Affected clients are notified after the transaction commits.
func DeleteListing(ctx context.Context, id uint, hostID uint, repo reservations.Repository, notifier reservations.Notifier) error {
	affected, err := repo.RemoveListingWithCascade(ctx, id, hostID)
	if err != nil {
		return err
	}
	invalidateAvailabilityCache(id)
	for i := range affected {
		if err := notifier.NotifyClientOfStatusChange(&affected[i]); err != nil {
			log.Printf("Error notifying client %d: %s\n", affected[i].ClientID, err.Error())
		}
	}
	return nil
}

// ListingDailyAvailability computes the per-day free space for a listing,
// serving from redis when a fresh copy exists. Any write to the listing's
// bookings invalidates the whole key space for that listing.
func ListingDailyAvailability(ctx context.Context, listingID uint, start, end time.Time) ([]reservations.DaySpace, error) {
	key := fmt.Sprintf(
		"listing:%d:availability:%s:%s",
		listingID,
		start.Format(config.DATE_PARSE_FORMAT),
		end.Format(config.DATE_PARSE_FORMAT),
	)
	rd := lib.GetRedisClient()
	if rd != nil {
		cached, err := rd.Get(ctx, key).Result()
		if err == nil {
			days := make([]reservations.DaySpace, 0)
			if jerr := json.Unmarshal([]byte(cached), &days); jerr == nil {
				return days, nil
			} else {
				log.Printf("Error deserializing cached availability: %s\n", jerr.Error())
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("Error reading from cache: %s\n", err.Error())
		}
	}

	var listing models.Listing
	gdb := db.GetDb()
	err := gdb.
		Preload("Bookings").
		Scopes(scopes.WithID(listingID)).
		First(&listing).
		Error
	if err != nil {
		return nil, err
	}
	days := reservations.DailyAvailability(listing.Bookings, start, end, listing.SpaceAvailable)
	if rd != nil {
		if raw, err := json.Marshal(days); err == nil {
			if err := rd.Set(ctx, key, string(raw), availabilityCacheTTL).Err(); err != nil {
				log.Printf("Error writing to cache: %s\n", err.Error())
			}
		}
	}
	return days, nil
}

func invalidateAvailabilityCache(listingID uint) {
	ctx := context.Background()
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	pattern := fmt.Sprintf("listing:%d:availability:*", listingID)
	keys, err := rd.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("Error listing cache keys: %s\n", err.Error())
		return
	}
	if len(keys) > 0 {
		if err := rd.Del(ctx, keys...).Err(); err != nil {
			log.Printf("Error dropping cache keys: %s\n", err.Error())
		}
	}
}

func GetOwnReservations(userID uint) ([]models.Reservation, error) {
	list := make([]models.Reservation, 0)
	db := db.GetDb()
	err := db.
		Preload("Listing").
		Where(&models.Reservation{ClientID: userID}).
		Where("cleared_by_client = ?", false).
		Order("created_at DESC").
		Find(&list).
		Error
	return list, err
}

func GetHostReservations(userID uint) ([]models.Reservation, error) {
	list := make([]models.Reservation, 0)
	db := db.GetDb()
	err := db.
		Preload("Listing").
		Preload("Client").
		Where(&models.Reservation{HostID: userID}).
		Where("cleared_by_host = ?", false).
		Order("created_at DESC").
		Find(&list).
		Error
	return list, err
}

// ClearReservation hides a finished reservation from one party's history
// without touching the other party's view.
func ClearReservation(id uint, userID uint) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Scopes(scopes.WithID(id)).First(&reservation).Error; err != nil {
			return err
		}
		switch userID {
		case reservation.ClientID:
			return tx.
				Model(&models.Reservation{}).
				Scopes(scopes.WithID(id)).
				Update("cleared_by_client", true).
				Error
		case reservation.HostID:
			return tx.
				Model(&models.Reservation{}).
				Scopes(scopes.WithID(id)).
				Update("cleared_by_host", true).
				Error
		default:
			return errors.New("not a party to this reservation")
		}
	})
}

// ExpireStaleReservations declines pending reservations whose start date has
// already passed. Runs on a schedule from boot.
func ExpireStaleReservations(notifier reservations.Notifier) {
	gdb := db.GetDb()
	var stale []models.Reservation
	err := gdb.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Scopes(scopes.WithPendingStatus).
			Where("start_date < ?", time.Now()).
			Find(&stale).
			Error
		if err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(stale))
		for _, r := range stale {
			ids = append(ids, r.ID)
		}
		return tx.
			Model(&models.Reservation{}).
			Scopes(scopes.WithIDs(ids...)).
			Update("status", types.RESERVATION_DECLINED).
			Error
	})
	if err != nil {
		log.Printf("Error expiring stale reservations: %s\n", err.Error())
		return
	}
	for i := range stale {
		r := stale[i]
		r.Status = types.RESERVATION_DECLINED
		if err := notifier.NotifyClientOfStatusChange(&r); err != nil {
			log.Printf("Error notifying client %d: %s\n", r.ClientID, err.Error())
		}
	}
	if len(stale) > 0 {
		log.Printf("Declined %d stale reservations\n", len(stale))
	}
}
