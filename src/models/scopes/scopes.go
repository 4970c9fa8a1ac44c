package scopes

import "gorm.io/gorm"

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithIDs(ids ...uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (?)", ids)
	}
}

func WithPendingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "pending")
}

// WithOpenStatus selects reservations still occupying or requesting space:
// pending and approved, the two non-terminal statuses.
func WithOpenStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status IN (?)", []string{"pending", "approved"})
}

func ForListing(listingID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("listing_id = ?", listingID)
	}
}
