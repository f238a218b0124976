package cleaning

import "time"

type Type string

const (
	DustUp    Type = "dust_up"
	SpotClean Type = "spot_clean"
	FullClean Type = "full_clean"
)

func ValidType(t Type) bool {
	switch t {
	case DustUp, SpotClean, FullClean:
		return true
	default:
		return false
	}
}

// Cleaning is a job posting, open for bidding. Owned exclusively by its
// creator; updated_at feeds the activity feed.
type Cleaning struct {
	ID          uint64    `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Price       float64   `gorm:"not null"`
	Type        Type      `gorm:"type:text;not null;default:'spot_clean'"`
	OwnerID     uint64    `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"index;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"index;not null;default:now()"`
}
