package evaluation

import "time"

// Evaluation is the owner's review of the cleaner who performed a
// cleaning. One per (cleaning, cleaner), enforced by the composite key.
type Evaluation struct {
	CleaningID uint64 `gorm:"primaryKey;autoIncrement:false"`
	CleanerID  uint64 `gorm:"primaryKey;autoIncrement:false"`

	NoShow   bool    `gorm:"not null;default:false"`
	Headline *string `gorm:"type:text"`
	Comment  *string `gorm:"type:text"`

	// dimension ratings are optional, overall is required; all 0..5
	Professionalism *int
	Completeness    *int
	Efficiency      *int
	OverallRating   int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
