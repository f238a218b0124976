package jobs

import "time"

const TypeOfferNotify = "OFFER_NOTIFY"

// Notification events carried in the job payload.
const (
	NotifyAccepted  = "offer_accepted"
	NotifyRejected  = "offer_rejected"
	NotifyReopened  = "offer_reopened"
	NotifyCancelled = "offer_cancelled"
)

type NotifyPayload struct {
	CleaningID uint64 `json:"cleaning_id"`
	UserID     uint64 `json:"user_id"`
	Event      string `json:"event"`
}

type Job struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	Type    string `gorm:"type:text;not null"` // OFFER_NOTIFY
	Payload []byte `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	RunAt  time.Time `gorm:"index;not null"`
	Status string    `gorm:"index;not null;default:'PENDING'"` // PENDING/RUNNING/DONE/FAILED

	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:8"`

	LockedBy *string    `gorm:"type:text"`
	LockedAt *time.Time `gorm:"type:timestamptz"`

	LastError *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
