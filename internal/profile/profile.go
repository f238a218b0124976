package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/apperr"
)

// Profile holds the public-facing details of a user. One row per user,
// created empty at registration.
type Profile struct {
	ID          uint64    `gorm:"primaryKey"`
	UserID      uint64    `gorm:"uniqueIndex;not null"`
	FullName    string    `gorm:"type:text;not null;default:''"`
	PhoneNumber string    `gorm:"type:text;not null;default:''"`
	Bio         string    `gorm:"type:text;not null;default:''"`
	Image       string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;default:now()"`
	UpdatedAt   time.Time `gorm:"not null;default:now()"`
}

type Service struct {
	DB *gorm.DB
}

type UpdateInput struct {
	FullName    *string
	PhoneNumber *string
	Bio         *string
	Image       *string
}

func (s *Service) CreateForUser(tx *gorm.DB, userID uint64) error {
	return tx.Create(&Profile{UserID: userID}).Error
}

func (s *Service) GetByUserID(ctx context.Context, userID uint64) (*Profile, error) {
	var p Profile
	err := s.DB.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) UpdateOwn(ctx context.Context, userID uint64, in UpdateInput) (*Profile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.PhoneNumber != nil {
		p.PhoneNumber = *in.PhoneNumber
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
