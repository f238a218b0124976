package cleaning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/apperr"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Type        Type
}

type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Type        *Type
}

func (s *Service) Create(ctx context.Context, ownerID uint64, in CreateInput) (*Cleaning, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price < 0 {
		return nil, fmt.Errorf("name and non-negative price required: %w", apperr.ErrInvalidState)
	}
	if in.Type == "" {
		in.Type = SpotClean
	}
	if !ValidType(in.Type) {
		return nil, fmt.Errorf("cleaning type %q: %w", in.Type, apperr.ErrInvalidState)
	}

	c := Cleaning{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Type:        in.Type,
		OwnerID:     ownerID,
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Get(ctx context.Context, id uint64) (*Cleaning, error) {
	var c Cleaning
	if err := s.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cleaning %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (s *Service) ListOwned(ctx context.Context, ownerID uint64) ([]Cleaning, error) {
	var out []Cleaning
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// Update mutates owner-editable fields and bumps updated_at so the feed
// picks the change up as an is_update event.
func (s *Service) Update(ctx context.Context, callerID, id uint64, in UpdateInput) (*Cleaning, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != callerID {
		return nil, fmt.Errorf("only the owner may update a cleaning: %w", apperr.ErrForbidden)
	}

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", apperr.ErrInvalidState)
		}
		c.Name = n
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative: %w", apperr.ErrInvalidState)
		}
		c.Price = *in.Price
	}
	if in.Type != nil {
		if !ValidType(*in.Type) {
			return nil, fmt.Errorf("cleaning type %q: %w", *in.Type, apperr.ErrInvalidState)
		}
		c.Type = *in.Type
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the cleaning and every offer referencing it.
func (s *Service) Delete(ctx context.Context, callerID, id uint64) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.OwnerID != callerID {
		return fmt.Errorf("only the owner may delete a cleaning: %w", apperr.ErrForbidden)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`delete from offers where cleaning_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&Cleaning{}, "id = ?", id).Error
	})
}

func (s *Service) CountOffers(ctx context.Context, id uint64) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Table("offers").
		Where("cleaning_id = ?", id).
		Count(&n).Error
	return n, err
}
