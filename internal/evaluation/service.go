package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/apperr"
	"github.com/nifadyev/phresh/internal/cleaning"
	"github.com/nifadyev/phresh/internal/offer"
)

type Service struct {
	DB     *gorm.DB
	Offers *offer.Service
}

type CreateInput struct {
	NoShow          bool
	Headline        *string
	Comment         *string
	Professionalism *int
	Completeness    *int
	Efficiency      *int
	OverallRating   int
}

// Create records the owner's evaluation of the cleaner and marks the
// cleaner's accepted offer completed, in one transaction. A second
// evaluation for the same (cleaning, cleaner) pair hits the composite key
// and fails as a conflict.
func (s *Service) Create(ctx context.Context, callerID, cleaningID, cleanerID uint64, in CreateInput) (*Evaluation, error) {
	if err := validRatings(in); err != nil {
		return nil, err
	}

	var ev Evaluation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c cleaning.Cleaning
		if err := tx.First(&c, "id = ?", cleaningID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cleaning %d: %w", cleaningID, apperr.ErrNotFound)
			}
			return err
		}
		if c.OwnerID != callerID {
			return fmt.Errorf("only the owner may evaluate the cleaner: %w", apperr.ErrForbidden)
		}

		now := time.Now().UTC()
		ev = Evaluation{
			CleaningID:      cleaningID,
			CleanerID:       cleanerID,
			NoShow:          in.NoShow,
			Headline:        in.Headline,
			Comment:         in.Comment,
			Professionalism: in.Professionalism,
			Completeness:    in.Completeness,
			Efficiency:      in.Efficiency,
			OverallRating:   in.OverallRating,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Create(&ev).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("cleaner already evaluated for this cleaning: %w", apperr.ErrConflict)
			}
			return err
		}

		// accepted -> completed; anything else is an illegal transition
		if _, err := s.Offers.MarkCompleted(tx, cleaningID, cleanerID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Service) Get(ctx context.Context, cleaningID, cleanerID uint64) (*Evaluation, error) {
	var ev Evaluation
	err := s.DB.WithContext(ctx).
		Where("cleaning_id = ? AND cleaner_id = ?", cleaningID, cleanerID).
		First(&ev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &ev, nil
}

func (s *Service) ListForCleaner(ctx context.Context, cleanerID uint64) ([]Evaluation, error) {
	var out []Evaluation
	err := s.DB.WithContext(ctx).
		Where("cleaner_id = ?", cleanerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (s *Service) StatsForCleaner(ctx context.Context, cleanerID uint64) (Stats, error) {
	evals, err := s.ListForCleaner(ctx, cleanerID)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(evals), nil
}

func validRatings(in CreateInput) error {
	check := func(name string, v *int) error {
		if v != nil && (*v < 0 || *v > 5) {
			return fmt.Errorf("%s rating must be 0..5: %w", name, apperr.ErrInvalidState)
		}
		return nil
	}
	if in.OverallRating < 0 || in.OverallRating > 5 {
		return fmt.Errorf("overall rating must be 0..5: %w", apperr.ErrInvalidState)
	}
	for name, v := range map[string]*int{
		"professionalism": in.Professionalism,
		"completeness":    in.Completeness,
		"efficiency":      in.Efficiency,
	} {
		if err := check(name, v); err != nil {
			return err
		}
	}
	return nil
}
