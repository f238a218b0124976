package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nifadyev/phresh/internal/apperr"
	"github.com/nifadyev/phresh/internal/cleaning"
	"github.com/nifadyev/phresh/internal/jobs"
)

// Service runs the offer lifecycle against the store. Accept and cancel
// span exactly two statements (target update + sibling fan-out) inside a
// single transaction holding FOR UPDATE locks on the cleaning's offer
// rows; a partial unique index on accepted offers backs the ≤1-accepted
// invariant when two accepts race anyway.
type Service struct {
	DB *gorm.DB
}

func (s *Service) Create(ctx context.Context, callerID, cleaningID uint64) (*Offer, error) {
	var o Offer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.getCleaning(tx, cleaningID)
		if err != nil {
			return err
		}

		existing, err := s.find(tx, cleaningID, callerID)
		if err != nil {
			return err
		}
		if err := CanCreate(callerID, c, existing); err != nil {
			return err
		}

		now := time.Now().UTC()
		o = Offer{
			CleaningID: cleaningID,
			UserID:     callerID,
			Status:     Pending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return tx.Create(&o).Error
	})
	if err != nil {
		// composite PK: a racing duplicate create loses here
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("offer already exists: %w", apperr.ErrConflict)
		}
		// the cleaning was deleted between the read and the insert; the
		// offers->cleanings FK catches the leftover window
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("cleaning: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &o, nil
}

func (s *Service) List(ctx context.Context, callerID, cleaningID uint64) ([]Offer, error) {
	c, err := s.getCleaning(s.DB.WithContext(ctx), cleaningID)
	if err != nil {
		return nil, err
	}
	if err := CanList(callerID, c); err != nil {
		return nil, err
	}

	var out []Offer
	err = s.DB.WithContext(ctx).
		Where("cleaning_id = ?", cleaningID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

func (s *Service) Get(ctx context.Context, callerID, cleaningID, bidderID uint64) (*Offer, error) {
	c, err := s.getCleaning(s.DB.WithContext(ctx), cleaningID)
	if err != nil {
		return nil, err
	}
	o, err := s.find(s.DB.WithContext(ctx), cleaningID, bidderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("offer: %w", apperr.ErrNotFound)
	}
	if err := CanGet(callerID, c, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Accept moves the bidder's pending offer to accepted and rejects every
// other pending offer on the cleaning, atomically.
func (s *Service) Accept(ctx context.Context, callerID, cleaningID, bidderID uint64) (*Offer, error) {
	var accepted *Offer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.getCleaning(tx, cleaningID)
		if err != nil {
			return err
		}

		target, siblings, err := s.lockOffers(tx, cleaningID, bidderID)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("offer: %w", apperr.ErrNotFound)
		}
		if err := CanAccept(callerID, c, target, siblings); err != nil {
			return err
		}

		if accepted, err = s.apply(tx, target, OpAccept); err != nil {
			return err
		}

		if err := jobs.EnqueueNotify(tx, bidderID, cleaningID, jobs.NotifyAccepted); err != nil {
			return err
		}
		for _, sib := range siblings {
			if sib.Status != Pending {
				continue
			}
			if err := jobs.EnqueueNotify(tx, sib.UserID, cleaningID, jobs.NotifyRejected); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// two accepts raced; the loser trips uq_offers_accepted
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("cleaning already has an accepted offer: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return accepted, nil
}

// Cancel moves the caller's accepted offer to cancelled and reverts the
// rejected siblings to pending, reopening the bidding.
func (s *Service) Cancel(ctx context.Context, callerID, cleaningID uint64) (*Offer, error) {
	var cancelled *Offer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.getCleaning(tx, cleaningID)
		if err != nil {
			return err
		}

		target, siblings, err := s.lockOffers(tx, cleaningID, callerID)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("offer: %w", apperr.ErrNotFound)
		}
		if err := CanCancel(callerID, target); err != nil {
			return err
		}

		if cancelled, err = s.apply(tx, target, OpCancel); err != nil {
			return err
		}

		if err := jobs.EnqueueNotify(tx, c.OwnerID, cleaningID, jobs.NotifyCancelled); err != nil {
			return err
		}
		for _, sib := range siblings {
			if sib.Status != Rejected {
				continue
			}
			if err := jobs.EnqueueNotify(tx, sib.UserID, cleaningID, jobs.NotifyReopened); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Rescind deletes the caller's pending offer. Any other status forbids
// deletion.
func (s *Service) Rescind(ctx context.Context, callerID, cleaningID uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getCleaning(tx, cleaningID); err != nil {
			return err
		}

		target, _, err := s.lockOffers(tx, cleaningID, callerID)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("offer: %w", apperr.ErrNotFound)
		}
		if err := CanRescind(callerID, target); err != nil {
			return err
		}

		if _, err := s.apply(tx, target, OpRescind); err != nil {
			return err
		}
		return nil
	})
}

// MarkCompleted is invoked by the evaluation store inside its own
// transaction, after the evaluation row is persisted.
func (s *Service) MarkCompleted(tx *gorm.DB, cleaningID, bidderID uint64) (*Offer, error) {
	target, _, err := s.lockOffers(tx, cleaningID, bidderID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("offer: %w", apperr.ErrNotFound)
	}
	return s.apply(tx, target, OpComplete)
}

// apply executes the declared transition for (target.Status, op): the
// target update plus, when declared, the sibling fan-out. Undeclared
// pairs fail without touching the store.
func (s *Service) apply(tx *gorm.DB, target *Offer, op Operation) (*Offer, error) {
	t, ok := plan(target.Status, op)
	if !ok {
		return nil, fmt.Errorf("cannot %s a %s offer: %w", op, target.Status, apperr.ErrInvalidState)
	}

	now := time.Now().UTC()

	if t.Delete {
		err := tx.Where("cleaning_id = ? AND user_id = ?", target.CleaningID, target.UserID).
			Delete(&Offer{}).Error
		return nil, err
	}

	err := tx.Model(&Offer{}).
		Where("cleaning_id = ? AND user_id = ?", target.CleaningID, target.UserID).
		Updates(map[string]any{"status": t.Next, "updated_at": now}).Error
	if err != nil {
		return nil, err
	}

	if t.Sibling != nil {
		err = tx.Model(&Offer{}).
			Where("cleaning_id = ? AND user_id != ? AND status = ?",
				target.CleaningID, target.UserID, t.Sibling.Match).
			Updates(map[string]any{"status": t.Sibling.To, "updated_at": now}).Error
		if err != nil {
			return nil, err
		}
	}

	out := *target
	out.Status = t.Next
	out.UpdatedAt = now
	return &out, nil
}

// lockOffers takes FOR UPDATE locks on every offer row of the cleaning,
// in a stable order, and splits out the bidder's row. Serializes
// concurrent transitions on the same cleaning.
func (s *Service) lockOffers(tx *gorm.DB, cleaningID, bidderID uint64) (*Offer, []Offer, error) {
	var rows []Offer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cleaning_id = ?", cleaningID).
		Order("user_id asc").
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	var target *Offer
	siblings := make([]Offer, 0, len(rows))
	for i := range rows {
		if rows[i].UserID == bidderID {
			target = &rows[i]
			continue
		}
		siblings = append(siblings, rows[i])
	}
	return target, siblings, nil
}

func (s *Service) find(tx *gorm.DB, cleaningID, userID uint64) (*Offer, error) {
	var o Offer
	err := tx.Where("cleaning_id = ? AND user_id = ?", cleaningID, userID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (s *Service) getCleaning(tx *gorm.DB, id uint64) (*cleaning.Cleaning, error) {
	var c cleaning.Cleaning
	if err := tx.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cleaning %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}
