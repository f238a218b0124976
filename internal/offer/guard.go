package offer

import (
	"fmt"

	"github.com/nifadyev/phresh/internal/apperr"
	"github.com/nifadyev/phresh/internal/cleaning"
)

// Permission guards. Pure predicates over already-fetched snapshots; no
// I/O happens here. Authorization failures wrap ErrForbidden, business
// rule failures wrap ErrInvalidState so handlers can keep 403 and 400
// apart.

func CanCreate(callerID uint64, c *cleaning.Cleaning, existing *Offer) error {
	if c.OwnerID == callerID {
		return fmt.Errorf("owners cannot bid on their own cleaning: %w", apperr.ErrInvalidState)
	}
	if existing != nil {
		return fmt.Errorf("only one offer per cleaning per user: %w", apperr.ErrConflict)
	}
	return nil
}

func CanList(callerID uint64, c *cleaning.Cleaning) error {
	if c.OwnerID != callerID {
		return fmt.Errorf("only the owner may list offers: %w", apperr.ErrForbidden)
	}
	return nil
}

func CanGet(callerID uint64, c *cleaning.Cleaning, o *Offer) error {
	if c.OwnerID != callerID && o.UserID != callerID {
		return fmt.Errorf("offer is visible to its bidder and the owner only: %w", apperr.ErrForbidden)
	}
	return nil
}

func CanAccept(callerID uint64, c *cleaning.Cleaning, target *Offer, siblings []Offer) error {
	if c.OwnerID != callerID {
		return fmt.Errorf("only the owner may accept offers: %w", apperr.ErrForbidden)
	}
	if target.Status != Pending {
		return fmt.Errorf("can only accept pending offers: %w", apperr.ErrInvalidState)
	}
	for _, sib := range siblings {
		if sib.Status == Accepted {
			return fmt.Errorf("cleaning already has an accepted offer: %w", apperr.ErrInvalidState)
		}
	}
	return nil
}

func CanCancel(callerID uint64, o *Offer) error {
	if o.UserID != callerID {
		return fmt.Errorf("only the bidder may cancel their offer: %w", apperr.ErrForbidden)
	}
	if o.Status != Accepted {
		return fmt.Errorf("can only cancel accepted offers: %w", apperr.ErrInvalidState)
	}
	return nil
}

func CanRescind(callerID uint64, o *Offer) error {
	if o.UserID != callerID {
		return fmt.Errorf("only the bidder may rescind their offer: %w", apperr.ErrForbidden)
	}
	if o.Status != Pending {
		return fmt.Errorf("can only rescind pending offers: %w", apperr.ErrInvalidState)
	}
	return nil
}
