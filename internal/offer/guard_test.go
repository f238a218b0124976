package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nifadyev/phresh/internal/apperr"
	"github.com/nifadyev/phresh/internal/cleaning"
)

const (
	ownerID  = uint64(1)
	bidderID = uint64(2)
	otherID  = uint64(3)
)

func testCleaning() *cleaning.Cleaning {
	return &cleaning.Cleaning{ID: 10, OwnerID: ownerID}
}

func TestCanCreate(t *testing.T) {
	c := testCleaning()

	t.Run("non-owner without prior offer may bid", func(t *testing.T) {
		require.NoError(t, CanCreate(bidderID, c, nil))
	})

	t.Run("owner cannot bid on own cleaning", func(t *testing.T) {
		err := CanCreate(ownerID, c, nil)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("second offer from same user conflicts", func(t *testing.T) {
		existing := &Offer{CleaningID: c.ID, UserID: bidderID, Status: Pending}
		err := CanCreate(bidderID, c, existing)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestCanListAndGet(t *testing.T) {
	c := testCleaning()
	o := &Offer{CleaningID: c.ID, UserID: bidderID, Status: Pending}

	t.Run("only owner lists", func(t *testing.T) {
		require.NoError(t, CanList(ownerID, c))
		assert.ErrorIs(t, CanList(bidderID, c), apperr.ErrForbidden)
	})

	t.Run("owner and bidder view, others do not", func(t *testing.T) {
		require.NoError(t, CanGet(ownerID, c, o))
		require.NoError(t, CanGet(bidderID, c, o))
		assert.ErrorIs(t, CanGet(otherID, c, o), apperr.ErrForbidden)
	})
}

func TestCanAccept(t *testing.T) {
	c := testCleaning()
	target := &Offer{CleaningID: c.ID, UserID: bidderID, Status: Pending}

	t.Run("owner accepts pending offer", func(t *testing.T) {
		require.NoError(t, CanAccept(ownerID, c, target, nil))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := CanAccept(bidderID, c, target, nil)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("non-pending target is invalid state", func(t *testing.T) {
		for _, s := range []Status{Accepted, Rejected, Cancelled, Completed} {
			err := CanAccept(ownerID, c, &Offer{CleaningID: c.ID, UserID: bidderID, Status: s}, nil)
			assert.ErrorIs(t, err, apperr.ErrInvalidState, "status %s", s)
		}
	})

	t.Run("existing accepted sibling blocks accept", func(t *testing.T) {
		siblings := []Offer{{CleaningID: c.ID, UserID: otherID, Status: Accepted}}
		err := CanAccept(ownerID, c, target, siblings)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})
}

func TestCanCancel(t *testing.T) {
	t.Run("bidder cancels accepted offer", func(t *testing.T) {
		o := &Offer{UserID: bidderID, Status: Accepted}
		require.NoError(t, CanCancel(bidderID, o))
	})

	t.Run("someone else is forbidden", func(t *testing.T) {
		o := &Offer{UserID: bidderID, Status: Accepted}
		assert.ErrorIs(t, CanCancel(otherID, o), apperr.ErrForbidden)
	})

	t.Run("non-accepted statuses are invalid state", func(t *testing.T) {
		for _, s := range []Status{Pending, Rejected, Cancelled, Completed} {
			o := &Offer{UserID: bidderID, Status: s}
			assert.ErrorIs(t, CanCancel(bidderID, o), apperr.ErrInvalidState, "status %s", s)
		}
	})
}

func TestCanRescind(t *testing.T) {
	t.Run("bidder rescinds pending offer", func(t *testing.T) {
		o := &Offer{UserID: bidderID, Status: Pending}
		require.NoError(t, CanRescind(bidderID, o))
	})

	t.Run("someone else is forbidden", func(t *testing.T) {
		o := &Offer{UserID: bidderID, Status: Pending}
		assert.ErrorIs(t, CanRescind(otherID, o), apperr.ErrForbidden)
	})

	t.Run("any other status is invalid state", func(t *testing.T) {
		for _, s := range []Status{Accepted, Rejected, Cancelled, Completed} {
			o := &Offer{UserID: bidderID, Status: s}
			assert.ErrorIs(t, CanRescind(bidderID, o), apperr.ErrInvalidState, "status %s", s)
		}
	})
}
