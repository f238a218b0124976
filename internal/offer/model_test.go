package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	t.Run("accept is pending-only and rejects pending siblings", func(t *testing.T) {
		tr, ok := plan(Pending, OpAccept)
		require.True(t, ok)
		assert.Equal(t, Accepted, tr.Next)
		require.NotNil(t, tr.Sibling)
		assert.Equal(t, Pending, tr.Sibling.Match)
		assert.Equal(t, Rejected, tr.Sibling.To)

		for _, from := range []Status{Accepted, Rejected, Cancelled, Completed} {
			_, ok := plan(from, OpAccept)
			assert.False(t, ok, "accept from %s must be illegal", from)
		}
	})

	t.Run("cancel is accepted-only and reopens rejected siblings", func(t *testing.T) {
		tr, ok := plan(Accepted, OpCancel)
		require.True(t, ok)
		assert.Equal(t, Cancelled, tr.Next)
		require.NotNil(t, tr.Sibling)
		assert.Equal(t, Rejected, tr.Sibling.Match)
		assert.Equal(t, Pending, tr.Sibling.To)

		for _, from := range []Status{Pending, Rejected, Cancelled, Completed} {
			_, ok := plan(from, OpCancel)
			assert.False(t, ok, "cancel from %s must be illegal", from)
		}
	})

	t.Run("rescind deletes and is pending-only", func(t *testing.T) {
		tr, ok := plan(Pending, OpRescind)
		require.True(t, ok)
		assert.True(t, tr.Delete)
		assert.Nil(t, tr.Sibling)

		for _, from := range []Status{Accepted, Rejected, Cancelled, Completed} {
			_, ok := plan(from, OpRescind)
			assert.False(t, ok, "rescind from %s must be illegal", from)
		}
	})

	t.Run("complete is accepted-only with no fan-out", func(t *testing.T) {
		tr, ok := plan(Accepted, OpComplete)
		require.True(t, ok)
		assert.Equal(t, Completed, tr.Next)
		assert.Nil(t, tr.Sibling)

		for _, from := range []Status{Pending, Rejected, Cancelled, Completed} {
			_, ok := plan(from, OpComplete)
			assert.False(t, ok, "complete from %s must be illegal", from)
		}
	})

	t.Run("terminal statuses allow nothing", func(t *testing.T) {
		for _, from := range []Status{Cancelled, Completed, Rejected} {
			for _, op := range []Operation{OpAccept, OpCancel, OpRescind, OpComplete} {
				_, ok := plan(from, op)
				assert.False(t, ok, "%s from %s must be illegal", op, from)
			}
		}
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{Pending, Accepted, Rejected, Cancelled, Completed} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus(Status("paid")))
	assert.False(t, ValidStatus(Status("")))
}
