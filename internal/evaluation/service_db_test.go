package evaluation_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/apperr"
	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/cleaning"
	"github.com/nifadyev/phresh/internal/db"
	"github.com/nifadyev/phresh/internal/evaluation"
	"github.com/nifadyev/phresh/internal/offer"
)

// Store-backed tests; set TEST_DATABASE_URL to run them.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	gdb, err := db.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrateAndIndexes(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, name string) *auth.User {
	t.Helper()
	tag := uuid.NewString()[:8]
	u := auth.User{
		Username:     fmt.Sprintf("%s-%s", name, tag),
		Email:        fmt.Sprintf("%s-%s@example.com", name, tag),
		PasswordHash: "x",
	}
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

// seedAcceptedOffer walks a cleaning through create-offer-accept and
// returns the cleaning plus the winning cleaner.
func seedAcceptedOffer(t *testing.T, gdb *gorm.DB, ownerID uint64, cleaner *auth.User) *cleaning.Cleaning {
	t.Helper()
	ctx := context.Background()

	cleanings := &cleaning.Service{DB: gdb}
	cl, err := cleanings.Create(ctx, ownerID, cleaning.CreateInput{
		Name:  "move-out clean " + uuid.NewString()[:8],
		Price: 120,
		Type:  cleaning.DustUp,
	})
	require.NoError(t, err)

	offers := &offer.Service{DB: gdb}
	_, err = offers.Create(ctx, cleaner.ID, cl.ID)
	require.NoError(t, err)
	_, err = offers.Accept(ctx, ownerID, cl.ID, cleaner.ID)
	require.NoError(t, err)
	return cl
}

func intp(v int) *int { return &v }

func TestCreateMarksOfferCompleted(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	cleaner := seedUser(t, gdb, "cleaner")
	cl := seedAcceptedOffer(t, gdb, owner.ID, cleaner)

	offers := &offer.Service{DB: gdb}
	svc := &evaluation.Service{DB: gdb, Offers: offers}

	ev, err := svc.Create(ctx, owner.ID, cl.ID, cleaner.ID, evaluation.CreateInput{
		Professionalism: intp(5),
		OverallRating:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, ev.OverallRating)

	got, err := offers.Get(ctx, owner.ID, cl.ID, cleaner.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.Completed, got.Status)
}

func TestCreateTwiceConflicts(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	cleaner := seedUser(t, gdb, "cleaner")
	cl := seedAcceptedOffer(t, gdb, owner.ID, cleaner)

	svc := &evaluation.Service{DB: gdb, Offers: &offer.Service{DB: gdb}}

	_, err := svc.Create(ctx, owner.ID, cl.ID, cleaner.ID, evaluation.CreateInput{OverallRating: 3})
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner.ID, cl.ID, cleaner.ID, evaluation.CreateInput{OverallRating: 5})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestCreateWithoutAcceptedOfferIsInvalid(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	cleaner := seedUser(t, gdb, "cleaner")

	cleanings := &cleaning.Service{DB: gdb}
	cl, err := cleanings.Create(ctx, owner.ID, cleaning.CreateInput{
		Name:  "window clean " + uuid.NewString()[:8],
		Price: 40,
		Type:  cleaning.SpotClean,
	})
	require.NoError(t, err)

	offers := &offer.Service{DB: gdb}
	_, err = offers.Create(ctx, cleaner.ID, cl.ID)
	require.NoError(t, err)

	svc := &evaluation.Service{DB: gdb, Offers: offers}
	_, err = svc.Create(ctx, owner.ID, cl.ID, cleaner.ID, evaluation.CreateInput{OverallRating: 2})
	assert.ErrorIs(t, err, apperr.ErrInvalidState, "pending offers cannot be completed")

	// the failed transaction must not leave the evaluation behind
	_, err = svc.Get(ctx, cl.ID, cleaner.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateByNonOwnerForbidden(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	cleaner := seedUser(t, gdb, "cleaner")
	other := seedUser(t, gdb, "other")
	cl := seedAcceptedOffer(t, gdb, owner.ID, cleaner)

	svc := &evaluation.Service{DB: gdb, Offers: &offer.Service{DB: gdb}}
	_, err := svc.Create(ctx, other.ID, cl.ID, cleaner.ID, evaluation.CreateInput{OverallRating: 1})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
