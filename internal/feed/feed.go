// Package feed derives the cleaning activity stream from the two
// timestamp columns on cleanings. Each cleaning contributes an is_create
// row at created_at and, only when it was modified after creation, an
// is_update row at updated_at. Pages are keyset-paginated on a strict
// event_timestamp < cursor boundary.
package feed

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/cleaning"
)

const (
	EventCreate = "is_create"
	EventUpdate = "is_update"

	DefaultPageSize = 20
	MaxPageSize     = 50

	// cursorSkew pushes the default cursor slightly into the future so
	// events written at request time survive client/server clock skew.
	cursorSkew = 10 * time.Minute
)

// Item is a virtual row, never stored. Two items may reference the same
// cleaning id (one per event kind); that is two distinct activity events,
// not a duplicate.
type Item struct {
	Cleaning       cleaning.Cleaning
	EventType      string
	EventTimestamp time.Time
}

type Service struct {
	DB *gorm.DB

	// CursorSkew overrides the default skew when positive.
	CursorSkew time.Duration
}

// Fetch returns the next pageSize feed items strictly older than
// startingDate. A zero startingDate means "now plus skew"; pageSize is
// clamped to 1..MaxPageSize, zero meaning the default.
func (s *Service) Fetch(ctx context.Context, startingDate time.Time, pageSize int) ([]Item, error) {
	pageSize = ClampPageSize(pageSize)
	if startingDate.IsZero() {
		startingDate = time.Now().UTC().Add(s.skew())
	}

	// Two bounded keyset queries, one per event kind. The union of the
	// per-kind top pageSize rows is a superset of the page, so assembling
	// from these candidates loses nothing.
	var created []cleaning.Cleaning
	err := s.DB.WithContext(ctx).
		Where("created_at < ?", startingDate).
		Order("created_at desc, id desc").
		Limit(pageSize).
		Find(&created).Error
	if err != nil {
		return nil, err
	}

	var updated []cleaning.Cleaning
	err = s.DB.WithContext(ctx).
		Where("updated_at < ? AND updated_at > created_at", startingDate).
		Order("updated_at desc, id desc").
		Limit(pageSize).
		Find(&updated).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]cleaning.Cleaning, len(created)+len(updated))
	for _, c := range created {
		byID[c.ID] = c
	}
	for _, c := range updated {
		byID[c.ID] = c
	}
	candidates := make([]cleaning.Cleaning, 0, len(byID))
	for _, c := range byID {
		candidates = append(candidates, c)
	}

	return assemble(candidates, startingDate, pageSize), nil
}

func ClampPageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func DefaultCursor(now time.Time) time.Time {
	return now.UTC().Add(cursorSkew)
}

func (s *Service) skew() time.Duration {
	if s.CursorSkew > 0 {
		return s.CursorSkew
	}
	return cursorSkew
}

// assemble is the pure pagination core: derive the virtual rows below the
// cursor, order them, cut the page.
func assemble(cs []cleaning.Cleaning, cursor time.Time, pageSize int) []Item {
	rows := virtualRows(cs, cursor)
	orderRows(rows)
	if len(rows) > pageSize {
		rows = rows[:pageSize]
	}
	return rows
}

// virtualRows expands cleanings into their event rows, keeping only rows
// strictly older than the cursor so the item at the prior page boundary
// is never repeated.
func virtualRows(cs []cleaning.Cleaning, cursor time.Time) []Item {
	rows := make([]Item, 0, len(cs))
	for _, c := range cs {
		if c.CreatedAt.Before(cursor) {
			rows = append(rows, Item{Cleaning: c, EventType: EventCreate, EventTimestamp: c.CreatedAt})
		}
		if c.UpdatedAt.After(c.CreatedAt) && c.UpdatedAt.Before(cursor) {
			rows = append(rows, Item{Cleaning: c, EventType: EventUpdate, EventTimestamp: c.UpdatedAt})
		}
	}
	return rows
}

// orderRows sorts reverse-chronologically with a deterministic tiebreak:
// equal timestamps fall back to cleaning id, then event type, so a full
// sweep over a moving cursor neither skips nor repeats rows.
func orderRows(rows []Item) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.EventTimestamp.Equal(b.EventTimestamp) {
			return a.EventTimestamp.After(b.EventTimestamp)
		}
		if a.Cleaning.ID != b.Cleaning.ID {
			return a.Cleaning.ID > b.Cleaning.ID
		}
		return a.EventType > b.EventType // is_update ahead of is_create
	})
}
