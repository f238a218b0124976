package offer

import "time"

type Status string

const (
	Pending   Status = "pending"
	Accepted  Status = "accepted"
	Rejected  Status = "rejected"
	Cancelled Status = "cancelled"
	Completed Status = "completed"
)

func ValidStatus(s Status) bool {
	switch s {
	case Pending, Accepted, Rejected, Cancelled, Completed:
		return true
	default:
		return false
	}
}

// Offer is a bidder's proposal on a cleaning. The composite primary key
// makes "at most one offer per (cleaning, user)" a constraint, not a
// convention.
type Offer struct {
	CleaningID uint64    `gorm:"primaryKey;autoIncrement:false"`
	UserID     uint64    `gorm:"primaryKey;autoIncrement:false"`
	Status     Status    `gorm:"type:text;not null;default:'pending';index"`
	CreatedAt  time.Time `gorm:"not null;default:now()"`
	UpdatedAt  time.Time `gorm:"not null;default:now()"`
}

type Operation string

const (
	OpAccept   Operation = "accept"
	OpCancel   Operation = "cancel"
	OpRescind  Operation = "rescind"
	OpComplete Operation = "complete"
)

// fanOut is the sibling side effect of a transition: every other offer on
// the same cleaning whose status equals Match moves to To.
type fanOut struct {
	Match Status
	To    Status
}

// transition describes the effect of an operation on the target offer.
// Delete means the row is removed rather than restatused.
type transition struct {
	Next    Status
	Delete  bool
	Sibling *fanOut
}

// transitions is the closed (status, operation) table. Any pair absent
// here is an illegal transition; there are no other paths through the
// lifecycle.
var transitions = map[Status]map[Operation]transition{
	Pending: {
		OpAccept:  {Next: Accepted, Sibling: &fanOut{Match: Pending, To: Rejected}},
		OpRescind: {Delete: true},
	},
	Accepted: {
		OpCancel:   {Next: Cancelled, Sibling: &fanOut{Match: Rejected, To: Pending}},
		OpComplete: {Next: Completed},
	},
}

// plan returns the declared transition for (from, op), or false when the
// operation is not allowed in the current status.
func plan(from Status, op Operation) (transition, bool) {
	ops, ok := transitions[from]
	if !ok {
		return transition{}, false
	}
	t, ok := ops[op]
	return t, ok
}
