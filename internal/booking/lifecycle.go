package booking

import (
	"fmt"

	"github.com/courtbook/court-reservation/internal/model"
)

// Roles asserted by the authentication layer.  The engine trusts the
// role as-is; it never verifies identity itself.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// Actor identifies the caller of an engine operation: the user ID
// extracted from the access token plus the role claim.
type Actor struct {
	UserID uint64
	Role   string
}

// admin reports whether the actor carries the admin role.
func (a Actor) admin() bool { return a.Role == RoleAdmin }

// canAccess is the single ownership predicate consulted by every
// operation that touches an existing booking: the actor must own the
// booking or be an admin.
func canAccess(a Actor, b *model.Booking) bool {
	return a.admin() || a.UserID == b.UserID
}

// adminOnlyTransitions marks edges of the state machine that only an
// admin may trigger.  Completion is operator work: owners cannot mark
// their own booking completed.
var adminOnlyTransitions = map[[2]string]bool{
	{model.StatusConfirmed, model.StatusCompleted}: true,
}

// transitions is the lifecycle state table.  An edge absent from this
// table is an ErrInvalidTransition; terminal states have no outgoing
// edges at all.
var transitions = map[string]map[string]bool{
	model.StatusPending: {
		model.StatusConfirmed: true,
		model.StatusCancelled: true,
	},
	model.StatusConfirmed: {
		model.StatusCancelled: true,
		model.StatusCompleted: true,
	},
}

// checkTransition validates a requested status change for the given
// actor against the current state.  It returns:
//
//	(true,  nil)  – same-state request on a live booking, a no-op;
//	(false, nil)  – the transition is allowed and should be applied;
//	(false, err)  – ErrNotAuthorized or ErrInvalidTransition.
//
// Ownership is checked before the state table is consulted, so a
// stranger probing someone else's booking always sees
// ErrNotAuthorized, never a hint about its current state.
func checkTransition(a Actor, b *model.Booking, next string) (noop bool, err error) {
	if !canAccess(a, b) {
		return false, ErrNotAuthorized
	}
	if !model.ValidStatus(next) {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	if model.TerminalStatus(b.Status) {
		return false, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}
	if next == b.Status {
		return true, nil
	}
	if !transitions[b.Status][next] {
		return false, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, b.Status, next)
	}
	if adminOnlyTransitions[[2]string{b.Status, next}] && !a.admin() {
		return false, ErrNotAuthorized
	}
	return false, nil
}
