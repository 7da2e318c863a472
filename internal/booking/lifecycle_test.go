package booking

import (
	"errors"
	"testing"

	"github.com/courtbook/court-reservation/internal/model"
)

func bookingWithStatus(status string) *model.Booking {
	return &model.Booking{ID: "b1", UserID: 7, Status: status}
}

var (
	owner    = Actor{UserID: 7, Role: RoleClient}
	admin    = Actor{UserID: 99, Role: RoleAdmin}
	stranger = Actor{UserID: 42, Role: RoleClient}
)

func TestCheckTransition_Table(t *testing.T) {
	cases := []struct {
		name    string
		actor   Actor
		from    string
		to      string
		noop    bool
		wantErr error
	}{
		{"owner confirms pending", owner, model.StatusPending, model.StatusConfirmed, false, nil},
		{"owner cancels pending", owner, model.StatusPending, model.StatusCancelled, false, nil},
		{"owner cancels confirmed", owner, model.StatusConfirmed, model.StatusCancelled, false, nil},
		{"admin completes confirmed", admin, model.StatusConfirmed, model.StatusCompleted, false, nil},
		{"owner cannot complete", owner, model.StatusConfirmed, model.StatusCompleted, false, ErrNotAuthorized},
		{"pending straight to completed", admin, model.StatusPending, model.StatusCompleted, false, ErrInvalidTransition},
		{"cancelled is frozen even for admin", admin, model.StatusCancelled, model.StatusConfirmed, false, ErrInvalidTransition},
		{"completed is frozen", admin, model.StatusCompleted, model.StatusCancelled, false, ErrInvalidTransition},
		{"cancelled to cancelled is not a no-op", admin, model.StatusCancelled, model.StatusCancelled, false, ErrInvalidTransition},
		{"pending to pending no-op", owner, model.StatusPending, model.StatusPending, true, nil},
		{"confirmed to confirmed no-op", admin, model.StatusConfirmed, model.StatusConfirmed, true, nil},
		{"unknown target status", admin, model.StatusPending, "archived", false, ErrInvalidTransition},
		{"nothing goes back to pending", admin, model.StatusConfirmed, model.StatusPending, false, ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			noop, err := checkTransition(tc.actor, bookingWithStatus(tc.from), tc.to)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if noop != tc.noop {
				t.Errorf("noop = %v, want %v", noop, tc.noop)
			}
		})
	}
}

func TestCheckTransition_StrangerAlwaysUnauthorized(t *testing.T) {
	// A non-owner, non-admin caller fails before the state table is
	// consulted, even for transitions that would otherwise be legal
	// and even for ones that would be invalid.
	targets := []string{
		model.StatusConfirmed,
		model.StatusCancelled,
		model.StatusCompleted,
		"archived",
	}
	for _, next := range targets {
		if _, err := checkTransition(stranger, bookingWithStatus(model.StatusPending), next); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("transition to %q: expected ErrNotAuthorized, got %v", next, err)
		}
	}
	// Terminal state still reports NotAuthorized to a stranger, not
	// InvalidTransition.
	if _, err := checkTransition(stranger, bookingWithStatus(model.StatusCancelled), model.StatusConfirmed); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized on terminal booking, got %v", err)
	}
}

func TestCheckTransition_AdminActsOnAnyBooking(t *testing.T) {
	noop, err := checkTransition(admin, bookingWithStatus(model.StatusPending), model.StatusConfirmed)
	if err != nil || noop {
		t.Errorf("admin should confirm someone else's booking, got noop=%v err=%v", noop, err)
	}
}
