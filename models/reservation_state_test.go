package models

import (
	"errors"
	"testing"
	"time"
)

func TestReservationStateTransitions(t *testing.T) {
	at := time.Date(2026, 7, 1, 15, 0, 0, 0, time.UTC)
	actions := map[string]func(ReservationState, *Reservation) error{
		"confirm":   func(s ReservationState, r *Reservation) error { return s.Confirm(r) },
		"check in":  func(s ReservationState, r *Reservation) error { return s.CheckIn(r, at) },
		"check out": func(s ReservationState, r *Reservation) error { return s.CheckOut(r, at) },
		"cancel":    func(s ReservationState, r *Reservation) error { return s.Cancel(r, "guest request", at) },
		"no-show":   func(s ReservationState, r *Reservation) error { return s.NoShow(r) },
	}

	tests := []struct {
		from   ReservationStatus
		action string
		want   ReservationStatus // rỗng = bị từ chối
	}{
		{ReservationStatusPending, "confirm", ReservationStatusConfirmed},
		{ReservationStatusPending, "cancel", ReservationStatusCancelled},
		{ReservationStatusPending, "check in", ""},
		{ReservationStatusPending, "no-show", ""},
		{ReservationStatusConfirmed, "check in", ReservationStatusCheckedIn},
		{ReservationStatusConfirmed, "cancel", ReservationStatusCancelled},
		{ReservationStatusConfirmed, "no-show", ReservationStatusNoShow},
		{ReservationStatusConfirmed, "confirm", ""},
		{ReservationStatusConfirmed, "check out", ""},
		{ReservationStatusCheckedIn, "check out", ReservationStatusCheckedOut},
		{ReservationStatusCheckedIn, "cancel", ReservationStatusCancelled},
		{ReservationStatusCheckedIn, "no-show", ""},
		{ReservationStatusCheckedOut, "cancel", ""},
		{ReservationStatusCheckedOut, "check in", ""},
		{ReservationStatusCancelled, "cancel", ""},
		{ReservationStatusCancelled, "confirm", ""},
		{ReservationStatusNoShow, "check in", ""},
		{ReservationStatusNoShow, "cancel", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+" "+tt.action, func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			err := actions[tt.action](GetReservationState(tt.from), r)
			if tt.want == "" {
				var te *TransitionError
				if !errors.As(err, &te) {
					t.Fatalf("got %v, want TransitionError", err)
				}
				if r.Status != tt.from {
					t.Fatalf("status changed to %s on denied transition", r.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if r.Status != tt.want {
				t.Fatalf("got %s, want %s", r.Status, tt.want)
			}
		})
	}
}

func TestCancelStampsReasonAndTime(t *testing.T) {
	at := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	r := &Reservation{Status: ReservationStatusConfirmed}
	if err := GetReservationState(r.Status).Cancel(r, "flight cancelled", at); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if r.CancelledAt == nil || !r.CancelledAt.Equal(at) || r.CancellationReason != "flight cancelled" {
		t.Fatalf("got cancelledAt=%v reason=%q", r.CancelledAt, r.CancellationReason)
	}
}

func TestTransitionErrorMessage(t *testing.T) {
	r := &Reservation{Status: ReservationStatusCheckedOut}
	err := GetReservationState(r.Status).Cancel(r, "", time.Now())
	if got, want := err.Error(), "cannot cancel a reservation that is checked_out"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStatusFlags(t *testing.T) {
	for _, s := range []ReservationStatus{ReservationStatusCancelled, ReservationStatusNoShow} {
		if !s.ReleasesInventory() || !s.IsTerminal() {
			t.Fatalf("%s should be terminal and release inventory", s)
		}
	}
	if ReservationStatusCheckedOut.ReleasesInventory() {
		t.Fatalf("checked_out must not release inventory")
	}
	if ReservationStatusConfirmed.IsTerminal() {
		t.Fatalf("confirmed is not terminal")
	}
}
