package models

import (
	"fmt"
	"time"
)

// ReservationState định nghĩa interface cho các trạng thái reservation
type ReservationState interface {
	Confirm(r *Reservation) error
	CheckIn(r *Reservation, at time.Time) error
	CheckOut(r *Reservation, at time.Time) error
	Cancel(r *Reservation, reason string, at time.Time) error
	NoShow(r *Reservation) error
}

// TransitionError trả về khi chuyển trạng thái không hợp lệ
type TransitionError struct {
	From   ReservationStatus
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a reservation that is %s", e.Action, e.From)
}

func deny(r *Reservation, action string) error {
	return &TransitionError{From: r.Status, Action: action}
}

// terminalState dùng chung cho cancelled, checked_out, no_show
type terminalState struct{}

func (terminalState) Confirm(r *Reservation) error                       { return deny(r, "confirm") }
func (terminalState) CheckIn(r *Reservation, _ time.Time) error          { return deny(r, "check in") }
func (terminalState) CheckOut(r *Reservation, _ time.Time) error         { return deny(r, "check out") }
func (terminalState) Cancel(r *Reservation, _ string, _ time.Time) error { return deny(r, "cancel") }
func (terminalState) NoShow(r *Reservation) error                        { return deny(r, "mark no-show") }

// PendingState trạng thái chờ xác nhận
type PendingState struct{ terminalState }

func (s *PendingState) Confirm(r *Reservation) error {
	r.Status = ReservationStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(r *Reservation, reason string, at time.Time) error {
	markCancelled(r, reason, at)
	return nil
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{ terminalState }

func (s *ConfirmedState) CheckIn(r *Reservation, at time.Time) error {
	r.Status = ReservationStatusCheckedIn
	r.CheckedInAt = &at
	return nil
}

func (s *ConfirmedState) Cancel(r *Reservation, reason string, at time.Time) error {
	markCancelled(r, reason, at)
	return nil
}

func (s *ConfirmedState) NoShow(r *Reservation) error {
	r.Status = ReservationStatusNoShow
	return nil
}

// CheckedInState khách đã nhận phòng
type CheckedInState struct{ terminalState }

func (s *CheckedInState) CheckOut(r *Reservation, at time.Time) error {
	r.Status = ReservationStatusCheckedOut
	r.CheckedOutAt = &at
	return nil
}

func (s *CheckedInState) Cancel(r *Reservation, reason string, at time.Time) error {
	markCancelled(r, reason, at)
	return nil
}

// CancelledState, CheckedOutState, NoShowState là trạng thái cuối
type CancelledState struct{ terminalState }

type CheckedOutState struct{ terminalState }

type NoShowState struct{ terminalState }

func markCancelled(r *Reservation, reason string, at time.Time) {
	r.Status = ReservationStatusCancelled
	r.CancelledAt = &at
	r.CancellationReason = reason
}

// GetReservationState trả về state tương ứng với trạng thái reservation
func GetReservationState(status ReservationStatus) ReservationState {
	switch status {
	case ReservationStatusPending:
		return &PendingState{}
	case ReservationStatusConfirmed:
		return &ConfirmedState{}
	case ReservationStatusCheckedIn:
		return &CheckedInState{}
	case ReservationStatusCheckedOut:
		return &CheckedOutState{}
	case ReservationStatusNoShow:
		return &NoShowState{}
	default:
		return &CancelledState{}
	}
}

// IsTerminal kiểm tra trạng thái cuối
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusCancelled, ReservationStatusCheckedOut, ReservationStatusNoShow:
		return true
	}
	return false
}

// ReleasesInventory: chuyển sang các trạng thái này phải trả lại ledger
func (s ReservationStatus) ReleasesInventory() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusNoShow
}
