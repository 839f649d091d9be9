// Package notification phát sự kiện reservation tới email và websocket
// thông qua một hàng đợi bất đồng bộ.
package notification

import (
	"time"

	"staydesk/models"
)

// Kind là loại sự kiện
type Kind string

const (
	KindBookingConfirmed Kind = "booking.confirmed"
	KindBookingCancelled Kind = "booking.cancelled"
	KindPreArrival       Kind = "reservation.pre_arrival"
	KindPostStay         Kind = "reservation.post_stay"
	KindReviewRequest    Kind = "reservation.review_request"
	KindStatusChanged    Kind = "reservation.status_changed"
)

// Event là một trong các biến thể bên dưới
type Event interface {
	Kind() Kind
	Subject() *models.Reservation
	At() time.Time
}

// Publisher nhận sự kiện, không bao giờ block
type Publisher interface {
	Publish(e Event) bool
}

// NopPublisher bỏ qua mọi sự kiện
type NopPublisher struct{}

func (NopPublisher) Publish(Event) bool { return true }

// Reservation truyền vào sự kiện phải được preload Guest, Property và Rooms.RoomType
type base struct {
	Reservation *models.Reservation
	OccurredAt  time.Time
}

func (b base) Subject() *models.Reservation { return b.Reservation }
func (b base) At() time.Time                { return b.OccurredAt }

type BookingConfirmed struct {
	base
	AmountPaidCents int64
	PaymentType     models.PaymentType
}

func (BookingConfirmed) Kind() Kind { return KindBookingConfirmed }

type BookingCancelled struct {
	base
	Reason     string
	RefundNote string
}

func (BookingCancelled) Kind() Kind { return KindBookingCancelled }

type PreArrival struct{ base }

func (PreArrival) Kind() Kind { return KindPreArrival }

// PostStay mang token review nếu đã phát hành được
type PostStay struct {
	base
	ReviewToken string
}

func (PostStay) Kind() Kind { return KindPostStay }

type ReviewRequest struct {
	base
	ReviewToken string
}

func (ReviewRequest) Kind() Kind { return KindReviewRequest }

type StatusChanged struct {
	base
	From models.ReservationStatus
	To   models.ReservationStatus
}

func (StatusChanged) Kind() Kind { return KindStatusChanged }

func NewBookingConfirmed(r *models.Reservation, paid int64, pt models.PaymentType) BookingConfirmed {
	return BookingConfirmed{base: base{Reservation: r, OccurredAt: time.Now().UTC()}, AmountPaidCents: paid, PaymentType: pt}
}

func NewBookingCancelled(r *models.Reservation, reason, refundNote string) BookingCancelled {
	return BookingCancelled{base: base{Reservation: r, OccurredAt: time.Now().UTC()}, Reason: reason, RefundNote: refundNote}
}

func NewPreArrival(r *models.Reservation) PreArrival {
	return PreArrival{base{Reservation: r, OccurredAt: time.Now().UTC()}}
}

func NewPostStay(r *models.Reservation, reviewToken string) PostStay {
	return PostStay{base: base{Reservation: r, OccurredAt: time.Now().UTC()}, ReviewToken: reviewToken}
}

func NewReviewRequest(r *models.Reservation, reviewToken string) ReviewRequest {
	return ReviewRequest{base: base{Reservation: r, OccurredAt: time.Now().UTC()}, ReviewToken: reviewToken}
}

func NewStatusChanged(r *models.Reservation, from models.ReservationStatus) StatusChanged {
	return StatusChanged{base: base{Reservation: r, OccurredAt: time.Now().UTC()}, From: from, To: r.Status}
}

// roomTypeName lấy tên loại phòng đầu tiên của reservation
func roomTypeName(r *models.Reservation) string {
	for _, room := range r.Rooms {
		if room.RoomType != nil {
			return room.RoomType.Name
		}
	}
	return ""
}
