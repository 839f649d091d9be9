package services

import (
	"context"
	"strings"
	"testing"

	"staydesk/dto"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/services/notification"
	"staydesk/testutil"
)

func book(t *testing.T, ct *Container, fx testutil.Fixture, checkIn, checkOut string) *models.Reservation {
	t.Helper()
	result, err := ct.Bookings.CreateBooking(context.Background(), stayRequest(fx, checkIn, checkOut), nil)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return result.Reservation
}

func TestCancelReleasesInventory(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, pub := newTestContainer(t, db)
	res := book(t, ct, fx, "2026-07-01", "2026-07-03")

	cancelled, err := ct.ReservationSvc.Cancel(context.Background(), fx.Property.ID, res.ID, "  change of plans ")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.ReservationStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("got status %s cancelledAt %v", cancelled.Status, cancelled.CancelledAt)
	}
	if cancelled.CancellationReason != "change of plans" {
		t.Fatalf("got reason %q", cancelled.CancellationReason)
	}
	for _, d := range []string{"2026-07-01", "2026-07-02"} {
		if got := testutil.Inventory(t, db, fx, d).BookedUnits; got != 0 {
			t.Fatalf("%s booked got %d, want 0", d, got)
		}
	}

	// phòng vừa trả có thể đặt lại
	book(t, ct, fx, "2026-07-01", "2026-07-03")

	kinds := pub.kinds()
	if len(kinds) != 3 || kinds[1] != notification.KindBookingCancelled {
		t.Fatalf("got events %v", kinds)
	}
}

func TestCancelTwiceIsInvalidTransition(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct, _ := newTestContainer(t, db)
	ctx := context.Background()
	res := book(t, ct, fx, "2026-07-01", "2026-07-03")
	book(t, ct, fx, "2026-07-01", "2026-07-03")

	if _, err := ct.ReservationSvc.Cancel(ctx, fx.Property.ID, res.ID, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err := ct.ReservationSvc.Cancel(ctx, fx.Property.ID, res.ID, "")
	wantCode(t, err, errors.ErrCodeInvalidTransition)
	if msg := errors.GetAppError(err).Message; !strings.HasPrefix(msg, "Cannot cancel") {
		t.Fatalf("got message %q", msg)
	}

	// lần hủy thứ hai không được trả ledger thêm lần nữa
	if got := testutil.Inventory(t, db, fx, "2026-07-01").BookedUnits; got != 1 {
		t.Fatalf("booked got %d, want 1", got)
	}
}

func TestNoShowReleasesInventoryAndKeepsPayment(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, _ := newTestContainer(t, db)
	ctx := context.Background()
	res := guestBooking(t, ct, fx, "2026-07-01", "2026-07-03")

	got, err := ct.ReservationSvc.MarkNoShow(ctx, fx.Property.ID, res.ID)
	if err != nil {
		t.Fatalf("no-show: %v", err)
	}
	if got.Status != models.ReservationStatusNoShow {
		t.Fatalf("got status %s, want no_show", got.Status)
	}
	if n := testutil.Inventory(t, db, fx, "2026-07-01").BookedUnits; n != 0 {
		t.Fatalf("booked got %d, want 0", n)
	}
	var p models.Payment
	if err := db.Where("reservation_id = ?", res.ID).First(&p).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if p.Status != models.PaymentStatusCaptured {
		t.Fatalf("payment status got %s, want captured", p.Status)
	}

	_, err = ct.ReservationSvc.CheckIn(ctx, fx.Property.ID, res.ID)
	wantCode(t, err, errors.ErrCodeInvalidTransition)
}

func TestLifecycleCheckInCheckOut(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, pub := newTestContainer(t, db)
	ctx := context.Background()
	res := book(t, ct, fx, "2026-07-01", "2026-07-03")

	if _, err := ct.ReservationSvc.CheckIn(ctx, fx.Property.ID, res.ID); err != nil {
		t.Fatalf("check in: %v", err)
	}
	out, err := ct.ReservationSvc.CheckOut(ctx, fx.Property.ID, res.ID)
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if out.CheckedInAt == nil || out.CheckedOutAt == nil {
		t.Fatalf("got checkedIn=%v checkedOut=%v", out.CheckedInAt, out.CheckedOutAt)
	}
	// check-out không trả ledger
	if n := testutil.Inventory(t, db, fx, "2026-07-01").BookedUnits; n != 1 {
		t.Fatalf("booked got %d, want 1", n)
	}
	_, err = ct.ReservationSvc.Cancel(ctx, fx.Property.ID, res.ID, "")
	wantCode(t, err, errors.ErrCodeInvalidTransition)

	kinds := pub.kinds()
	last := kinds[len(kinds)-1]
	if last != notification.KindPostStay {
		t.Fatalf("got last event %s, want post stay", last)
	}
}

func TestReservationScopedToProperty(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	other := testutil.Seed(t, db, testutil.SeedOptions{Slug: "hill-lodge", Units: 1})
	ct, _ := newTestContainer(t, db)
	res := book(t, ct, fx, "2026-07-01", "2026-07-02")

	_, err := ct.ReservationSvc.Cancel(context.Background(), other.Property.ID, res.ID, "")
	wantCode(t, err, errors.ErrCodeNotFound)
	if n := testutil.Inventory(t, db, fx, "2026-07-01").BookedUnits; n != 1 {
		t.Fatalf("booked got %d, want 1", n)
	}
}

func guestBooking(t *testing.T, ct *Container, fx testutil.Fixture, checkIn, checkOut string) *models.Reservation {
	t.Helper()
	ctx := context.Background()
	checkout, err := ct.Facade.PrepareCheckout(ctx, fx.Property.Slug, dto.CheckoutRequest{
		RoomTypeID: fx.RoomType.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     2,
	})
	if err != nil {
		t.Fatalf("prepare checkout: %v", err)
	}
	result, err := ct.Facade.CompleteGuestBooking(ctx, fx.Property.Slug, dto.GuestReservationRequest{
		RoomTypeID:      fx.RoomType.ID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          2,
		FirstName:       "Ana",
		LastName:        "Silva",
		Email:           "ana@example.com",
		PaymentIntentID: checkout.PaymentIntentID,
		ReservationCode: checkout.ReservationCode,
	})
	if err != nil {
		t.Fatalf("complete booking: %v", err)
	}
	if result.ConfirmationCode != checkout.ReservationCode {
		t.Fatalf("got code %s, want %s", result.ConfirmationCode, checkout.ReservationCode)
	}
	return result.Reservation
}

func TestGuestBookingFullPaymentRefundedOnCancel(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, pub := newTestContainer(t, db)
	res := guestBooking(t, ct, fx, "2026-07-01", "2026-07-03")

	if len(res.Payments) != 1 || res.Payments[0].AmountCents != 20000 {
		t.Fatalf("got payments %+v", res.Payments)
	}
	if _, err := ct.ReservationSvc.Cancel(context.Background(), "", res.ID, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	var p models.Payment
	if err := db.Where("reservation_id = ?", res.ID).First(&p).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if p.Status != models.PaymentStatusRefunded {
		t.Fatalf("payment status got %s, want refunded", p.Status)
	}

	var cancelled notification.BookingCancelled
	for _, e := range pub.events {
		if c, ok := e.(notification.BookingCancelled); ok {
			cancelled = c
		}
	}
	if !strings.Contains(cancelled.RefundNote, "A refund of") {
		t.Fatalf("got refund note %q", cancelled.RefundNote)
	}
}

func TestGuestBookingDepositCapture(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5, PaymentMode: models.PaymentModeDepositAtBooking})
	ct, _ := newTestContainer(t, db)
	ctx := context.Background()
	res := guestBooking(t, ct, fx, "2026-07-01", "2026-07-03")

	if got := res.Payments[0]; got.Type != models.PaymentTypeDeposit || got.Status != models.PaymentStatusRequiresCapture || got.AmountCents != 6000 {
		t.Fatalf("got payment %+v", got)
	}
	p, err := ct.ReservationSvc.CapturePayment(ctx, fx.Property.ID, res.ID)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if p.Status != models.PaymentStatusCaptured {
		t.Fatalf("got status %s, want captured", p.Status)
	}
	_, err = ct.ReservationSvc.CapturePayment(ctx, fx.Property.ID, res.ID)
	wantCode(t, err, errors.ErrCodeInvalidTransition)
}

func TestGuestBookingRejectsReusedCode(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct, _ := newTestContainer(t, db)
	res := guestBooking(t, ct, fx, "2026-07-01", "2026-07-02")

	_, err := ct.Facade.CompleteGuestBooking(context.Background(), fx.Property.Slug, dto.GuestReservationRequest{
		RoomTypeID:      fx.RoomType.ID,
		CheckIn:         "2026-07-01",
		CheckOut:        "2026-07-02",
		Adults:          2,
		FirstName:       "Ana",
		LastName:        "Silva",
		Email:           "ana@example.com",
		PaymentIntentID: res.Payments[0].ProviderRef,
		ReservationCode: res.ConfirmationCode,
	})
	wantCode(t, err, errors.ErrCodeInvalidRequest)
	if n := testutil.Inventory(t, db, fx, "2026-07-01").BookedUnits; n != 1 {
		t.Fatalf("booked got %d, want 1", n)
	}
}

func TestGuestBookingRejectsForeignIntent(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct, _ := newTestContainer(t, db)
	ctx := context.Background()

	first, err := ct.Facade.PrepareCheckout(ctx, fx.Property.Slug, dto.CheckoutRequest{
		RoomTypeID: fx.RoomType.ID, CheckIn: "2026-07-01", CheckOut: "2026-07-02", Adults: 1,
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	second, err := ct.Facade.PrepareCheckout(ctx, fx.Property.Slug, dto.CheckoutRequest{
		RoomTypeID: fx.RoomType.ID, CheckIn: "2026-07-01", CheckOut: "2026-07-02", Adults: 1,
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	_, err = ct.Facade.CompleteGuestBooking(ctx, fx.Property.Slug, dto.GuestReservationRequest{
		RoomTypeID:      fx.RoomType.ID,
		CheckIn:         "2026-07-01",
		CheckOut:        "2026-07-02",
		Adults:          1,
		FirstName:       "Ana",
		LastName:        "Silva",
		Email:           "ana@example.com",
		PaymentIntentID: first.PaymentIntentID,
		ReservationCode: second.ReservationCode,
	})
	wantCode(t, err, errors.ErrCodePaymentNotAuthorized)
	if n := testutil.Inventory(t, db, fx, "2026-07-01").BookedUnits; n != 0 {
		t.Fatalf("booked got %d, want 0", n)
	}
}

func TestGuestBookingRejectsIntentForDifferentStay(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 10})
	suite := models.RoomType{PropertyID: fx.Property.ID, Name: "Suite", Slug: "suite", BaseOccupancy: 2, MaxOccupancy: 2, BaseRateCents: 10000, Status: models.RoomTypeStatusActive}
	if err := db.Create(&suite).Error; err != nil {
		t.Fatalf("seed suite: %v", err)
	}
	testutil.SeedInventory(t, db, fx.Property.ID, suite.ID, []string{"2026-07-01", "2026-07-02"}, 1)
	ct, pub := newTestContainer(t, db)
	ctx := context.Background()

	tests := []struct {
		name       string
		roomTypeID string
		checkIn    string
		checkOut   string
	}{
		{"longer stay", fx.RoomType.ID, "2026-07-01", "2026-07-08"},
		{"shifted dates", fx.RoomType.ID, "2026-07-03", "2026-07-04"},
		{"other room type", suite.ID, "2026-07-01", "2026-07-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout, err := ct.Facade.PrepareCheckout(ctx, fx.Property.Slug, dto.CheckoutRequest{
				RoomTypeID: fx.RoomType.ID, CheckIn: "2026-07-01", CheckOut: "2026-07-02", Adults: 1,
			})
			if err != nil {
				t.Fatalf("prepare: %v", err)
			}
			_, err = ct.Facade.CompleteGuestBooking(ctx, fx.Property.Slug, dto.GuestReservationRequest{
				RoomTypeID:      tt.roomTypeID,
				CheckIn:         tt.checkIn,
				CheckOut:        tt.checkOut,
				Adults:          1,
				FirstName:       "Ana",
				LastName:        "Silva",
				Email:           "ana@example.com",
				PaymentIntentID: checkout.PaymentIntentID,
				ReservationCode: checkout.ReservationCode,
			})
			wantCode(t, err, errors.ErrCodePaymentNotAuthorized)
		})
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	if count != 0 || len(pub.kinds()) != 0 {
		t.Fatalf("got %d reservations and events %v, want none", count, pub.kinds())
	}
	for _, d := range []string{"2026-07-01", "2026-07-03", "2026-07-07"} {
		if n := testutil.Inventory(t, db, fx, d).BookedUnits; n != 0 {
			t.Fatalf("%s booked got %d, want 0", d, n)
		}
	}
}

func TestSendPreArrivals(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 3, From: "2026-07-01", Days: 5})
	ct, pub := newTestContainer(t, db)
	ctx := context.Background()
	book(t, ct, fx, "2026-07-02", "2026-07-03")
	cancelled := book(t, ct, fx, "2026-07-02", "2026-07-04")
	book(t, ct, fx, "2026-07-03", "2026-07-04")
	if _, err := ct.ReservationSvc.Cancel(ctx, "", cancelled.ID, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	pub.events = nil
	n, err := ct.ReservationSvc.SendPreArrivals(ctx, "2026-07-01")
	if err != nil {
		t.Fatalf("pre-arrivals: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d queued, want 1", n)
	}
	if kinds := pub.kinds(); len(kinds) != 1 || kinds[0] != notification.KindPreArrival {
		t.Fatalf("got events %v", kinds)
	}
}
