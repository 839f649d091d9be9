package commands

import (
	"context"
	"testing"

	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/payment"
	"staydesk/testutil"

	"gorm.io/gorm"
)

func seedPending(t *testing.T, db *gorm.DB, intentID string, status models.PaymentStatus) (models.Reservation, models.Payment) {
	t.Helper()
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1})
	guest := models.Guest{PropertyID: fx.Property.ID, Email: "ana@example.com", FirstName: "Ana", LastName: "Silva"}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	res := models.Reservation{
		PropertyID:       fx.Property.ID,
		GuestID:          guest.ID,
		ConfirmationCode: "SD-ABCDE",
		Status:           models.ReservationStatusPending,
		Channel:          models.ChannelDirect,
		CheckIn:          "2026-07-01",
		CheckOut:         "2026-07-03",
		Nights:           2,
		Adults:           2,
		TotalCents:       20000,
		Currency:         "EUR",
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	p := models.Payment{
		ReservationID: res.ID,
		PropertyID:    fx.Property.ID,
		Provider:      "manual",
		ProviderRef:   intentID,
		Type:          models.PaymentTypeFullPayment,
		Status:        status,
		AmountCents:   20000,
		Currency:      "EUR",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return res, p
}

func testRepos(db *gorm.DB) Repos {
	return Repos{
		DB:           db,
		Payments:     repository.NewGormPaymentRepository(db),
		Reservations: repository.NewGormReservationRepository(db),
	}
}

func reload(t *testing.T, db *gorm.DB, res models.Reservation, p models.Payment) (models.Reservation, models.Payment) {
	t.Helper()
	var gotRes models.Reservation
	var gotPay models.Payment
	if err := db.First(&gotRes, "id = ?", res.ID).Error; err != nil {
		t.Fatalf("reload reservation: %v", err)
	}
	if err := db.First(&gotPay, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	return gotRes, gotPay
}

func TestIntentSucceededConfirmsPending(t *testing.T) {
	db := testutil.OpenDB(t)
	res, p := seedPending(t, db, "pi_ok", models.PaymentStatusRequiresCapture)

	cmd := NewWebhookCommand(&payment.Event{Succeeded: &payment.IntentSucceededEvent{IntentID: "pi_ok", ReceivedCents: 20000}}, testRepos(db))
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	gotRes, gotPay := reload(t, db, res, p)
	if gotPay.Status != models.PaymentStatusCaptured || gotPay.CapturedAt == nil {
		t.Fatalf("payment got %s, want captured", gotPay.Status)
	}
	if gotRes.Status != models.ReservationStatusConfirmed {
		t.Fatalf("reservation got %s, want confirmed", gotRes.Status)
	}

	// gửi lại cùng sự kiện không đổi gì
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("replay: %v", err)
	}
}

func TestIntentFailedMarksPayment(t *testing.T) {
	db := testutil.OpenDB(t)
	res, p := seedPending(t, db, "pi_fail", models.PaymentStatusRequiresCapture)

	cmd := NewWebhookCommand(&payment.Event{Failed: &payment.IntentFailedEvent{IntentID: "pi_fail", Reason: "card_declined"}}, testRepos(db))
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	gotRes, gotPay := reload(t, db, res, p)
	if gotPay.Status != models.PaymentStatusFailed {
		t.Fatalf("payment got %s, want failed", gotPay.Status)
	}
	if gotRes.Status != models.ReservationStatusPending {
		t.Fatalf("reservation got %s, want pending", gotRes.Status)
	}
}

func TestChargeRefundedMarksPayment(t *testing.T) {
	db := testutil.OpenDB(t)
	res, p := seedPending(t, db, "pi_refund", models.PaymentStatusCaptured)

	cmd := NewWebhookCommand(&payment.Event{Refunded: &payment.ChargeRefundedEvent{IntentID: "pi_refund", RefundedCents: 20000}}, testRepos(db))
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	_, gotPay := reload(t, db, res, p)
	if gotPay.Status != models.PaymentStatusRefunded {
		t.Fatalf("payment got %s, want refunded", gotPay.Status)
	}
}

func TestUnknownIntentAndEventAreIgnored(t *testing.T) {
	db := testutil.OpenDB(t)
	seedPending(t, db, "pi_known", models.PaymentStatusRequiresCapture)

	cmd := NewWebhookCommand(&payment.Event{Succeeded: &payment.IntentSucceededEvent{IntentID: "pi_other"}}, testRepos(db))
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if cmd := NewWebhookCommand(&payment.Event{ID: "evt_1", Type: "customer.created"}, testRepos(db)); cmd != nil {
		t.Fatalf("got %T, want nil command", cmd)
	}
}
