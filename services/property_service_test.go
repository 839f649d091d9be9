package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"staydesk/dto"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/testutil"

	"gorm.io/gorm"
)

func fixedNow() time.Time { return time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC) }

func newWindowContainer(t *testing.T, db *gorm.DB, days int) *Container {
	t.Helper()
	return NewContainer(ContainerOptions{DB: db, InventoryWindowDays: days, Now: fixedNow})
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Seaside Inn", "seaside-inn"},
		{"  Hòa Bình Hotel  ", "hoa-binh-hotel"},
		{"Casa d'Água & Spa", "casa-d-agua-spa"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreatePropertyAndAuthenticatePartner(t *testing.T) {
	db := testutil.OpenDB(t)
	ct := newWindowContainer(t, db, 5)
	ctx := context.Background()

	p, key, err := ct.PropertySvc.CreateProperty(ctx, dto.CreatePropertyRequest{Name: "Seaside Inn", Currency: "eur"})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	if p.Slug != "seaside-inn" || p.Currency != "EUR" || !strings.HasPrefix(key, "sdk_") {
		t.Fatalf("got slug=%s currency=%s key=%s", p.Slug, p.Currency, key)
	}
	if p.APIKeyHash == "" || p.APIKeyHash == key {
		t.Fatalf("api key must be stored hashed")
	}

	second, _, err := ct.PropertySvc.CreateProperty(ctx, dto.CreatePropertyRequest{Name: "Seaside Inn"})
	if err != nil {
		t.Fatalf("create second property: %v", err)
	}
	if second.Slug != "seaside-inn-2" {
		t.Fatalf("got slug %s, want seaside-inn-2", second.Slug)
	}

	if _, err := ct.PropertySvc.AuthenticatePartner(ctx, "seaside-inn", key); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	_, err = ct.PropertySvc.AuthenticatePartner(ctx, "seaside-inn-2", key)
	wantCode(t, err, errors.ErrCodeAuthFailed)

	rotated, err := ct.PropertySvc.RotateAPIKey(ctx, p.ID)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	_, err = ct.PropertySvc.AuthenticatePartner(ctx, "seaside-inn", key)
	wantCode(t, err, errors.ErrCodeAuthFailed)
	if _, err := ct.PropertySvc.AuthenticatePartner(ctx, "seaside-inn", rotated); err != nil {
		t.Fatalf("authenticate with rotated key: %v", err)
	}
}

func TestAddRoomBackfillsWindow(t *testing.T) {
	db := testutil.OpenDB(t)
	ct := newWindowContainer(t, db, 5)
	ctx := context.Background()

	p, _, err := ct.PropertySvc.CreateProperty(ctx, dto.CreatePropertyRequest{Name: "Hill Lodge"})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	rt, err := ct.PropertySvc.CreateRoomType(ctx, p.ID, dto.CreateRoomTypeRequest{Name: "Twin", MaxOccupancy: 2, BaseRateCents: 8000})
	if err != nil {
		t.Fatalf("create room type: %v", err)
	}
	for _, name := range []string{"101", "102"} {
		if _, err := ct.PropertySvc.AddRoom(ctx, p.ID, dto.CreateRoomRequest{RoomTypeID: rt.ID, Name: name}); err != nil {
			t.Fatalf("add room %s: %v", name, err)
		}
	}

	var rows []models.InventoryDay
	if err := db.Where("room_type_id = ?", rt.ID).Order("date").Find(&rows).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d ledger rows, want 5", len(rows))
	}
	if rows[0].Date != "2026-07-01" || rows[4].Date != "2026-07-05" {
		t.Fatalf("got window %s..%s", rows[0].Date, rows[4].Date)
	}
	for _, r := range rows {
		if r.TotalUnits != 2 {
			t.Fatalf("%s total got %d, want 2", r.Date, r.TotalUnits)
		}
	}
}

func TestRemoveRoomRefusesOvercommit(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct := newWindowContainer(t, db, 5)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := ct.Bookings.CreateBooking(ctx, stayRequest(fx, "2026-07-03", "2026-07-04"), PartnerBooking{}); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}
	err := ct.PropertySvc.RemoveRoom(ctx, fx.Property.ID, fx.Rooms[0].ID)
	wantCode(t, err, errors.ErrCodeUnavailable)
	if !strings.Contains(errors.GetAppError(err).Message, "2026-07-03") {
		t.Fatalf("got message %q", errors.GetAppError(err).Message)
	}

	// transaction đã rollback: phòng còn nguyên, không ngày nào bị hạ total
	var rooms int64
	db.Model(&models.Room{}).Where("room_type_id = ?", fx.RoomType.ID).Count(&rooms)
	if rooms != 2 {
		t.Fatalf("rooms got %d, want 2", rooms)
	}
	for _, d := range []string{"2026-07-01", "2026-07-02", "2026-07-03", "2026-07-05"} {
		if got := testutil.Inventory(t, db, fx, d).TotalUnits; got != 2 {
			t.Fatalf("%s total got %d, want 2", d, got)
		}
	}
}

func TestRemoveRoomShrinksLedger(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct := newWindowContainer(t, db, 5)

	if err := ct.PropertySvc.RemoveRoom(context.Background(), fx.Property.ID, fx.Rooms[0].ID); err != nil {
		t.Fatalf("remove room: %v", err)
	}
	if got := testutil.Inventory(t, db, fx, "2026-07-02").TotalUnits; got != 1 {
		t.Fatalf("total got %d, want 1", got)
	}
}

func TestSetBlockedAndRateOverride(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct := newWindowContainer(t, db, 5)
	ctx := context.Background()

	if _, err := ct.Bookings.CreateBooking(ctx, stayRequest(fx, "2026-07-02", "2026-07-03"), PartnerBooking{}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	if err := ct.InventorySvc.SetBlocked(ctx, fx.Property.ID, fx.RoomType.ID, "2026-07-02", 1); err != nil {
		t.Fatalf("block: %v", err)
	}
	err := ct.InventorySvc.SetBlocked(ctx, fx.Property.ID, fx.RoomType.ID, "2026-07-02", 2)
	wantCode(t, err, errors.ErrCodeUnavailable)

	_, err = ct.Bookings.CreateBooking(ctx, stayRequest(fx, "2026-07-02", "2026-07-03"), PartnerBooking{})
	wantCode(t, err, errors.ErrCodeUnavailable)

	zero := int64(0)
	if err := ct.InventorySvc.SetRateOverride(ctx, fx.Property.ID, fx.RoomType.ID, "2026-07-04", &zero); err != nil {
		t.Fatalf("override: %v", err)
	}
	result, err := ct.Bookings.CreateBooking(ctx, stayRequest(fx, "2026-07-03", "2026-07-05"), PartnerBooking{})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if result.TotalCents != 10000 {
		t.Fatalf("got total %d, want 10000 with a free night", result.TotalCents)
	}

	if err := ct.InventorySvc.SetRateOverride(ctx, fx.Property.ID, fx.RoomType.ID, "2026-07-04", nil); err != nil {
		t.Fatalf("clear override: %v", err)
	}
	if got := testutil.Inventory(t, db, fx, "2026-07-04").RateOverrideCents; got != nil {
		t.Fatalf("override got %v, want nil", *got)
	}

	err = ct.InventorySvc.SetBlocked(ctx, fx.Property.ID, fx.RoomType.ID, "2027-01-01", 1)
	wantCode(t, err, errors.ErrCodeNotFound)
}
