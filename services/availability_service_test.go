package services

import (
	"context"
	"testing"

	"staydesk/dto"
	"staydesk/testutil"
)

func TestSearchCacheIgnoresResultsComputedBeforeInvalidate(t *testing.T) {
	db := testutil.OpenDB(t)
	rdb := testutil.OpenRedis(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct := NewContainer(ContainerOptions{DB: db, Redis: rdb})
	ctx := context.Background()
	av := ct.Availability

	search := func() dto.RoomTypeAvailability {
		t.Helper()
		list, err := av.SearchRoomTypes(ctx, &fx.Property, "2026-07-02", "2026-07-03", 2, 0)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("got %d room types, want 1", len(list))
		}
		return list[0]
	}

	if got := search().Available; got != 1 {
		t.Fatalf("available got %d, want 1", got)
	}

	// một search chậm đọc thế hệ cache trước khi booking commit ...
	gen, err := av.cacheGeneration(ctx, fx.Property.ID)
	if err != nil {
		t.Fatalf("generation: %v", err)
	}
	staleKey := availabilityCacheKey(fx.Property.ID, gen, "2026-07-02", "2026-07-03", 2)
	stale := []dto.RoomTypeAvailability{search()}

	if _, err := ct.Bookings.CreateBooking(ctx, stayRequest(fx, "2026-07-02", "2026-07-03"), nil); err != nil {
		t.Fatalf("booking: %v", err)
	}

	// ... rồi ghi kết quả cũ sau khi booking đã invalidate
	if err := SetToRedis(ctx, rdb, staleKey, stale, av.ttl); err != nil {
		t.Fatalf("write stale entry: %v", err)
	}

	if got := search().Available; got != 0 {
		t.Fatalf("available after booking got %d, want 0", got)
	}
}

func TestSearchServedFromCacheUntilInvalidated(t *testing.T) {
	db := testutil.OpenDB(t)
	rdb := testutil.OpenRedis(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct := NewContainer(ContainerOptions{DB: db, Redis: rdb})
	ctx := context.Background()

	first, err := ct.Availability.SearchRoomTypes(ctx, &fx.Property, "2026-07-02", "2026-07-03", 2, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// ghi thẳng vào DB không qua service nên cache vẫn giữ kết quả cũ
	db.Exec("UPDATE inventory_days SET booked_units = 2 WHERE date = ?", "2026-07-02")
	cached, err := ct.Availability.SearchRoomTypes(ctx, &fx.Property, "2026-07-02", "2026-07-03", 2, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if cached[0].Available != first[0].Available {
		t.Fatalf("cached got %d, want %d", cached[0].Available, first[0].Available)
	}

	ct.Availability.InvalidateProperty(ctx, fx.Property.ID)
	fresh, err := ct.Availability.SearchRoomTypes(ctx, &fx.Property, "2026-07-02", "2026-07-03", 2, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if fresh[0].Available != 0 {
		t.Fatalf("after invalidate got %d, want 0", fresh[0].Available)
	}
}
