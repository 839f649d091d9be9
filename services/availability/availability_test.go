package availability

import (
	"fmt"
	"testing"

	"staydesk/models"
)

func i64(v int64) *int64 { return &v }

func row(date string, total, booked, blocked int) models.InventoryDay {
	return models.InventoryDay{Date: date, TotalUnits: total, BookedUnits: booked, BlockedUnits: blocked}
}

func summerPlan() models.RatePlan {
	start, end := "2026-06-01", "2026-08-31"
	p := models.RatePlan{
		Type:      models.RatePlanSeasonal,
		DateStart: &start,
		DateEnd:   &end,
		RateCents: 15000,
		Status:    models.RatePlanStatusActive,
	}
	p.ID = "summer"
	return p
}

func TestComputeNightly_FullNight(t *testing.T) {
	nightly := ComputeNightly([]string{"2026-07-01"}, []models.InventoryDay{row("2026-07-01", 3, 3, 0)}, nil, 10000)
	if len(nightly) != 1 {
		t.Fatalf("len = %d, want 1", len(nightly))
	}
	if nightly[0].Available != 0 {
		t.Fatalf("available = %d, want 0", nightly[0].Available)
	}
	if nightly[0].TotalUnits != 3 {
		t.Fatalf("totalUnits = %d, want 3", nightly[0].TotalUnits)
	}
}

func TestComputeNightly_MissingRowIsUnsellable(t *testing.T) {
	nightly := ComputeNightly([]string{"2026-07-01"}, nil, nil, 10000)
	if nightly[0].Available != 0 || nightly[0].TotalUnits != 0 {
		t.Fatalf("missing row = %+v, want zero units", nightly[0])
	}
	if nightly[0].Materialized {
		t.Fatal("missing row reported as materialized")
	}
	if nightly[0].RateCents != 10000 {
		t.Fatalf("rate = %d, want base 10000", nightly[0].RateCents)
	}
	if got := Unmaterialized(nightly); len(got) != 1 || got[0] != "2026-07-01" {
		t.Fatalf("Unmaterialized = %v", got)
	}
}

func TestComputeNightly_BlockedUnits(t *testing.T) {
	nightly := ComputeNightly([]string{"2026-07-01"}, []models.InventoryDay{row("2026-07-01", 5, 1, 2)}, nil, 10000)
	if nightly[0].Available != 2 {
		t.Fatalf("available = %d, want 2", nightly[0].Available)
	}
}

func TestComputeNightly_Override(t *testing.T) {
	pinned := row("2026-07-01", 2, 0, 0)
	pinned.RateOverrideCents = i64(8000)
	zero := row("2026-07-02", 2, 0, 0)
	zero.RateOverrideCents = i64(0)
	plain := row("2026-07-03", 2, 0, 0)

	nightly := ComputeNightly(
		[]string{"2026-07-01", "2026-07-02", "2026-07-03"},
		[]models.InventoryDay{pinned, zero, plain},
		[]models.RatePlan{summerPlan()},
		10000,
	)

	want := []int64{8000, 0, 15000}
	for i, n := range nightly {
		if n.RateCents != want[i] {
			t.Fatalf("night %s rate = %d, want %d", n.Date, n.RateCents, want[i])
		}
	}
}

func TestComputeNightly_SeasonBoundary(t *testing.T) {
	dates := []string{"2026-05-30", "2026-05-31", "2026-06-01"}
	rows := []models.InventoryDay{row(dates[0], 1, 0, 0), row(dates[1], 1, 0, 0), row(dates[2], 1, 0, 0)}

	nightly := ComputeNightly(dates, rows, []models.RatePlan{summerPlan()}, 10000)
	if got := TotalCents(nightly); got != 35000 {
		t.Fatalf("total = %d, want 35000", got)
	}
}

func TestComputeNightly_LongSeasonStay(t *testing.T) {
	var dates []string
	var rows []models.InventoryDay
	for d := 2; d <= 31; d++ {
		date := fmt.Sprintf("2026-07-%02d", d)
		dates = append(dates, date)
		rows = append(rows, row(date, 4, 1, 0))
	}
	nightly := ComputeNightly(dates, rows, []models.RatePlan{summerPlan()}, 10000)
	res := ComputeResult(nightly)
	if res.Nights != 30 || res.Available != 3 {
		t.Fatalf("result = %+v, want 30 nights with 3 available", res)
	}
	if got := TotalCents(nightly); got != 30*15000 {
		t.Fatalf("total = %d, want %d", got, 30*15000)
	}
}

func TestComputeResult(t *testing.T) {
	tests := []struct {
		name    string
		nightly []NightlyAvailability
		want    Result
	}{
		{"empty", nil, Result{Available: 0, Nights: 0}},
		{"single", []NightlyAvailability{{Available: 4}}, Result{Available: 4, Nights: 1}},
		{"minimum not average", []NightlyAvailability{{Available: 5}, {Available: 1}, {Available: 5}}, Result{Available: 1, Nights: 3}},
		{"one full night blocks stay", []NightlyAvailability{{Available: 3}, {Available: 0}}, Result{Available: 0, Nights: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeResult(tt.nightly); got != tt.want {
				t.Fatalf("ComputeResult = %+v, want %+v", got, tt.want)
			}
		})
	}
}
