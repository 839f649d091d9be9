package pricing

import (
	"testing"
	"time"

	"staydesk/models"
)

func str(s string) *string { return &s }

func seasonal(id string, start, end *string, rate int64, priority int) models.RatePlan {
	p := models.RatePlan{
		Type:      models.RatePlanSeasonal,
		DateStart: start,
		DateEnd:   end,
		RateCents: rate,
		Priority:  priority,
		Status:    models.RatePlanStatusActive,
	}
	p.ID = id
	return p
}

func TestResolveRate(t *testing.T) {
	summer := seasonal("summer", str("2026-06-01"), str("2026-08-31"), 15000, 0)

	inactive := summer
	inactive.Status = models.RatePlanStatusInactive

	los := summer
	los.Type = models.RatePlanLengthOfStay

	occupancy := summer
	occupancy.Type = models.RatePlanOccupancy

	peak := seasonal("peak", str("2026-07-10"), str("2026-07-20"), 20000, 10)
	free := seasonal("free", str("2026-07-01"), str("2026-07-01"), 0, 5)
	openEnded := seasonal("open", str("2026-01-01"), nil, 9000, 99)

	tests := []struct {
		name  string
		date  string
		plans []models.RatePlan
		want  int64
	}{
		{"no plans", "2026-07-15", nil, 10000},
		{"inside season", "2026-07-15", []models.RatePlan{summer}, 15000},
		{"day before season", "2026-05-31", []models.RatePlan{summer}, 10000},
		{"first day inclusive", "2026-06-01", []models.RatePlan{summer}, 15000},
		{"last day inclusive", "2026-08-31", []models.RatePlan{summer}, 15000},
		{"day after season", "2026-09-01", []models.RatePlan{summer}, 10000},
		{"inactive ignored", "2026-07-15", []models.RatePlan{inactive}, 10000},
		{"length of stay ignored", "2026-07-15", []models.RatePlan{los}, 10000},
		{"occupancy ignored", "2026-07-15", []models.RatePlan{occupancy}, 10000},
		{"higher priority wins", "2026-07-15", []models.RatePlan{summer, peak}, 20000},
		{"priority independent of order", "2026-07-15", []models.RatePlan{peak, summer}, 20000},
		{"zero cent plan honored", "2026-07-01", []models.RatePlan{summer, free}, 0},
		{"null bound ignored", "2026-07-15", []models.RatePlan{openEnded}, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRate(10000, tt.date, tt.plans); got != tt.want {
				t.Fatalf("ResolveRate(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestResolveRate_PriorityTieBreak(t *testing.T) {
	older := seasonal("b-older", str("2026-06-01"), str("2026-06-30"), 11000, 1)
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := seasonal("c-newer", str("2026-06-01"), str("2026-06-30"), 12000, 1)
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, plans := range [][]models.RatePlan{{older, newer}, {newer, older}} {
		if got := ResolveRate(10000, "2026-06-15", plans); got != 12000 {
			t.Fatalf("tie should go to most recently created plan, got %d", got)
		}
	}

	sameTimeA := seasonal("a", str("2026-06-01"), str("2026-06-30"), 13000, 1)
	sameTimeB := seasonal("b", str("2026-06-01"), str("2026-06-30"), 14000, 1)
	for _, plans := range [][]models.RatePlan{{sameTimeA, sameTimeB}, {sameTimeB, sameTimeA}} {
		if got := ResolveRate(10000, "2026-06-15", plans); got != 13000 {
			t.Fatalf("tie with equal timestamps should go to smallest id, got %d", got)
		}
	}
}

func TestResolveRate_Deterministic(t *testing.T) {
	plans := []models.RatePlan{
		seasonal("x", str("2026-06-01"), str("2026-08-31"), 15000, 0),
		seasonal("y", str("2026-06-01"), str("2026-08-31"), 16000, 0),
	}
	first := ResolveRate(10000, "2026-07-01", plans)
	for i := 0; i < 20; i++ {
		if got := ResolveRate(10000, "2026-07-01", plans); got != first {
			t.Fatalf("run %d: got %d, want %d", i, got, first)
		}
	}
}
