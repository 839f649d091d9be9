// Package availability computes per-night and per-stay availability from a
// ledger snapshot. All loading is the caller's job.
package availability

import (
	"staydesk/models"
	"staydesk/services/pricing"
)

// NightlyAvailability là kết quả cho một đêm
type NightlyAvailability struct {
	Date         string `json:"date"`
	Available    int    `json:"available"`
	TotalUnits   int    `json:"totalUnits"`
	RateCents    int64  `json:"rateCents"`
	Materialized bool   `json:"-"`
}

// Result là kết quả cho cả stay
type Result struct {
	Available int `json:"available"`
	Nights    int `json:"nights"`
}

// ComputeNightly tính available và giá cho từng ngày.
// Ngày không có dòng ledger thì không bán được (available = 0).
func ComputeNightly(dates []string, rows []models.InventoryDay, plans []models.RatePlan, baseRateCents int64) []NightlyAvailability {
	byDate := make(map[string]models.InventoryDay, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	nightly := make([]NightlyAvailability, 0, len(dates))
	for _, date := range dates {
		n := NightlyAvailability{Date: date}
		row, ok := byDate[date]
		if ok {
			n.Materialized = true
			n.TotalUnits = row.TotalUnits
			n.Available = row.Available()
		}
		if ok && row.RateOverrideCents != nil {
			n.RateCents = *row.RateOverrideCents
		} else {
			n.RateCents = pricing.ResolveRate(baseRateCents, date, plans)
		}
		nightly = append(nightly, n)
	}
	return nightly
}

// ComputeResult lấy min available trên toàn bộ stay
func ComputeResult(nightly []NightlyAvailability) Result {
	if len(nightly) == 0 {
		return Result{}
	}
	min := nightly[0].Available
	for _, n := range nightly[1:] {
		if n.Available < min {
			min = n.Available
		}
	}
	return Result{Available: min, Nights: len(nightly)}
}

// TotalCents cộng giá từng đêm
func TotalCents(nightly []NightlyAvailability) int64 {
	var total int64
	for _, n := range nightly {
		total += n.RateCents
	}
	return total
}

// Unmaterialized trả về các ngày chưa có dòng ledger (ngoài window)
func Unmaterialized(nightly []NightlyAvailability) []string {
	var missing []string
	for _, n := range nightly {
		if !n.Materialized {
			missing = append(missing, n.Date)
		}
	}
	return missing
}
