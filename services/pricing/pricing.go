// Package pricing resolves the effective nightly rate of a room type.
//
// The per-date inventory override is applied by the caller before ResolveRate;
// it beats everything resolved here.
package pricing

import (
	"sort"

	"staydesk/models"
)

// ResolveRate trả về giá hiệu lực (cents) cho một ngày YYYY-MM-DD.
//
// Chỉ plan active, type seasonal, có đủ DateStart/DateEnd và chứa date
// (bao gồm hai đầu) mới tham gia. Priority cao nhất thắng; bằng priority thì
// plan tạo sau thắng, rồi tới ID nhỏ hơn. Không có plan nào khớp thì trả về giá cơ bản.
func ResolveRate(baseRateCents int64, date string, plans []models.RatePlan) int64 {
	best := Match(date, plans)
	if best == nil {
		return baseRateCents
	}
	return best.RateCents
}

// Match trả về plan thắng cho date, hoặc nil
func Match(date string, plans []models.RatePlan) *models.RatePlan {
	applicable := make([]models.RatePlan, 0, len(plans))
	for _, p := range plans {
		if applies(p, date) {
			applicable = append(applicable, p)
		}
	}
	if len(applicable) == 0 {
		return nil
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		a, b := applicable[i], applicable[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return &applicable[0]
}

func applies(p models.RatePlan, date string) bool {
	if p.Status != models.RatePlanStatusActive || p.Type != models.RatePlanSeasonal {
		return false
	}
	if p.DateStart == nil || p.DateEnd == nil {
		return false
	}
	// YYYY-MM-DD so sánh theo chuỗi đúng thứ tự ngày
	return date >= *p.DateStart && date <= *p.DateEnd
}
