package utils

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout là định dạng ngày dùng cho ledger và stay (YYYY-MM-DD, UTC)
const DateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDate kiểm tra chuỗi có đúng định dạng YYYY-MM-DD và là ngày hợp lệ
func IsDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parse ngày YYYY-MM-DD theo UTC
func ParseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return time.Parse(DateLayout, s)
}

// FormatDate format ngày theo UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// AddDays cộng số ngày vào chuỗi ngày
func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

// NightList trả về các đêm của stay [checkIn, checkOut), checkOut không tính
func NightList(checkIn, checkOut string) ([]string, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return nil, err
	}
	var nights []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, FormatDate(d))
	}
	return nights, nil
}

// DateRange trả về các ngày trong [start, end], gồm cả hai đầu
func DateRange(start, end string) ([]string, error) {
	last, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	endExclusive := FormatDate(last.AddDate(0, 0, 1))
	return NightList(start, endExclusive)
}

// Window trả về n ngày liên tiếp bắt đầu từ from
func Window(from time.Time, n int) []string {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, FormatDate(start.AddDate(0, 0, i)))
	}
	return dates
}

// Today trả về ngày hiện tại theo UTC
func Today(now time.Time) string {
	return FormatDate(now)
}
