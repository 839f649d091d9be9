package payment

import (
	"staydesk/models"

	"github.com/shopspring/decimal"
)

// DepositAmount = round(total * pct / 100), làm tròn nửa ra xa 0
func DepositAmount(totalCents int64, percentage int) int64 {
	return decimal.NewFromInt(totalCents).
		Mul(decimal.NewFromInt(int64(percentage))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// ChargeAmount trả về số tiền thu lúc đặt phòng theo payment mode
func ChargeAmount(p *models.Property, totalCents int64) int64 {
	if p.PaymentMode == models.PaymentModeDepositAtBooking {
		return DepositAmount(totalCents, p.DepositPercentage)
	}
	return totalCents
}
