package builders

import (
	"strings"

	"staydesk/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo builder với trạng thái mặc định confirmed, kênh direct
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			Status:  models.ReservationStatusConfirmed,
			Channel: models.ChannelDirect,
		},
	}
}

// ForProperty gán property và tiền tệ của property
func (b *ReservationBuilder) ForProperty(p *models.Property) *ReservationBuilder {
	b.reservation.PropertyID = p.ID
	b.reservation.Currency = strings.ToUpper(p.Currency)
	return b
}

func (b *ReservationBuilder) WithCode(code string) *ReservationBuilder {
	b.reservation.ConfirmationCode = code
	return b
}

// WithStay thêm ngày ở, nights = số đêm [checkIn, checkOut)
func (b *ReservationBuilder) WithStay(checkIn, checkOut string, nights int) *ReservationBuilder {
	b.reservation.CheckIn = checkIn
	b.reservation.CheckOut = checkOut
	b.reservation.Nights = nights
	return b
}

func (b *ReservationBuilder) WithParty(adults, children int) *ReservationBuilder {
	b.reservation.Adults = adults
	b.reservation.Children = children
	return b
}

// WithChannel bỏ qua kênh rỗng
func (b *ReservationBuilder) WithChannel(ch models.Channel) *ReservationBuilder {
	if ch != "" {
		b.reservation.Channel = ch
	}
	return b
}

func (b *ReservationBuilder) WithStatus(status models.ReservationStatus) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

func (b *ReservationBuilder) WithTotal(totalCents int64) *ReservationBuilder {
	b.reservation.TotalCents = totalCents
	return b
}

func (b *ReservationBuilder) WithSpecialRequests(s string) *ReservationBuilder {
	b.reservation.SpecialRequests = strings.TrimSpace(s)
	return b
}

// WithRoom thêm một line item với giá đêm đầu
func (b *ReservationBuilder) WithRoom(rt *models.RoomType, ratePerNightCents int64) *ReservationBuilder {
	b.reservation.Rooms = append(b.reservation.Rooms, models.ReservationRoom{
		RoomTypeID:        rt.ID,
		RatePerNightCents: ratePerNightCents,
		RoomType:          rt,
	})
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}

// NewGuest chuẩn hóa thông tin guest (email chữ thường)
func NewGuest(propertyID, firstName, lastName, email, phone string) models.Guest {
	return models.Guest{
		PropertyID: propertyID,
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Phone:      strings.TrimSpace(phone),
	}
}
