package dto

import "staydesk/models"

// PropertyResponse là thông tin public của property
type PropertyResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Description       string `json:"description,omitempty"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	Currency          string `json:"currency"`
	CheckInTime       string `json:"checkInTime"`
	CheckOutTime      string `json:"checkOutTime"`
	PaymentMode       string `json:"paymentMode"`
	DepositPercentage int    `json:"depositPercentage"`
}

func NewPropertyResponse(p *models.Property) PropertyResponse {
	return PropertyResponse{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Address:           p.Address,
		City:              p.City,
		Country:           p.Country,
		Currency:          p.Currency,
		CheckInTime:       p.CheckInTime,
		CheckOutTime:      p.CheckOutTime,
		PaymentMode:       string(p.PaymentMode),
		DepositPercentage: p.DepositPercentage,
	}
}

type RoomTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	BaseOccupancy int    `json:"baseOccupancy"`
	MaxOccupancy  int    `json:"maxOccupancy"`
	BaseRateCents int64  `json:"baseRateCents"`
}

func NewRoomTypeResponses(list []models.RoomType) []RoomTypeResponse {
	out := make([]RoomTypeResponse, 0, len(list))
	for _, rt := range list {
		out = append(out, RoomTypeResponse{
			ID:            rt.ID,
			Name:          rt.Name,
			Slug:          rt.Slug,
			Description:   rt.Description,
			BaseOccupancy: rt.BaseOccupancy,
			MaxOccupancy:  rt.MaxOccupancy,
			BaseRateCents: rt.BaseRateCents,
		})
	}
	return out
}
