package models

import "time"

type ReviewStatus string

const (
	ReviewStatusPending   ReviewStatus = "pending"
	ReviewStatusPublished ReviewStatus = "published"
	ReviewStatusHidden    ReviewStatus = "hidden"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusPublished, ReviewStatusHidden:
		return true
	}
	return false
}

// ReviewToken là link dùng một lần để khách đánh giá sau khi check-out
type ReviewToken struct {
	Base
	ReservationID string       `json:"reservationId" gorm:"type:varchar(36);not null;uniqueIndex"`
	PropertyID    string       `json:"propertyId" gorm:"type:varchar(36);not null;index"`
	Token         string       `json:"-" gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt     time.Time    `json:"expiresAt" gorm:"not null"`
	UsedAt        *time.Time   `json:"usedAt"`
	Reservation   *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}

func (t *ReviewToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Review chỉ hiện public khi operator đã publish
type Review struct {
	Base
	PropertyID          string       `json:"propertyId" gorm:"type:varchar(36);not null;index:idx_review_property_status"`
	ReservationID       string       `json:"reservationId" gorm:"type:varchar(36);not null;uniqueIndex"`
	GuestID             string       `json:"guestId" gorm:"type:varchar(36);not null"`
	ReviewTokenID       string       `json:"reviewTokenId" gorm:"type:varchar(36);not null"`
	Rating              int          `json:"rating" gorm:"not null"`
	Title               string       `json:"title" gorm:"type:varchar(200)"`
	Body                string       `json:"body" gorm:"type:text;not null"`
	StayDateStart       string       `json:"stayDateStart" gorm:"type:varchar(10);not null"`
	StayDateEnd         string       `json:"stayDateEnd" gorm:"type:varchar(10);not null"`
	Status              ReviewStatus `json:"status" gorm:"type:varchar(10);not null;default:pending;index:idx_review_property_status"`
	PropertyResponse    string       `json:"propertyResponse" gorm:"type:text"`
	PropertyRespondedAt *time.Time   `json:"propertyRespondedAt"`
	Guest               *Guest       `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
