package models

import "time"

type EmailType string

const (
	EmailConfirmation  EmailType = "confirmation"
	EmailCancellation  EmailType = "cancellation"
	EmailPreArrival    EmailType = "pre_arrival"
	EmailPostStay      EmailType = "post_stay"
	EmailReviewRequest EmailType = "review_request"
)

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

type EmailLog struct {
	Base
	ReservationID string    `json:"reservationId" gorm:"type:varchar(36);not null;index:idx_email_log_kind"`
	PropertyID    string    `json:"propertyId" gorm:"type:varchar(36);not null"`
	Type          EmailType `json:"type" gorm:"type:varchar(20);not null;index:idx_email_log_kind"`
	Recipient     string    `json:"recipient"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status" gorm:"type:varchar(8)"`
	SentAt        time.Time `json:"sentAt"`
}
