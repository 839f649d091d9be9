package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentType string

const (
	PaymentTypeDeposit     PaymentType = "deposit"
	PaymentTypeFullPayment PaymentType = "full_payment"
)

type PaymentStatus string

const (
	PaymentStatusRequiresCapture PaymentStatus = "requires_capture"
	PaymentStatusCaptured        PaymentStatus = "captured"
	PaymentStatusFailed          PaymentStatus = "failed"
	PaymentStatusRefunded        PaymentStatus = "refunded"
	PaymentStatusCancelled       PaymentStatus = "cancelled"
)

type Payment struct {
	Base
	ReservationID string         `json:"reservationId" gorm:"type:varchar(36);not null;index"`
	PropertyID    string         `json:"propertyId" gorm:"type:varchar(36);not null;index"`
	Provider      string         `json:"provider" gorm:"type:varchar(32);not null"`
	ProviderRef   string         `json:"providerRef" gorm:"type:varchar(64);index"`
	Type          PaymentType    `json:"type" gorm:"type:varchar(16);not null"`
	Status        PaymentStatus  `json:"status" gorm:"type:varchar(20);not null"`
	AmountCents   int64          `json:"amountCents" gorm:"not null"`
	Currency      string         `json:"currency" gorm:"type:varchar(3);not null"`
	CapturedAt    *time.Time     `json:"capturedAt"`
	RefundedAt    *time.Time     `json:"refundedAt"`
	Metadata      datatypes.JSON `json:"metadata"`
}
