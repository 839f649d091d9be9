package models

type Guest struct {
	Base
	PropertyID      string `json:"propertyId" gorm:"type:varchar(36);not null;uniqueIndex:idx_guest_email"`
	Email           string `json:"email" gorm:"type:varchar(320);not null;uniqueIndex:idx_guest_email"`
	FirstName       string `json:"firstName" gorm:"not null"`
	LastName        string `json:"lastName" gorm:"not null"`
	Phone           string `json:"phone"`
	TotalStays      int    `json:"totalStays" gorm:"not null;default:0"`
	TotalSpentCents int64  `json:"totalSpentCents" gorm:"not null;default:0"`
}
