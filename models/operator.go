package models

// Operator là tài khoản nhân viên dùng dashboard
type Operator struct {
	Base
	Name         string  `json:"name"`
	Email        string  `json:"email" gorm:"type:varchar(320);uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"not null"`
	Role         int     `json:"role" gorm:"default:3"`
	PropertyID   *string `json:"propertyId" gorm:"type:varchar(36);index"`
}
