package models

import "gorm.io/gorm"

// AutoMigrate tạo/cập nhật schema cho toàn bộ bảng
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Property{},
		&RoomType{},
		&Room{},
		&RatePlan{},
		&InventoryDay{},
		&Guest{},
		&Reservation{},
		&ReservationRoom{},
		&Payment{},
		&EmailLog{},
		&Operator{},
		&ReviewToken{},
		&Review{},
	)
}
