package repository

import (
	"context"

	"staydesk/models"

	"gorm.io/gorm"
)

type GormEmailLogRepository struct {
	db *gorm.DB
}

func NewGormEmailLogRepository(db *gorm.DB) *GormEmailLogRepository {
	return &GormEmailLogRepository{db: db}
}

// Sent kiểm tra đã gửi thành công email loại này cho reservation chưa
func (r *GormEmailLogRepository) Sent(ctx context.Context, reservationID string, kind models.EmailType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmailLog{}).
		Where("reservation_id = ? AND type = ? AND status = ?", reservationID, kind, models.EmailStatusSent).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEmailLogRepository) Record(ctx context.Context, entry *models.EmailLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
