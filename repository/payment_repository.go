package repository

import (
	"context"
	"time"

	"staydesk/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository
	FindByProviderRef(ctx context.Context, ref string) (*models.Payment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, at time.Time) error
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: tx}
}

func (r *GormPaymentRepository) FindByProviderRef(ctx context.Context, ref string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Where("provider_ref = ?", ref).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *GormPaymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).Order("created_at ASC").Find(&list).Error
	return list, err
}

// UpdateStatus cập nhật trạng thái và mốc thời gian tương ứng
func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, at time.Time) error {
	fields := map[string]interface{}{"status": status}
	switch status {
	case models.PaymentStatusCaptured:
		fields["captured_at"] = at
	case models.PaymentStatusRefunded:
		fields["refunded_at"] = at
	}
	return r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", paymentID).Updates(fields).Error
}
