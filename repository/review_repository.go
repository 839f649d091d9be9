package repository

import (
	"context"
	"time"

	"staydesk/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	WithTx(tx *gorm.DB) ReviewRepository
	CreateToken(ctx context.Context, token *models.ReviewToken) error
	FindToken(ctx context.Context, token string) (*models.ReviewToken, error)
	FindTokenByReservation(ctx context.Context, reservationID string) (*models.ReviewToken, error)
	ListOpenTokens(ctx context.Context, checkedOutBy string) ([]models.ReviewToken, error)
	ConsumeToken(ctx context.Context, id string, at time.Time) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	ListByProperty(ctx context.Context, propertyID string, status models.ReviewStatus) ([]models.Review, error)
	Summary(ctx context.Context, propertyID string) (float64, int64, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: tx}
}

func (r *GormReviewRepository) CreateToken(ctx context.Context, token *models.ReviewToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *GormReviewRepository) tokenQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Guest").
		Preload("Reservation.Property")
}

func (r *GormReviewRepository) FindToken(ctx context.Context, token string) (*models.ReviewToken, error) {
	var row models.ReviewToken
	if err := r.tokenQuery(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (r *GormReviewRepository) FindTokenByReservation(ctx context.Context, reservationID string) (*models.ReviewToken, error) {
	var row models.ReviewToken
	if err := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// ListOpenTokens trả về token chưa dùng của các stay đã check-out với check_out <= checkedOutBy.
// Hạn của token do caller kiểm tra.
func (r *GormReviewRepository) ListOpenTokens(ctx context.Context, checkedOutBy string) ([]models.ReviewToken, error) {
	var list []models.ReviewToken
	err := r.tokenQuery(ctx).
		Joins("JOIN reservations ON reservations.id = review_tokens.reservation_id").
		Where("review_tokens.used_at IS NULL AND reservations.status = ? AND reservations.check_out <= ?",
			models.ReservationStatusCheckedOut, checkedOutBy).
		Order("review_tokens.created_at ASC").
		Find(&list).Error
	return list, err
}

// ConsumeToken đánh dấu token đã dùng; false nếu đã có request khác dùng trước
func (r *GormReviewRepository) ConsumeToken(ctx context.Context, id string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ReviewToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("Guest").Where("id = ?", id).First(&review).Error; err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

func (r *GormReviewRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields).Error
}

// ListByProperty trả review mới nhất trước; status rỗng = mọi trạng thái
func (r *GormReviewRepository) ListByProperty(ctx context.Context, propertyID string, status models.ReviewStatus) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Preload("Guest").Where("property_id = ?", propertyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Review
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// Summary tính điểm trung bình và số review đã publish
func (r *GormReviewRepository) Summary(ctx context.Context, propertyID string) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(id) AS total").
		Where("property_id = ? AND status = ?", propertyID, models.ReviewStatusPublished).
		Scan(&row).Error
	return row.Average, row.Total, err
}
