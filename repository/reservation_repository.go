package repository

import (
	"context"
	stdErrors "errors"
	"strings"

	"staydesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRecords là toàn bộ dữ liệu ghi sau khi ledger đã reserve thành công
type BookingRecords struct {
	Guest       models.Guest
	Reservation *models.Reservation
	Rooms       []models.ReservationRoom
	Payment     *models.Payment
}

type ReservationRepository interface {
	WithTx(tx *gorm.DB) ReservationRepository
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateRecords(ctx context.Context, rec BookingRecords) (*models.Reservation, error)
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	FindByCode(ctx context.Context, code string) (*models.Reservation, error)
	FindByCodeForProperty(ctx context.Context, propertyID, code string) (*models.Reservation, error)
	TransitionStatus(ctx context.Context, r *models.Reservation, from models.ReservationStatus) (bool, error)
	ListArrivals(ctx context.Context, date string, statuses []models.ReservationStatus) ([]models.Reservation, error)
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) WithTx(tx *gorm.DB) ReservationRepository {
	return &GormReservationRepository{db: tx}
}

func (r *GormReservationRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("confirmation_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// CreateRecords upsert guest, tạo reservation + line item + payment và cập nhật
// bộ đếm của guest trong một transaction
func (r *GormReservationRepository) CreateRecords(ctx context.Context, rec BookingRecords) (*models.Reservation, error) {
	reservation := rec.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guest := rec.Guest
		guest.Email = strings.ToLower(strings.TrimSpace(guest.Email))

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}, {Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "phone", "updated_at"}),
		}).Create(&guest).Error; err != nil {
			return err
		}
		// on conflict giữ ID cũ, đọc lại để lấy đúng ID
		if err := tx.Where("property_id = ? AND email = ?", guest.PropertyID, guest.Email).
			First(&guest).Error; err != nil {
			return err
		}

		reservation.GuestID = guest.ID
		if err := tx.Omit(clause.Associations).Create(reservation).Error; err != nil {
			return err
		}

		for i := range rec.Rooms {
			rec.Rooms[i].ReservationID = reservation.ID
		}
		if len(rec.Rooms) > 0 {
			if err := tx.Omit(clause.Associations).Create(&rec.Rooms).Error; err != nil {
				return err
			}
		}

		if rec.Payment != nil {
			rec.Payment.ReservationID = reservation.ID
			if err := tx.Omit(clause.Associations).Create(rec.Payment).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Guest{}).Where("id = ?", guest.ID).Updates(map[string]interface{}{
			"total_stays":       gorm.Expr("total_stays + ?", 1),
			"total_spent_cents": gorm.Expr("total_spent_cents + ?", reservation.TotalCents),
		}).Error; err != nil {
			return err
		}

		guest.TotalStays++
		guest.TotalSpentCents += reservation.TotalCents
		reservation.Guest = &guest
		reservation.Rooms = rec.Rooms
		if rec.Payment != nil {
			reservation.Payments = []models.Payment{*rec.Payment}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *GormReservationRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Property").
		Preload("Rooms").
		Preload("Rooms.RoomType").
		Preload("Payments")
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.preload(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

func (r *GormReservationRepository) FindByCode(ctx context.Context, code string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.preload(ctx).Where("confirmation_code = ?", code).First(&res).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

func (r *GormReservationRepository) FindByCodeForProperty(ctx context.Context, propertyID, code string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.preload(ctx).Where("property_id = ? AND confirmation_code = ?", propertyID, code).First(&res).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

// TransitionStatus ghi trạng thái mới chỉ khi trạng thái hiện tại vẫn là from.
// Trả về false nếu đã có request khác đổi trạng thái trước.
func (r *GormReservationRepository) TransitionStatus(ctx context.Context, res *models.Reservation, from models.ReservationStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", res.ID, from).
		Updates(map[string]interface{}{
			"status":              res.Status,
			"cancelled_at":        res.CancelledAt,
			"cancellation_reason": res.CancellationReason,
			"checked_in_at":       res.CheckedInAt,
			"checked_out_at":      res.CheckedOutAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListArrivals trả về reservation có check-in vào ngày date
func (r *GormReservationRepository) ListArrivals(ctx context.Context, date string, statuses []models.ReservationStatus) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.preload(ctx).
		Where("check_in = ? AND status IN ?", date, statuses).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// ErrNotFound được trả về khi không có bản ghi
var ErrNotFound = stdErrors.New("record not found")

func notFound(err error) error {
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
