package repository

import (
	"context"
	"time"

	"staydesk/constants"
	"staydesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NightReservation là kết quả tăng booked_units cho một đêm
type NightReservation struct {
	Date     string
	Reserved bool
}

// ReserveOutcome báo cáo từng đêm đã reserve được hay không
type ReserveOutcome struct {
	Nights []NightReservation
}

// Complete = mọi đêm đều reserve thành công
func (o ReserveOutcome) Complete() bool {
	for _, n := range o.Nights {
		if !n.Reserved {
			return false
		}
	}
	return len(o.Nights) > 0
}

// ReservedDates trả về các đêm đã tăng thành công, cần bù nếu stay thất bại
func (o ReserveOutcome) ReservedDates() []string {
	var dates []string
	for _, n := range o.Nights {
		if n.Reserved {
			dates = append(dates, n.Date)
		}
	}
	return dates
}

type InventoryRepository interface {
	WithTx(tx *gorm.DB) InventoryRepository
	LoadNights(ctx context.Context, propertyID, roomTypeID string, nights []string) ([]models.InventoryDay, error)
	LoadPropertyRange(ctx context.Context, propertyID, from, to string) ([]models.InventoryDay, error)
	Reserve(ctx context.Context, propertyID, roomTypeID string, nights []string) (ReserveOutcome, error)
	Unreserve(ctx context.Context, propertyID, roomTypeID string, nights []string) error
	Release(ctx context.Context, propertyID, roomTypeID string, nights []string) error
	SetRateOverride(ctx context.Context, propertyID, roomTypeID, date string, rateCents *int64) (bool, error)
	SetBlocked(ctx context.Context, propertyID, roomTypeID, date string, units int) (bool, error)
	UpsertWindow(ctx context.Context, propertyID, roomTypeID string, dates []string, totalUnits int) error
	ShrinkTotal(ctx context.Context, propertyID, roomTypeID, from string, totalUnits int) (string, error)
}

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	return &GormInventoryRepository{db: tx}
}

func (r *GormInventoryRepository) key(ctx context.Context, propertyID, roomTypeID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.InventoryDay{}).
		Where("property_id = ? AND room_type_id = ?", propertyID, roomTypeID)
}

// LoadNights đọc snapshot ledger cho các đêm trong một query
func (r *GormInventoryRepository) LoadNights(ctx context.Context, propertyID, roomTypeID string, nights []string) ([]models.InventoryDay, error) {
	var rows []models.InventoryDay
	if len(nights) == 0 {
		return rows, nil
	}
	err := r.key(ctx, propertyID, roomTypeID).
		Where("date IN ?", nights).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// LoadPropertyRange đọc ledger mọi loại phòng của property trong [from, to]
func (r *GormInventoryRepository) LoadPropertyRange(ctx context.Context, propertyID, from, to string) ([]models.InventoryDay, error) {
	var rows []models.InventoryDay
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND date >= ? AND date <= ?", propertyID, from, to).
		Order("room_type_id ASC, date ASC").
		Find(&rows).Error
	return rows, err
}

// Reserve tăng booked_units cho từng đêm, chỉ khi đêm đó còn ít nhất 1 unit.
// Điều kiện available nằm trong chính câu UPDATE nên check và reserve là một bước.
// Các đêm được cập nhật theo thứ tự ngày tăng dần trong cùng transaction,
// hai booking chồng nhau luôn khóa row theo cùng thứ tự.
func (r *GormInventoryRepository) Reserve(ctx context.Context, propertyID, roomTypeID string, nights []string) (ReserveOutcome, error) {
	var outcome ReserveOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		outcome.Nights = make([]NightReservation, 0, len(nights))
		now := time.Now().UTC()
		for _, night := range nights {
			res := tx.Model(&models.InventoryDay{}).
				Where("property_id = ? AND room_type_id = ? AND date = ?", propertyID, roomTypeID, night).
				Where("total_units - booked_units - blocked_units >= ?", 1).
				Updates(map[string]interface{}{
					"booked_units": gorm.Expr("booked_units + ?", 1),
					"updated_at":   now,
				})
			if res.Error != nil {
				return res.Error
			}
			outcome.Nights = append(outcome.Nights, NightReservation{Date: night, Reserved: res.RowsAffected == 1})
		}
		return nil
	})
	if err != nil {
		return ReserveOutcome{}, err
	}
	return outcome, nil
}

// Unreserve giảm booked_units không điều kiện, chỉ dùng để bù ngay sau Reserve của chính booking đó
func (r *GormInventoryRepository) Unreserve(ctx context.Context, propertyID, roomTypeID string, nights []string) error {
	if len(nights) == 0 {
		return nil
	}
	return r.key(ctx, propertyID, roomTypeID).
		Where("date IN ?", nights).
		Updates(map[string]interface{}{
			"booked_units": gorm.Expr("booked_units - ?", 1),
			"updated_at":   time.Now().UTC(),
		}).Error
}

// Release giảm booked_units, chặn ở 0 (cancel/no-show gọi hai lần vẫn an toàn)
func (r *GormInventoryRepository) Release(ctx context.Context, propertyID, roomTypeID string, nights []string) error {
	if len(nights) == 0 {
		return nil
	}
	return r.key(ctx, propertyID, roomTypeID).
		Where("date IN ?", nights).
		Updates(map[string]interface{}{
			"booked_units": gorm.Expr("CASE WHEN booked_units > 0 THEN booked_units - 1 ELSE 0 END"),
			"updated_at":   time.Now().UTC(),
		}).Error
}

// SetRateOverride đặt hoặc xóa (nil) giá ghim cho một ngày. Không tạo dòng ledger mới.
func (r *GormInventoryRepository) SetRateOverride(ctx context.Context, propertyID, roomTypeID, date string, rateCents *int64) (bool, error) {
	var value interface{}
	if rateCents != nil {
		value = *rateCents
	}
	res := r.key(ctx, propertyID, roomTypeID).
		Where("date = ?", date).
		Updates(map[string]interface{}{
			"rate_override_cents": value,
			"updated_at":          time.Now().UTC(),
		})
	return res.RowsAffected == 1, res.Error
}

// SetBlocked đặt số unit giữ tay cho một ngày, không để booked + blocked vượt total
func (r *GormInventoryRepository) SetBlocked(ctx context.Context, propertyID, roomTypeID, date string, units int) (bool, error) {
	res := r.key(ctx, propertyID, roomTypeID).
		Where("date = ?", date).
		Where("total_units - booked_units >= ?", units).
		Updates(map[string]interface{}{
			"blocked_units": units,
			"updated_at":    time.Now().UTC(),
		})
	return res.RowsAffected == 1, res.Error
}

// UpsertWindow tạo các dòng ledger còn thiếu; dòng đã có chỉ cập nhật total_units
func (r *GormInventoryRepository) UpsertWindow(ctx context.Context, propertyID, roomTypeID string, dates []string, totalUnits int) error {
	if len(dates) == 0 {
		return nil
	}
	rows := make([]models.InventoryDay, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.InventoryDay{
			PropertyID: propertyID,
			RoomTypeID: roomTypeID,
			Date:       d,
			TotalUnits: totalUnits,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "room_type_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_units": totalUnits,
				"updated_at":  time.Now().UTC(),
			}),
		}).
		CreateInBatches(&rows, constants.InventoryUpsertBatchSize).Error
}

// ShrinkTotal hạ total_units từ ngày from, chỉ trên các dòng còn chứa được booked + blocked.
// Trả về ngày đầu tiên không chứa được, "" nếu mọi dòng đã cập nhật. Caller chạy trong
// transaction và rollback khi có ngày bị vượt.
func (r *GormInventoryRepository) ShrinkTotal(ctx context.Context, propertyID, roomTypeID, from string, totalUnits int) (string, error) {
	err := r.key(ctx, propertyID, roomTypeID).
		Where("date >= ?", from).
		Where("booked_units + blocked_units <= ?", totalUnits).
		Updates(map[string]interface{}{
			"total_units": totalUnits,
			"updated_at":  time.Now().UTC(),
		}).Error
	if err != nil {
		return "", err
	}

	var rows []models.InventoryDay
	err = r.key(ctx, propertyID, roomTypeID).
		Where("date >= ?", from).
		Where("booked_units + blocked_units > ?", totalUnits).
		Order("date ASC").
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return "", err
	}
	return rows[0].Date, nil
}
