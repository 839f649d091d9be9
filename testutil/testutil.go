// Package testutil mở database sqlite in-memory và seed dữ liệu cho test.
package testutil

import (
	"testing"

	"staydesk/models"
	"staydesk/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenRedis chạy redis trong bộ nhớ (miniredis) cho test cache và session
func OpenRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

// OpenDB mở database in-memory đã migrate. Chỉ một connection nên các
// transaction chạy tuần tự, code trong transaction phải dùng tx.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedOptions mô tả property mẫu
type SeedOptions struct {
	Slug          string
	Units         int
	BaseRateCents int64
	From          string
	Days          int
	MaxOccupancy  int
	PaymentMode   models.PaymentMode
}

// Fixture là dữ liệu đã seed
type Fixture struct {
	Property models.Property
	RoomType models.RoomType
	Rooms    []models.Room
}

// Seed tạo property, một loại phòng, Units phòng và ledger Days ngày từ From
func Seed(t *testing.T, db *gorm.DB, opts SeedOptions) Fixture {
	t.Helper()
	if opts.Slug == "" {
		opts.Slug = "seaside-inn"
	}
	if opts.BaseRateCents == 0 {
		opts.BaseRateCents = 10000
	}
	if opts.From == "" {
		opts.From = "2026-07-01"
	}
	if opts.MaxOccupancy == 0 {
		opts.MaxOccupancy = 2
	}
	if opts.PaymentMode == "" {
		opts.PaymentMode = models.PaymentModeFullAtBooking
	}

	fx := Fixture{
		Property: models.Property{
			Name:              "Seaside Inn",
			Slug:              opts.Slug,
			Currency:          "EUR",
			DepositPercentage: 30,
			PaymentMode:       opts.PaymentMode,
			Status:            models.PropertyStatusActive,
		},
	}
	if err := db.Create(&fx.Property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}

	fx.RoomType = models.RoomType{
		PropertyID:    fx.Property.ID,
		Name:          "Double Room",
		Slug:          "double-room",
		BaseOccupancy: 2,
		MaxOccupancy:  opts.MaxOccupancy,
		BaseRateCents: opts.BaseRateCents,
		Status:        models.RoomTypeStatusActive,
	}
	if err := db.Create(&fx.RoomType).Error; err != nil {
		t.Fatalf("seed room type: %v", err)
	}

	for i := 0; i < opts.Units; i++ {
		room := models.Room{
			PropertyID: fx.Property.ID,
			RoomTypeID: fx.RoomType.ID,
			Name:       string(rune('A' + i)),
			Status:     models.RoomStatusAvailable,
		}
		if err := db.Omit("RoomType").Create(&room).Error; err != nil {
			t.Fatalf("seed room: %v", err)
		}
		fx.Rooms = append(fx.Rooms, room)
	}

	if opts.Days > 0 {
		end, err := utils.AddDays(opts.From, opts.Days-1)
		if err != nil {
			t.Fatalf("seed window: %v", err)
		}
		dates, _ := utils.DateRange(opts.From, end)
		SeedInventory(t, db, fx.Property.ID, fx.RoomType.ID, dates, opts.Units)
	}
	return fx
}

// SeedInventory tạo dòng ledger cho các ngày
func SeedInventory(t *testing.T, db *gorm.DB, propertyID, roomTypeID string, dates []string, units int) {
	t.Helper()
	for _, d := range dates {
		row := models.InventoryDay{PropertyID: propertyID, RoomTypeID: roomTypeID, Date: d, TotalUnits: units}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed inventory %s: %v", d, err)
		}
	}
}

// SeedSeasonalPlan thêm rate plan seasonal
func SeedSeasonalPlan(t *testing.T, db *gorm.DB, fx Fixture, start, end string, rateCents int64, priority int) models.RatePlan {
	t.Helper()
	plan := models.RatePlan{
		PropertyID: fx.Property.ID,
		RoomTypeID: fx.RoomType.ID,
		Name:       "season " + start,
		Type:       models.RatePlanSeasonal,
		DateStart:  &start,
		DateEnd:    &end,
		RateCents:  rateCents,
		Priority:   priority,
		Status:     models.RatePlanStatusActive,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return plan
}

// Inventory đọc một dòng ledger
func Inventory(t *testing.T, db *gorm.DB, fx Fixture, date string) models.InventoryDay {
	t.Helper()
	var row models.InventoryDay
	if err := db.Where("property_id = ? AND room_type_id = ? AND date = ?", fx.Property.ID, fx.RoomType.ID, date).
		First(&row).Error; err != nil {
		t.Fatalf("load inventory %s: %v", date, err)
	}
	return row
}
