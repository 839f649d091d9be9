package services

import (
	"context"
	"fmt"
	"time"

	"staydesk/constants"
	"staydesk/errors"
	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/utils"
	"staydesk/validator"
)

// InventoryService quản lý cửa sổ ledger và các thao tác của operator trên ledger
type InventoryService struct {
	properties   repository.PropertyRepository
	inventory    repository.InventoryRepository
	availability *AvailabilityService
	windowDays   int
	logger       logger.Logger
	now          func() time.Time
}

type InventoryServiceOptions struct {
	Properties   repository.PropertyRepository
	Inventory    repository.InventoryRepository
	Availability *AvailabilityService
	WindowDays   int
	Logger       logger.Logger
	Now          func() time.Time
}

func NewInventoryService(opts InventoryServiceOptions) *InventoryService {
	if opts.WindowDays <= 0 {
		opts.WindowDays = constants.DefaultInventoryWindowDays
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &InventoryService{
		properties:   opts.Properties,
		inventory:    opts.Inventory,
		availability: opts.Availability,
		windowDays:   opts.WindowDays,
		logger:       opts.Logger,
		now:          opts.Now,
	}
}

func (s *InventoryService) WindowDays() int { return s.windowDays }

// WindowStart là ngày đầu của cửa sổ backfill (hôm nay, UTC)
func (s *InventoryService) WindowStart() string {
	return utils.Today(s.now().UTC())
}

// Backfill tạo/cập nhật windowDays dòng ledger từ hôm nay; total_units = số phòng của loại
func (s *InventoryService) Backfill(ctx context.Context, propertyID, roomTypeID string) error {
	count, err := s.properties.CountRooms(ctx, propertyID, roomTypeID)
	if err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	dates := utils.Window(s.now().UTC(), s.windowDays)
	if err := s.inventory.UpsertWindow(ctx, propertyID, roomTypeID, dates, int(count)); err != nil {
		return fmt.Errorf("upsert window %s: %w", roomTypeID, err)
	}
	s.availability.InvalidateProperty(ctx, propertyID)
	s.logger.Debug("backfill %s/%s: %d days x %d units", propertyID, roomTypeID, len(dates), count)
	return nil
}

// BackfillProperty chạy Backfill cho mọi loại phòng của một property
func (s *InventoryService) BackfillProperty(ctx context.Context, propertyID string) (int, error) {
	roomTypes, err := s.properties.ListActiveRoomTypes(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	for _, rt := range roomTypes {
		if err := s.Backfill(ctx, propertyID, rt.ID); err != nil {
			return 0, err
		}
	}
	return len(roomTypes), nil
}

// BackfillAll chạy hằng ngày, đẩy cửa sổ ledger về phía trước.
// Lỗi của một loại phòng không chặn các loại khác.
func (s *InventoryService) BackfillAll(ctx context.Context) (int, error) {
	roomTypes, err := s.properties.ListAllRoomTypes(ctx)
	if err != nil {
		return 0, err
	}
	done := 0
	var firstErr error
	for _, rt := range roomTypes {
		if err := s.Backfill(ctx, rt.PropertyID, rt.ID); err != nil {
			s.logger.Error("backfill %s: %v", rt.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done++
	}
	s.logger.Info("backfill: %d/%d room types, %d days from %s", done, len(roomTypes), s.windowDays, s.WindowStart())
	return done, firstErr
}

func (s *InventoryService) checkTarget(ctx context.Context, propertyID, roomTypeID, date string) error {
	if !utils.IsDate(date) {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Date must be in YYYY-MM-DD format.", nil)
	}
	if _, err := s.properties.FindRoomType(ctx, propertyID, roomTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errors.NewAppError(errors.ErrCodeNotFound, constants.MsgRoomTypeNotFound, errors.ErrRoomTypeNotFound)
		}
		return unexpected(err)
	}
	return nil
}

func ledgerRowMissing(date string) error {
	return errors.NewAppError(errors.ErrCodeNotFound,
		fmt.Sprintf("No inventory for %s. Dates outside the inventory window cannot be changed.", date),
		errors.ErrLedgerRowMissing)
}

// SetRateOverride ghim giá (kể cả 0) hoặc xóa giá ghim khi rateCents nil
func (s *InventoryService) SetRateOverride(ctx context.Context, propertyID, roomTypeID, date string, rateCents *int64) error {
	if err := s.checkTarget(ctx, propertyID, roomTypeID, date); err != nil {
		return err
	}
	if err := validator.ValidateRateCents(rateCents); err != nil {
		return err
	}
	ok, err := s.inventory.SetRateOverride(ctx, propertyID, roomTypeID, date, rateCents)
	if err != nil {
		return unexpected(err)
	}
	if !ok {
		return ledgerRowMissing(date)
	}
	s.availability.InvalidateProperty(ctx, propertyID)
	return nil
}

// SetBlocked giữ tay units phòng cho một ngày
func (s *InventoryService) SetBlocked(ctx context.Context, propertyID, roomTypeID, date string, units int) error {
	if err := s.checkTarget(ctx, propertyID, roomTypeID, date); err != nil {
		return err
	}
	if units < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Blocked units must not be negative.", nil)
	}
	ok, err := s.inventory.SetBlocked(ctx, propertyID, roomTypeID, date, units)
	if err != nil {
		return unexpected(err)
	}
	if !ok {
		rows, err := s.inventory.LoadNights(ctx, propertyID, roomTypeID, []string{date})
		if err != nil {
			return unexpected(err)
		}
		if len(rows) == 0 {
			return ledgerRowMissing(date)
		}
		return errors.NewAppError(errors.ErrCodeUnavailable,
			fmt.Sprintf("Cannot block %d units on %s: %d of %d already booked.", units, date, rows[0].BookedUnits, rows[0].TotalUnits), nil)
	}
	s.availability.InvalidateProperty(ctx, propertyID)
	return nil
}
