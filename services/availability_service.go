package services

import (
	"context"
	"fmt"
	"time"

	"staydesk/constants"
	"staydesk/dto"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/availability"
	"staydesk/services/logger"
	"staydesk/utils"
	"staydesk/validator"

	"github.com/redis/go-redis/v9"
)

const maxCalendarDays = 366

// StaySnapshot là ảnh chụp availability và giá của một stay
type StaySnapshot struct {
	Property   *models.Property
	RoomType   *models.RoomType
	CheckIn    string
	CheckOut   string
	Nights     []string
	Nightly    []availability.NightlyAvailability
	Result     availability.Result
	TotalCents int64
}

// RatePerNightCents là giá đêm đầu tiên, lưu vào ReservationRoom
func (s *StaySnapshot) RatePerNightCents() int64 {
	if len(s.Nightly) == 0 {
		return 0
	}
	return s.Nightly[0].RateCents
}

// Unavailable trả về lỗi UNAVAILABLE nếu stay không bán được, nil nếu còn phòng
func (s *StaySnapshot) Unavailable() error {
	if missing := availability.Unmaterialized(s.Nightly); len(missing) > 0 {
		return errors.NewAppError(errors.ErrCodeUnavailable, constants.MsgUnavailable,
			fmt.Errorf("%w: %s", errors.ErrOutsideInventoryWindow, missing[0]))
	}
	if s.Result.Available < 1 {
		return errors.NewAppError(errors.ErrCodeUnavailable, constants.MsgUnavailable, nil)
	}
	return nil
}

type AvailabilityService struct {
	properties repository.PropertyRepository
	inventory  repository.InventoryRepository
	rdb        *redis.Client
	ttl        time.Duration
	logger     logger.Logger
}

type AvailabilityServiceOptions struct {
	Properties repository.PropertyRepository
	Inventory  repository.InventoryRepository
	Redis      *redis.Client
	CacheTTL   time.Duration
	Logger     logger.Logger
}

func NewAvailabilityService(opts AvailabilityServiceOptions) *AvailabilityService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	return &AvailabilityService{
		properties: opts.Properties,
		inventory:  opts.Inventory,
		rdb:        opts.Redis,
		ttl:        opts.CacheTTL,
		logger:     opts.Logger,
	}
}

// ResolveProperty tìm property active theo slug
func (s *AvailabilityService) ResolveProperty(ctx context.Context, slug string) (*models.Property, error) {
	p, err := s.properties.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgPropertyNotFound, errors.ErrPropertyNotFound)
		}
		return nil, err
	}
	if p.Status != models.PropertyStatusActive {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgPropertyNotFound, errors.ErrPropertyNotFound)
	}
	return p, nil
}

// ResolveRoomType tìm loại phòng active thuộc property
func (s *AvailabilityService) ResolveRoomType(ctx context.Context, propertyID, roomTypeID string) (*models.RoomType, error) {
	rt, err := s.properties.FindRoomType(ctx, propertyID, roomTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgRoomTypeNotFound, errors.ErrRoomTypeNotFound)
		}
		return nil, err
	}
	if rt.Status != models.RoomTypeStatusActive {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgRoomTypeNotFound, errors.ErrRoomTypeNotFound)
	}
	return rt, nil
}

// CheckStay đọc ledger của stay trong một query và tính giá từng đêm
func (s *AvailabilityService) CheckStay(ctx context.Context, property *models.Property, roomTypeID, checkIn, checkOut string) (*StaySnapshot, error) {
	if err := validator.ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}
	rt, err := s.ResolveRoomType(ctx, property.ID, roomTypeID)
	if err != nil {
		return nil, err
	}
	nights, err := utils.NightList(checkIn, checkOut)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, err.Error(), err)
	}

	rows, err := s.inventory.LoadNights(ctx, property.ID, rt.ID, nights)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	plans, err := s.properties.ListActivePlans(ctx, property.ID, rt.ID)
	if err != nil {
		return nil, fmt.Errorf("load rate plans: %w", err)
	}

	nightly := availability.ComputeNightly(nights, rows, plans, rt.BaseRateCents)
	return &StaySnapshot{
		Property:   property,
		RoomType:   rt,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     nights,
		Nightly:    nightly,
		Result:     availability.ComputeResult(nightly),
		TotalCents: availability.TotalCents(nightly),
	}, nil
}

func availabilityCacheKey(propertyID string, generation int64, checkIn, checkOut string, guests int) string {
	return fmt.Sprintf("%s%s:%d:%s:%s:%d", constants.AvailabilityCachePrefix, propertyID, generation, checkIn, checkOut, guests)
}

// cacheGeneration đọc thế hệ cache của property. InvalidateProperty tăng thế hệ, nên kết quả
// tính trước một lần invalidate sẽ được ghi vào key cũ và không bao giờ được đọc lại.
func (s *AvailabilityService) cacheGeneration(ctx context.Context, propertyID string) (int64, error) {
	gen, err := s.rdb.Get(ctx, constants.AvailabilityGenerationPrefix+propertyID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// SearchRoomTypes trả về availability của mọi loại phòng active chứa được số khách
func (s *AvailabilityService) SearchRoomTypes(ctx context.Context, property *models.Property, checkIn, checkOut string, adults, children int) ([]dto.RoomTypeAvailability, error) {
	if err := validator.ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}
	if err := validator.ValidateGuests(adults, children); err != nil {
		return nil, err
	}

	key := ""
	if s.rdb != nil {
		gen, err := s.cacheGeneration(ctx, property.ID)
		if err != nil {
			s.logger.Warn("availability cache generation %s: %v", property.ID, err)
		} else {
			key = availabilityCacheKey(property.ID, gen, checkIn, checkOut, adults+children)
			var cached []dto.RoomTypeAvailability
			found, err := GetFromRedis(ctx, s.rdb, key, &cached)
			if err != nil {
				s.logger.Warn("availability cache read %s: %v", key, err)
			} else if found {
				return cached, nil
			}
		}
	}

	nights, err := utils.NightList(checkIn, checkOut)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, err.Error(), err)
	}
	roomTypes, err := s.properties.ListActiveRoomTypes(ctx, property.ID)
	if err != nil {
		return nil, fmt.Errorf("load room types: %w", err)
	}
	rows, err := s.inventory.LoadPropertyRange(ctx, property.ID, nights[0], nights[len(nights)-1])
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	plans, err := s.properties.ListActivePlansForProperty(ctx, property.ID)
	if err != nil {
		return nil, fmt.Errorf("load rate plans: %w", err)
	}

	rowsByType := make(map[string][]models.InventoryDay)
	for _, r := range rows {
		rowsByType[r.RoomTypeID] = append(rowsByType[r.RoomTypeID], r)
	}
	plansByType := make(map[string][]models.RatePlan)
	for _, p := range plans {
		plansByType[p.RoomTypeID] = append(plansByType[p.RoomTypeID], p)
	}

	results := make([]dto.RoomTypeAvailability, 0, len(roomTypes))
	for _, rt := range roomTypes {
		if !rt.Fits(adults, children) {
			continue
		}
		nightly := availability.ComputeNightly(nights, rowsByType[rt.ID], plansByType[rt.ID], rt.BaseRateCents)
		result := availability.ComputeResult(nightly)
		results = append(results, dto.RoomTypeAvailability{
			RoomTypeID:        rt.ID,
			Name:              rt.Name,
			Slug:              rt.Slug,
			Description:       rt.Description,
			MaxOccupancy:      rt.MaxOccupancy,
			Available:         result.Available,
			RatePerNightCents: nightly[0].RateCents,
			TotalCents:        availability.TotalCents(nightly),
			Nights:            result.Nights,
		})
	}

	if key != "" {
		if err := SetToRedis(ctx, s.rdb, key, results, s.ttl); err != nil {
			s.logger.Warn("availability cache write %s: %v", key, err)
		}
	}
	return results, nil
}

// Calendar trả về lịch [start, end] của mọi loại phòng cho dashboard
func (s *AvailabilityService) Calendar(ctx context.Context, propertyID, start, end string) ([]dto.CalendarRoomType, error) {
	if !utils.IsDate(start) || !utils.IsDate(end) || start > end {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "start and end must be dates with start <= end.", nil)
	}
	dates, err := utils.DateRange(start, end)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, err.Error(), err)
	}
	if len(dates) > maxCalendarDays {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Calendar range is limited to %d days.", maxCalendarDays), nil)
	}

	roomTypes, err := s.properties.ListActiveRoomTypes(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	rows, err := s.inventory.LoadPropertyRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}
	plans, err := s.properties.ListActivePlansForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	rowsByType := make(map[string][]models.InventoryDay)
	for _, r := range rows {
		rowsByType[r.RoomTypeID] = append(rowsByType[r.RoomTypeID], r)
	}
	plansByType := make(map[string][]models.RatePlan)
	for _, p := range plans {
		plansByType[p.RoomTypeID] = append(plansByType[p.RoomTypeID], p)
	}

	calendar := make([]dto.CalendarRoomType, 0, len(roomTypes))
	for _, rt := range roomTypes {
		calendar = append(calendar, dto.CalendarRoomType{
			RoomTypeID:    rt.ID,
			RoomTypeName:  rt.Name,
			BaseRateCents: rt.BaseRateCents,
			Dates:         availability.ComputeNightly(dates, rowsByType[rt.ID], plansByType[rt.ID], rt.BaseRateCents),
		})
	}
	return calendar, nil
}

// InvalidateProperty xóa cache availability của property; lỗi chỉ log
func (s *AvailabilityService) InvalidateProperty(ctx context.Context, propertyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, constants.AvailabilityGenerationPrefix+propertyID).Err(); err != nil {
		s.logger.Warn("bump availability generation %s: %v", propertyID, err)
	}
	// dọn các entry của thế hệ cũ
	prefix := constants.AvailabilityCachePrefix + propertyID + ":"
	if err := DeleteByPrefix(ctx, s.rdb, prefix); err != nil {
		s.logger.Warn("invalidate availability cache %s: %v", propertyID, err)
	}
}
