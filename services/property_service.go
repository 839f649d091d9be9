package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"staydesk/constants"
	"staydesk/dto"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/validator"

	"github.com/fiam/gounidecode/unidecode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const apiKeyPrefix = "sdk_"

var slugDashes = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify bỏ dấu (unidecode) rồi nối các từ bằng '-'
func Slugify(input string) string {
	s := strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug thêm hậu tố -2, -3... cho tới khi exists trả về false
func uniqueSlug(ctx context.Context, name string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "property"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func newAPIKey() (string, string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	key := apiKeyPrefix + hex.EncodeToString(b)
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return key, string(hash), nil
}

// PropertyService quản lý property, loại phòng, phòng và API key của partner
type PropertyService struct {
	db         *gorm.DB
	properties repository.PropertyRepository
	inventory  *InventoryService
	logger     logger.Logger
}

func NewPropertyService(db *gorm.DB, properties repository.PropertyRepository, inventory *InventoryService, log logger.Logger) *PropertyService {
	return &PropertyService{db: db, properties: properties, inventory: inventory, logger: log}
}

// Get trả về property theo id
func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	p, err := s.properties.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgPropertyNotFound, errors.ErrPropertyNotFound)
		}
		return nil, unexpected(err)
	}
	return p, nil
}

// CreateProperty lưu property mới, API key thô chỉ trả về một lần
func (s *PropertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest) (*models.Property, string, error) {
	p := &models.Property{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		Country:           req.Country,
		Email:             strings.ToLower(req.Email),
		Currency:          strings.ToUpper(req.Currency),
		Timezone:          req.Timezone,
		CheckInTime:       req.CheckInTime,
		CheckOutTime:      req.CheckOutTime,
		DepositPercentage: 30,
		PaymentMode:       models.PaymentMode(req.PaymentMode),
		Status:            models.PropertyStatusActive,
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.PaymentMode == "" {
		p.PaymentMode = models.PaymentModeFullAtBooking
	}
	if req.DepositPercentage != nil {
		p.DepositPercentage = *req.DepositPercentage
	}
	if err := validator.ValidateProperty(p); err != nil {
		return nil, "", err
	}

	slug, err := uniqueSlug(ctx, p.Name, s.properties.SlugExists)
	if err != nil {
		return nil, "", unexpected(err)
	}
	p.Slug = slug

	key, hash, err := newAPIKey()
	if err != nil {
		return nil, "", unexpected(err)
	}
	p.APIKeyHash = hash

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, "", unexpected(err)
	}
	s.logger.Info("property %s created", p.Slug)
	return p, key, nil
}

// RotateAPIKey thay API key, key cũ hết hiệu lực ngay
func (s *PropertyService) RotateAPIKey(ctx context.Context, propertyID string) (string, error) {
	if _, err := s.Get(ctx, propertyID); err != nil {
		return "", err
	}
	key, hash, err := newAPIKey()
	if err != nil {
		return "", unexpected(err)
	}
	if err := s.properties.UpdateAPIKeyHash(ctx, propertyID, hash); err != nil {
		return "", unexpected(err)
	}
	return key, nil
}

// AuthenticatePartner so API key với hash của property
func (s *PropertyService) AuthenticatePartner(ctx context.Context, slug, apiKey string) (*models.Property, error) {
	fail := errors.NewAppError(errors.ErrCodeAuthFailed, "Invalid API key.", errors.ErrInvalidCredentials)
	if apiKey == "" || slug == "" {
		return nil, fail
	}
	p, err := s.properties.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail
		}
		return nil, unexpected(err)
	}
	if p.APIKeyHash == "" || p.Status != models.PropertyStatusActive {
		return nil, fail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.APIKeyHash), []byte(apiKey)); err != nil {
		return nil, fail
	}
	return p, nil
}

// CreateRoomType thêm loại phòng; ledger được tạo khi thêm phòng
func (s *PropertyService) CreateRoomType(ctx context.Context, propertyID string, req dto.CreateRoomTypeRequest) (*models.RoomType, error) {
	if _, err := s.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	rt := &models.RoomType{
		PropertyID:    propertyID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		BaseOccupancy: req.BaseOccupancy,
		MaxOccupancy:  req.MaxOccupancy,
		BaseRateCents: req.BaseRateCents,
		SortOrder:     req.SortOrder,
		Status:        models.RoomTypeStatusActive,
	}
	if rt.BaseOccupancy == 0 {
		rt.BaseOccupancy = rt.MaxOccupancy
	}
	if err := validator.ValidateRoomType(rt); err != nil {
		return nil, err
	}
	slug, err := uniqueSlug(ctx, rt.Name, func(ctx context.Context, slug string) (bool, error) {
		return s.properties.RoomTypeSlugExists(ctx, propertyID, slug)
	})
	if err != nil {
		return nil, unexpected(err)
	}
	rt.Slug = slug
	if err := s.properties.CreateRoomType(ctx, rt); err != nil {
		return nil, unexpected(err)
	}
	return rt, nil
}

// CreateRatePlan thêm giá theo mùa cho loại phòng
func (s *PropertyService) CreateRatePlan(ctx context.Context, propertyID, roomTypeID string, req dto.CreateRatePlanRequest) (*models.RatePlan, error) {
	if _, err := s.findRoomType(ctx, propertyID, roomTypeID); err != nil {
		return nil, err
	}
	if req.DateStart > req.DateEnd {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "dateStart must not be after dateEnd.", nil)
	}
	start, end := req.DateStart, req.DateEnd
	plan := &models.RatePlan{
		PropertyID: propertyID,
		RoomTypeID: roomTypeID,
		Name:       strings.TrimSpace(req.Name),
		Type:       models.RatePlanSeasonal,
		DateStart:  &start,
		DateEnd:    &end,
		MinNights:  1,
		RateCents:  req.RateCents,
		Priority:   req.Priority,
		Status:     models.RatePlanStatusActive,
	}
	if err := s.properties.CreateRatePlan(ctx, plan); err != nil {
		return nil, unexpected(err)
	}
	s.inventory.availability.InvalidateProperty(ctx, propertyID)
	return plan, nil
}

func (s *PropertyService) findRoomType(ctx context.Context, propertyID, roomTypeID string) (*models.RoomType, error) {
	rt, err := s.properties.FindRoomType(ctx, propertyID, roomTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgRoomTypeNotFound, errors.ErrRoomTypeNotFound)
		}
		return nil, unexpected(err)
	}
	return rt, nil
}

// AddRoom thêm phòng vật lý rồi backfill để total_units theo số phòng
func (s *PropertyService) AddRoom(ctx context.Context, propertyID string, req dto.CreateRoomRequest) (*models.Room, error) {
	rt, err := s.findRoomType(ctx, propertyID, req.RoomTypeID)
	if err != nil {
		return nil, err
	}
	room := &models.Room{
		PropertyID: propertyID,
		RoomTypeID: rt.ID,
		Name:       strings.TrimSpace(req.Name),
		Floor:      req.Floor,
		Status:     models.RoomStatusAvailable,
	}
	if err := s.properties.CreateRoom(ctx, room); err != nil {
		return nil, unexpected(err)
	}
	if err := s.inventory.Backfill(ctx, propertyID, rt.ID); err != nil {
		s.logger.Error("backfill after adding room %s: %v", room.ID, err)
		return nil, unexpected(err)
	}
	return room, nil
}

// RemoveRoom xóa phòng và hạ total_units trong cùng một transaction. Từ chối nếu
// số phòng còn lại không đủ cho booked + blocked của một ngày trong cửa sổ.
func (s *PropertyService) RemoveRoom(ctx context.Context, propertyID, roomID string) error {
	room, err := s.properties.FindRoom(ctx, propertyID, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errors.NewAppError(errors.ErrCodeNotFound, "Room not found.", err)
		}
		return unexpected(err)
	}

	var conflict string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		properties := s.properties.WithTx(tx)
		if err := properties.DeleteRoom(ctx, room); err != nil {
			return err
		}
		count, err := properties.CountRooms(ctx, propertyID, room.RoomTypeID)
		if err != nil {
			return err
		}
		conflict, err = s.inventory.inventory.WithTx(tx).ShrinkTotal(ctx, propertyID, room.RoomTypeID, s.inventory.WindowStart(), int(count))
		if err != nil {
			return err
		}
		if conflict != "" {
			return errors.ErrRoomOvercommit
		}
		return nil
	})
	if conflict != "" {
		return errors.NewAppError(errors.ErrCodeUnavailable,
			fmt.Sprintf("Cannot remove room: %s would have more bookings than rooms.", conflict), errors.ErrRoomOvercommit)
	}
	if err != nil {
		return unexpected(err)
	}

	// tạo các dòng còn thiếu trong cửa sổ với số phòng mới
	if err := s.inventory.Backfill(ctx, propertyID, room.RoomTypeID); err != nil {
		s.logger.Error("backfill after removing room %s: %v", room.ID, err)
		return unexpected(err)
	}
	return nil
}

// ListRoomTypes trả về loại phòng active của property theo slug
func (s *PropertyService) ListRoomTypes(ctx context.Context, propertyID string) ([]models.RoomType, error) {
	list, err := s.properties.ListActiveRoomTypes(ctx, propertyID)
	if err != nil {
		return nil, unexpected(err)
	}
	return list, nil
}
