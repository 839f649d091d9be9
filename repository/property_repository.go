package repository

import (
	"context"

	"staydesk/models"

	"gorm.io/gorm"
)

type PropertyRepository interface {
	WithTx(tx *gorm.DB) PropertyRepository
	FindByID(ctx context.Context, id string) (*models.Property, error)
	FindBySlug(ctx context.Context, slug string) (*models.Property, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, p *models.Property) error
	UpdateAPIKeyHash(ctx context.Context, propertyID, hash string) error

	FindRoomType(ctx context.Context, propertyID, roomTypeID string) (*models.RoomType, error)
	ListActiveRoomTypes(ctx context.Context, propertyID string) ([]models.RoomType, error)
	ListAllRoomTypes(ctx context.Context) ([]models.RoomType, error)
	CreateRoomType(ctx context.Context, rt *models.RoomType) error
	RoomTypeSlugExists(ctx context.Context, propertyID, slug string) (bool, error)

	CreateRoom(ctx context.Context, room *models.Room) error
	FindRoom(ctx context.Context, propertyID, roomID string) (*models.Room, error)
	DeleteRoom(ctx context.Context, room *models.Room) error
	CountRooms(ctx context.Context, propertyID, roomTypeID string) (int64, error)

	ListActivePlans(ctx context.Context, propertyID, roomTypeID string) ([]models.RatePlan, error)
	ListActivePlansForProperty(ctx context.Context, propertyID string) ([]models.RatePlan, error)
	CreateRatePlan(ctx context.Context, plan *models.RatePlan) error
}

type GormPropertyRepository struct {
	db *gorm.DB
}

func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) WithTx(tx *gorm.DB) PropertyRepository {
	return &GormPropertyRepository{db: tx}
}

func (r *GormPropertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *GormPropertyRepository) FindBySlug(ctx context.Context, slug string) (*models.Property, error) {
	var p models.Property
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *GormPropertyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Property{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *GormPropertyRepository) Create(ctx context.Context, p *models.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormPropertyRepository) UpdateAPIKeyHash(ctx context.Context, propertyID, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ?", propertyID).
		Update("api_key_hash", hash).Error
}

func (r *GormPropertyRepository) FindRoomType(ctx context.Context, propertyID, roomTypeID string) (*models.RoomType, error) {
	var rt models.RoomType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND property_id = ?", roomTypeID, propertyID).
		First(&rt).Error; err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

func (r *GormPropertyRepository) ListActiveRoomTypes(ctx context.Context, propertyID string) ([]models.RoomType, error) {
	var list []models.RoomType
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, models.RoomTypeStatusActive).
		Order("sort_order ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *GormPropertyRepository) ListAllRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var list []models.RoomType
	err := r.db.WithContext(ctx).Order("property_id ASC, sort_order ASC").Find(&list).Error
	return list, err
}

func (r *GormPropertyRepository) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *GormPropertyRepository) RoomTypeSlugExists(ctx context.Context, propertyID, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RoomType{}).
		Where("property_id = ? AND slug = ?", propertyID, slug).
		Count(&count).Error
	return count > 0, err
}

func (r *GormPropertyRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Omit("RoomType").Create(room).Error
}

func (r *GormPropertyRepository) FindRoom(ctx context.Context, propertyID, roomID string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).
		Where("id = ? AND property_id = ?", roomID, propertyID).
		First(&room).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (r *GormPropertyRepository) DeleteRoom(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, "id = ?", room.ID).Error
}

func (r *GormPropertyRepository) CountRooms(ctx context.Context, propertyID, roomTypeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("property_id = ? AND room_type_id = ?", propertyID, roomTypeID).
		Count(&count).Error
	return count, err
}

// ListActivePlans trả về rate plan active của một loại phòng
func (r *GormPropertyRepository) ListActivePlans(ctx context.Context, propertyID, roomTypeID string) ([]models.RatePlan, error) {
	var plans []models.RatePlan
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND room_type_id = ? AND status = ?", propertyID, roomTypeID, models.RatePlanStatusActive).
		Find(&plans).Error
	return plans, err
}

func (r *GormPropertyRepository) ListActivePlansForProperty(ctx context.Context, propertyID string) ([]models.RatePlan, error) {
	var plans []models.RatePlan
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, models.RatePlanStatusActive).
		Find(&plans).Error
	return plans, err
}

func (r *GormPropertyRepository) CreateRatePlan(ctx context.Context, plan *models.RatePlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}
