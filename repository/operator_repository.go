package repository

import (
	"context"
	"strings"

	"staydesk/models"

	"gorm.io/gorm"
)

type OperatorRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Operator, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, op *models.Operator) error
}

type GormOperatorRepository struct {
	db *gorm.DB
}

func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

func (r *GormOperatorRepository) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var op models.Operator
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&op).Error; err != nil {
		return nil, notFound(err)
	}
	return &op, nil
}

func (r *GormOperatorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Operator{}).Count(&count).Error
	return count, err
}

func (r *GormOperatorRepository) Create(ctx context.Context, op *models.Operator) error {
	op.Email = strings.ToLower(op.Email)
	return r.db.WithContext(ctx).Create(op).Error
}
