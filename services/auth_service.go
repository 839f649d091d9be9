package services

import (
	"context"
	"strings"
	"time"

	"staydesk/constants"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/types"

	"golang.org/x/crypto/bcrypt"
)

// AuthService đăng nhập operator bằng email/mật khẩu
type AuthService struct {
	operators repository.OperatorRepository
	tokens    *TokenIssuer
	logger    logger.Logger
}

func NewAuthService(operators repository.OperatorRepository, tokens *TokenIssuer, log logger.Logger) *AuthService {
	return &AuthService{operators: operators, tokens: tokens, logger: log}
}

func authFailed() error {
	return errors.NewAppError(errors.ErrCodeAuthFailed, "Invalid email or password.", errors.ErrInvalidCredentials)
}

// Login trả về token và thời điểm hết hạn
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *models.Operator, error) {
	op, err := s.operators.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, nil, authFailed()
		}
		return "", time.Time{}, nil, unexpected(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, nil, authFailed()
	}

	info := types.OperatorInfo{OperatorID: op.ID, Role: op.Role}
	if op.PropertyID != nil {
		info.PropertyID = *op.PropertyID
	}
	token, expires, err := s.tokens.IssueOperatorToken(info)
	if err != nil {
		return "", time.Time{}, nil, unexpected(err)
	}
	s.logger.Info("operator %s logged in", op.Email)
	return token, expires, op, nil
}

// CreateOperator băm mật khẩu rồi lưu operator mới
func (s *AuthService) CreateOperator(ctx context.Context, name, email, password string, role int, propertyID *string) (*models.Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.operators.FindByEmail(ctx, email); err == nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "An operator with this email already exists.", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, unexpected(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, unexpected(err)
	}
	op := &models.Operator{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		PropertyID:   propertyID,
	}
	if err := s.operators.Create(ctx, op); err != nil {
		return nil, unexpected(err)
	}
	return op, nil
}

// BootstrapAdmin tạo admin đầu tiên khi chưa có operator nào
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	count, err := s.operators.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if _, err := s.CreateOperator(ctx, "Administrator", email, password, constants.RoleAdmin, nil); err != nil {
		return err
	}
	s.logger.Info("bootstrap admin %s created", email)
	return nil
}
