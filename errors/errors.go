package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Request errors
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"

	// Booking errors
	ErrCodeUnavailable          ErrorCode = "UNAVAILABLE"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeCodeGenerationFailed ErrorCode = "CODE_GENERATION_FAILED"
	ErrCodePaymentNotAuthorized ErrorCode = "PAYMENT_NOT_AUTHORIZED"

	// Auth errors
	ErrCodeAuthFailed ErrorCode = "AUTH_FAILED"
	ErrCodeForbidden  ErrorCode = "FORBIDDEN"

	ErrCodeUnexpected ErrorCode = "UNEXPECTED"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra mã lỗi
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// HTTPStatus ánh xạ mã lỗi sang HTTP status
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnavailable, ErrCodeInvalidTransition:
		return http.StatusConflict
	case ErrCodeAuthFailed:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodePaymentNotAuthorized:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Is và As để các package khác không cần import thêm errors chuẩn
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

var (
	// Inventory errors
	ErrOutsideInventoryWindow = errors.New("outside inventory window")
	ErrRaceLost               = errors.New("inventory taken by a concurrent booking")
	ErrCodeSpaceExhausted     = errors.New("confirmation code retries exhausted")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrStatusChanged       = errors.New("reservation status changed concurrently")

	// Property errors
	ErrPropertyNotFound = errors.New("property not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrLedgerRowMissing = errors.New("inventory row not materialized")
	ErrRoomOvercommit   = errors.New("room removal would overcommit inventory")

	// Payment errors
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrIntentNotFound   = errors.New("payment intent not found")
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// Review errors
	ErrReviewTokenNotFound = errors.New("review token not found")
	ErrReviewTokenUsed     = errors.New("review token already used")
	ErrReviewTokenExpired  = errors.New("review token expired")
	ErrReviewNotFound      = errors.New("review not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
