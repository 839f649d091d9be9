package validator

import (
	"fmt"
	"regexp"
	"strings"

	"staydesk/constants"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/utils"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	v.SetTagName("validate")
	registerRules(v)
	return v
}

func registerRules(v *playground.Validate) {
	v.RegisterValidation("ymd", func(fl playground.FieldLevel) bool {
		return utils.IsDate(fl.Field().String())
	})
	v.RegisterValidation("channel", func(fl playground.FieldLevel) bool {
		return models.Channel(fl.Field().String()).Valid()
	})
}

// RegisterGinRules đăng ký rule tùy chỉnh cho binding của gin
func RegisterGinRules() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	registerRules(v)
	return nil
}

// Struct kiểm tra struct theo tag `validate`, lỗi trả về INVALID_REQUEST
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, Message(err), err)
	}
	return nil
}

// Message chuyển lỗi validator thành câu dễ đọc
func Message(err error) string {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body."
	}
	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "ymd":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id.", field)
	case "channel":
		return fmt.Sprintf("%s is not a supported channel.", field)
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s.", field, fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid.", field)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateStay kiểm tra ngày và checkIn < checkOut
func ValidateStay(checkIn, checkOut string) error {
	if !utils.IsDate(checkIn) || !utils.IsDate(checkOut) {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Dates must be in YYYY-MM-DD format.", nil)
	}
	if checkIn >= checkOut {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Check-out must be after check-in.", nil)
	}
	return nil
}

// ValidateGuests kiểm tra số khách
func ValidateGuests(adults, children int) error {
	if adults < 1 || adults > constants.MaxAdults {
		return errors.NewAppError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Adults must be between 1 and %d.", constants.MaxAdults), nil)
	}
	if children < 0 || children > constants.MaxChildren {
		return errors.NewAppError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Children must be between 0 and %d.", constants.MaxChildren), nil)
	}
	return nil
}

// ValidateOccupancy kiểm tra loại phòng chứa được số khách
func ValidateOccupancy(rt *models.RoomType, adults, children int) error {
	if !rt.Fits(adults, children) {
		return errors.NewAppError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s sleeps at most %d guests.", rt.Name, rt.MaxOccupancy), nil)
	}
	return nil
}

// ValidateRoomType kiểm tra dữ liệu loại phòng trước khi lưu
func ValidateRoomType(rt *models.RoomType) error {
	if strings.TrimSpace(rt.Name) == "" {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Room type name is required.", nil)
	}
	if rt.BaseRateCents < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Base rate must not be negative.", nil)
	}
	if rt.MaxOccupancy < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Max occupancy must be at least 1.", nil)
	}
	if rt.BaseOccupancy > rt.MaxOccupancy {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Base occupancy cannot exceed max occupancy.", nil)
	}
	return nil
}

// ValidateProperty kiểm tra dữ liệu property trước khi lưu
func ValidateProperty(p *models.Property) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Property name is required.", nil)
	}
	if p.Email != "" && !isValidEmail(p.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Property email is invalid.", nil)
	}
	if len(p.Currency) != 3 {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Currency must be a 3-letter code.", nil)
	}
	if p.DepositPercentage < 0 || p.DepositPercentage > 100 {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Deposit percentage must be between 0 and 100.", nil)
	}
	switch p.PaymentMode {
	case models.PaymentModeFullAtBooking, models.PaymentModeDepositAtBooking:
	default:
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Unknown payment mode.", nil)
	}
	return nil
}

// ValidateRateCents kiểm tra giá ghim
func ValidateRateCents(rate *int64) error {
	if rate != nil && *rate < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidRequest, "Rate must not be negative.", nil)
	}
	return nil
}

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
