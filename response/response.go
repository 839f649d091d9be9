package response

import (
	"net/http"
	"time"

	"staydesk/constants"
	"staydesk/errors"

	"github.com/gin-gonic/gin"
)

// Meta đi kèm mọi response
type Meta struct {
	Timestamp string `json:"timestamp"`
	Detail    string `json:"detail,omitempty"`
}

// Response là envelope thành công
type Response struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// ErrorResponse là envelope lỗi
type ErrorResponse struct {
	Error string           `json:"error"`
	Code  errors.ErrorCode `json:"code"`
	Meta  Meta             `json:"meta"`
}

func newMeta() Meta {
	return Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// Success trả về 200 với data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data, Meta: newMeta()})
}

// Created trả về 201 với data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data, Meta: newMeta()})
}

// Error trả về lỗi với mã và HTTP status tương ứng
func Error(c *gin.Context, code errors.ErrorCode, message string) {
	c.JSON(errors.HTTPStatus(code), ErrorResponse{Error: message, Code: code, Meta: newMeta()})
}

// FromError chuyển error sang envelope; lỗi không phải AppError thành 500 với câu chung
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		Error(c, errors.ErrCodeUnexpected, constants.MsgUnexpected)
		return
	}
	meta := newMeta()
	if errors.Is(appErr, errors.ErrOutsideInventoryWindow) {
		meta.Detail = constants.MsgOutsideWindow
	}
	c.JSON(errors.HTTPStatus(appErr.Code), ErrorResponse{Error: appErr.Message, Code: appErr.Code, Meta: meta})
}

// BadRequest trả về lỗi INVALID_REQUEST
func BadRequest(c *gin.Context, message string) {
	Error(c, errors.ErrCodeInvalidRequest, message)
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	Error(c, errors.ErrCodeAuthFailed, "Authentication required.")
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	Error(c, errors.ErrCodeForbidden, "You do not have access to this resource.")
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context, message string) {
	Error(c, errors.ErrCodeNotFound, message)
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	Error(c, errors.ErrCodeUnexpected, constants.MsgUnexpected)
}
