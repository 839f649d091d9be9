package controllers

import (
	"context"

	"staydesk/constants"
	"staydesk/dto"
	"staydesk/middleware"
	"staydesk/models"
	"staydesk/response"
	"staydesk/services"

	"github.com/gin-gonic/gin"
)

// OperatorController là các thao tác trên dashboard của nhân viên
type OperatorController struct {
	availability *services.AvailabilityService
	inventory    *services.InventoryService
	properties   *services.PropertyService
	reservations *services.ReservationService
	reviews      *services.ReviewService
	auth         *services.AuthService
}

func NewOperatorController(ct *services.Container) OperatorController {
	return OperatorController{
		availability: ct.Availability,
		inventory:    ct.InventorySvc,
		properties:   ct.PropertySvc,
		reservations: ct.ReservationSvc,
		reviews:      ct.ReviewSvc,
		auth:         ct.Auth,
	}
}

// scope trả về propertyID của operator; rỗng với admin toàn hệ thống
func scope(c *gin.Context) string {
	info, _ := middleware.Operator(c)
	return info.PropertyID
}

// SetRate godoc
// @Summary Ghim giá một đêm (null để xóa)
// @Tags operator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param propertyId path string true "property"
// @Param roomTypeId path string true "room type"
// @Param date path string true "YYYY-MM-DD"
// @Param body body dto.RateOverrideRequest true "rate"
// @Success 200 {object} response.Response
// @Router /v1/operator/properties/{propertyId}/room-types/{roomTypeId}/rates/{date} [put]
func (o OperatorController) SetRate(c *gin.Context) {
	var req dto.RateOverrideRequest
	if !bindJSON(c, &req) {
		return
	}
	date := c.Param("date")
	if err := o.inventory.SetRateOverride(c.Request.Context(), c.Param("propertyId"), c.Param("roomTypeId"), date, req.RateCents); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"date": date, "rateCents": req.RateCents})
}

func (o OperatorController) SetBlock(c *gin.Context) {
	var req dto.BlockRequest
	if !bindJSON(c, &req) {
		return
	}
	date := c.Param("date")
	if err := o.inventory.SetBlocked(c.Request.Context(), c.Param("propertyId"), c.Param("roomTypeId"), date, req.Units); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"date": date, "blockedUnits": req.Units})
}

// Calendar godoc
// @Summary Lịch availability và giá theo loại phòng
// @Tags operator
// @Produce json
// @Security BearerAuth
// @Param propertyId path string true "property"
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /v1/operator/properties/{propertyId}/calendar [get]
func (o OperatorController) Calendar(c *gin.Context) {
	var q dto.CalendarQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := o.availability.Calendar(c.Request.Context(), c.Param("propertyId"), q.Start, q.End)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, list)
}

func (o OperatorController) GetReservation(c *gin.Context) {
	res, err := o.reservations.Get(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

type transitionFunc func(ctx context.Context, propertyID, id string) (*models.Reservation, error)

func (o OperatorController) transition(c *gin.Context, fn transitionFunc) {
	res, err := fn(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

// Confirm godoc
// @Summary Xác nhận reservation đang pending
// @Tags operator
// @Produce json
// @Security BearerAuth
// @Param id path string true "reservation"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/operator/reservations/{id}/confirm [post]
func (o OperatorController) Confirm(c *gin.Context) { o.transition(c, o.reservations.Confirm) }

func (o OperatorController) CheckIn(c *gin.Context) { o.transition(c, o.reservations.CheckIn) }

func (o OperatorController) CheckOut(c *gin.Context) { o.transition(c, o.reservations.CheckOut) }

func (o OperatorController) NoShow(c *gin.Context) { o.transition(c, o.reservations.MarkNoShow) }

// Cancel hủy reservation và hoàn tiền nếu đã thu
func (o OperatorController) Cancel(c *gin.Context) {
	var req dto.CancelReservationRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	res, err := o.reservations.Cancel(c.Request.Context(), scope(c), c.Param("id"), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

func (o OperatorController) Capture(c *gin.Context) {
	p, err := o.reservations.CapturePayment(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.CaptureResponse{PaymentID: p.ID, Status: string(p.Status), CapturedCents: p.AmountCents})
}

func (o OperatorController) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	p, err := o.reservations.RefundPayment(c.Request.Context(), scope(c), c.Param("id"), req.AmountCents)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewPaymentResponse(p))
}

// CreateProperty godoc
// @Summary Tạo property, API key chỉ trả về một lần
// @Tags operator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePropertyRequest true "property"
// @Success 201 {object} response.Response
// @Router /v1/operator/properties [post]
func (o OperatorController) CreateProperty(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	p, key, err := o.properties.CreateProperty(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.PropertyCreatedResponse{ID: p.ID, Slug: p.Slug, APIKey: key})
}

func (o OperatorController) RotateAPIKey(c *gin.Context) {
	key, err := o.properties.RotateAPIKey(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.APIKeyResponse{APIKey: key})
}

func (o OperatorController) ListRoomTypes(c *gin.Context) {
	list, err := o.properties.ListRoomTypes(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewRoomTypeResponses(list))
}

func (o OperatorController) CreateRoomType(c *gin.Context) {
	var req dto.CreateRoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	rt, err := o.properties.CreateRoomType(c.Request.Context(), c.Param("propertyId"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.NewRoomTypeResponses([]models.RoomType{*rt})[0])
}

func (o OperatorController) CreateRatePlan(c *gin.Context) {
	var req dto.CreateRatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := o.properties.CreateRatePlan(c.Request.Context(), c.Param("propertyId"), c.Param("roomTypeId"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, plan)
}

// AddRoom thêm phòng và mở rộng ledger của loại phòng
func (o OperatorController) AddRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := o.properties.AddRoom(c.Request.Context(), c.Param("propertyId"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (o OperatorController) RemoveRoom(c *gin.Context) {
	if err := o.properties.RemoveRoom(c.Request.Context(), c.Param("propertyId"), c.Param("roomId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("roomId")})
}

func (o OperatorController) Backfill(c *gin.Context) {
	ctx := c.Request.Context()
	propertyID := c.Param("propertyId")
	if _, err := o.properties.Get(ctx, propertyID); err != nil {
		response.FromError(c, err)
		return
	}
	n, err := o.inventory.BackfillProperty(ctx, propertyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.BackfillResponse{RoomTypes: n, Days: o.inventory.WindowDays(), From: o.inventory.WindowStart()})
}

// CreateOperator tạo tài khoản nhân viên; manager chỉ tạo được cho property của mình
func (o OperatorController) CreateOperator(c *gin.Context) {
	var req dto.CreateOperatorRequest
	if !bindJSON(c, &req) {
		return
	}
	info, _ := middleware.Operator(c)
	if info.PropertyID != "" {
		if req.Role == constants.RoleAdmin || req.PropertyID == nil || !info.CanAccess(*req.PropertyID) {
			response.Forbidden(c)
			return
		}
	}
	op, err := o.auth.CreateOperator(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, req.PropertyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.OperatorResponse{ID: op.ID, Name: op.Name, Email: op.Email, Role: op.Role, PropertyID: op.PropertyID})
}

// ListReviews godoc
// @Summary Review của property để kiểm duyệt
// @Tags operator
// @Produce json
// @Security BearerAuth
// @Param propertyId path string true "property"
// @Param status query string false "pending | published | hidden"
// @Success 200 {object} response.Response
// @Router /v1/operator/properties/{propertyId}/reviews [get]
func (o OperatorController) ListReviews(c *gin.Context) {
	var q dto.ReviewListQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := o.reviews.List(c.Request.Context(), c.Param("propertyId"), models.ReviewStatus(q.Status))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponses(list))
}

type reviewFunc func(ctx context.Context, propertyID, id string) (*models.Review, error)

func (o OperatorController) moderate(c *gin.Context, fn reviewFunc) {
	review, err := fn(c.Request.Context(), c.Param("propertyId"), c.Param("reviewId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(review))
}

func (o OperatorController) PublishReview(c *gin.Context) { o.moderate(c, o.reviews.Publish) }

func (o OperatorController) HideReview(c *gin.Context) { o.moderate(c, o.reviews.Hide) }

// RespondReview godoc
// @Summary Phản hồi công khai cho một review
// @Tags operator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param propertyId path string true "property"
// @Param reviewId path string true "review"
// @Param body body dto.ReviewReplyRequest true "response"
// @Success 200 {object} response.Response
// @Router /v1/operator/properties/{propertyId}/reviews/{reviewId}/response [put]
func (o OperatorController) RespondReview(c *gin.Context) {
	var req dto.ReviewReplyRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := o.reviews.Respond(c.Request.Context(), c.Param("propertyId"), c.Param("reviewId"), req.Response)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(review))
}
