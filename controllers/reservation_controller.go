package controllers

import (
	"staydesk/dto"
	"staydesk/middleware"
	"staydesk/models"
	"staydesk/response"
	"staydesk/services"

	"github.com/gin-gonic/gin"
)

// ReservationController là partner API, xác thực bằng API key của property
type ReservationController struct {
	bookings     *services.BookingService
	reservations *services.ReservationService
	properties   *services.PropertyService
}

func NewReservationController(ct *services.Container) ReservationController {
	return ReservationController{
		bookings:     ct.Bookings,
		reservations: ct.ReservationSvc,
		properties:   ct.PropertySvc,
	}
}

func (r ReservationController) authorize(c *gin.Context, slug string) (*models.Property, bool) {
	property, err := r.properties.AuthenticatePartner(c.Request.Context(), slug, middleware.PartnerAPIKey(c))
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return property, true
}

// CreateReservation godoc
// @Summary Tạo reservation (partner)
// @Tags reservations
// @Accept json
// @Produce json
// @Param body body dto.CreateReservationRequest true "reservation"
// @Success 201 {object} response.Response
// @Router /v1/reservations [post]
func (r ReservationController) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	property, ok := r.authorize(c, req.PropertySlug)
	if !ok {
		return
	}

	result, err := r.bookings.CreateBooking(c.Request.Context(), services.StayRequest{
		Property:   property,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Adults:     req.Adults,
		Children:   req.Children,
		Channel:    req.Channel,
		Guest: services.GuestDetails{
			FirstName: req.Guest.FirstName,
			LastName:  req.Guest.LastName,
			Email:     req.Guest.Email,
			Phone:     req.Guest.Phone,
		},
		SpecialRequests: req.SpecialRequests,
	}, services.PartnerBooking{})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, dto.ReservationCreatedResponse{
		ConfirmationCode: result.ConfirmationCode,
		ReservationID:    result.Reservation.ID,
		TotalCents:       result.TotalCents,
		Currency:         result.Currency,
		Nights:           result.Nights,
	})
}

// GetReservation trả về chi tiết reservation, xác thực với property sở hữu nó
func (r ReservationController) GetReservation(c *gin.Context) {
	res, err := r.reservations.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if _, ok := r.authorize(c, res.Property.Slug); !ok {
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

// CancelReservation hủy reservation; body {reason} không bắt buộc
func (r ReservationController) CancelReservation(c *gin.Context) {
	var req dto.CancelReservationRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	res, err := r.reservations.Get(c.Request.Context(), "", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if _, ok := r.authorize(c, res.Property.Slug); !ok {
		return
	}
	cancelled, err := r.reservations.Cancel(c.Request.Context(), res.PropertyID, res.ID, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(cancelled))
}
