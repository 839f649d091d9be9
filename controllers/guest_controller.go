package controllers

import (
	"fmt"
	"net/url"
	"strconv"

	"staydesk/dto"
	"staydesk/middleware"
	"staydesk/models"
	"staydesk/response"
	"staydesk/services"
	"staydesk/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	defaultAdults   = 2
	defaultChildren = 0
)

// GuestController là luồng đặt phòng trực tiếp của guest
type GuestController struct {
	availability *services.AvailabilityService
	facade       *services.BookingFacade
	reservations *services.ReservationService
	rdb          *redis.Client
	logger       logger.Logger
}

func NewGuestController(ct *services.Container, log logger.Logger) GuestController {
	return GuestController{
		availability: ct.Availability,
		facade:       ct.Facade,
		reservations: ct.ReservationSvc,
		rdb:          ct.Redis,
		logger:       log,
	}
}

func stepURL(slug, step string, s *dto.GuestSearch, code string) string {
	q := url.Values{}
	q.Set("step", step)
	if s != nil {
		if s.CheckIn != "" {
			q.Set("check_in", s.CheckIn)
		}
		if s.CheckOut != "" {
			q.Set("check_out", s.CheckOut)
		}
		q.Set("adults", strconv.Itoa(s.AdultsOr(defaultAdults)))
		q.Set("children", strconv.Itoa(s.ChildrenOr(defaultChildren)))
		if s.RoomTypeID != "" {
			q.Set("room_type_id", s.RoomTypeID)
		}
	}
	if code != "" {
		q.Set("code", code)
	}
	return fmt.Sprintf("/book/%s?%s", slug, q.Encode())
}

// GetStep godoc
// @Summary Bước của guest flow
// @Tags booking
// @Produce json
// @Param slug path string true "property slug"
// @Param step query string false "search|select|details|confirm|complete"
// @Success 200 {object} response.Response
// @Router /book/{slug} [get]
func (g GuestController) GetStep(c *gin.Context) {
	var q dto.GuestStepQuery
	if !bindQuery(c, &q) {
		return
	}
	ctx := c.Request.Context()
	slug := c.Param("slug")
	property, err := g.availability.ResolveProperty(ctx, slug)
	if err != nil {
		response.FromError(c, err)
		return
	}

	sessionID := middleware.SessionID(c)
	last, err := services.GetLastSearch(ctx, g.rdb, sessionID, slug)
	if err != nil {
		g.logger.Warn("load last search %s: %v", sessionID, err)
	}
	search := services.MergeSearch(last, &q.GuestSearch)
	if err := services.SaveLastSearch(ctx, g.rdb, sessionID, slug, search); err != nil {
		g.logger.Warn("save last search %s: %v", sessionID, err)
	}

	step := q.Step
	if step == "" {
		step = "search"
	}
	out := dto.GuestStepResponse{Step: step, Property: dto.NewPropertyResponse(property), Search: search}

	switch step {
	case "search":
		if search.CheckIn != "" && search.CheckOut != "" {
			out.Next = stepURL(slug, "select", search, "")
		}
	case "select":
		if search.CheckIn == "" || search.CheckOut == "" {
			out.Step = "search"
			out.Message = "Please choose your check-in and check-out dates."
			break
		}
		list, err := g.availability.SearchRoomTypes(ctx, property, search.CheckIn, search.CheckOut,
			search.AdultsOr(defaultAdults), search.ChildrenOr(defaultChildren))
		if err != nil {
			response.FromError(c, err)
			return
		}
		out.Data = list
	case "details", "confirm":
		if search.RoomTypeID == "" {
			out.Step = "select"
			out.Message = "Please choose a room."
			break
		}
		selection, ok := g.selection(c, property, search, step == "confirm")
		if !ok {
			return
		}
		out.Data = selection
		if step == "details" {
			out.Next = stepURL(slug, "confirm", search, "")
		}
	case "complete":
		if q.Code == "" {
			response.BadRequest(c, "Missing confirmation code.")
			return
		}
		res, err := g.reservations.GetByCode(ctx, property.ID, q.Code)
		if err != nil {
			response.FromError(c, err)
			return
		}
		out.Search = nil
		out.Data = dto.NewReservationResponse(res)
	}
	response.Success(c, out)
}

func (g GuestController) selection(c *gin.Context, property *models.Property, search *dto.GuestSearch, priced bool) (*dto.GuestSelection, bool) {
	ctx := c.Request.Context()
	if !priced || search.CheckIn == "" || search.CheckOut == "" {
		rt, err := g.availability.ResolveRoomType(ctx, property.ID, search.RoomTypeID)
		if err != nil {
			response.FromError(c, err)
			return nil, false
		}
		return &dto.GuestSelection{RoomType: dto.NewRoomTypeResponses([]models.RoomType{*rt})[0]}, true
	}
	stay, err := g.availability.CheckStay(ctx, property, search.RoomTypeID, search.CheckIn, search.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	available := stay.Unavailable() == nil
	return &dto.GuestSelection{
		RoomType:   dto.NewRoomTypeResponses([]models.RoomType{*stay.RoomType})[0],
		Nights:     stay.Result.Nights,
		TotalCents: stay.TotalCents,
		Currency:   property.Currency,
		Available:  &available,
	}, true
}

// Checkout godoc
// @Summary Tạo payment intent cho guest
// @Tags booking
// @Accept json
// @Produce json
// @Param slug path string true "property slug"
// @Param body body dto.CheckoutRequest true "stay"
// @Success 200 {object} response.Response
// @Router /book/{slug}/checkout [post]
func (g GuestController) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := g.facade.PrepareCheckout(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, out)
}

// CreateReservation godoc
// @Summary Hoàn tất đặt phòng của guest sau khi thanh toán
// @Tags booking
// @Accept json
// @Produce json
// @Param slug path string true "property slug"
// @Param body body dto.GuestReservationRequest true "booking"
// @Success 201 {object} response.Response
// @Router /book/{slug}/reservations [post]
func (g GuestController) CreateReservation(c *gin.Context) {
	var req dto.GuestReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	slug := c.Param("slug")
	result, err := g.facade.CompleteGuestBooking(ctx, slug, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := services.ClearLastSearch(ctx, g.rdb, middleware.SessionID(c), slug); err != nil {
		g.logger.Warn("clear last search: %v", err)
	}
	response.Created(c, dto.GuestReservationResponse{
		ConfirmationCode: result.ConfirmationCode,
		Next:             stepURL(slug, "complete", nil, result.ConfirmationCode),
	})
}
