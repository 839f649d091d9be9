package controllers

import (
	"staydesk/dto"
	"staydesk/response"
	"staydesk/services"

	"github.com/gin-gonic/gin"
)

// PropertyController là các endpoint public của property
type PropertyController struct {
	availability *services.AvailabilityService
	properties   *services.PropertyService
	reviews      *services.ReviewService
}

func NewPropertyController(ct *services.Container) PropertyController {
	return PropertyController{availability: ct.Availability, properties: ct.PropertySvc, reviews: ct.ReviewSvc}
}

// GetProperty godoc
// @Summary Thông tin property
// @Tags properties
// @Produce json
// @Param slug path string true "property slug"
// @Success 200 {object} response.Response
// @Router /v1/properties/{slug} [get]
func (p PropertyController) GetProperty(c *gin.Context) {
	property, err := p.availability.ResolveProperty(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewPropertyResponse(property))
}

func (p PropertyController) ListRoomTypes(c *gin.Context) {
	property, err := p.availability.ResolveProperty(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	list, err := p.properties.ListRoomTypes(c.Request.Context(), property.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewRoomTypeResponses(list))
}

// SearchAvailability godoc
// @Summary Tìm phòng trống
// @Tags properties
// @Accept json
// @Produce json
// @Param slug path string true "property slug"
// @Param body body dto.AvailabilityRequest true "stay"
// @Success 200 {object} response.Response
// @Router /v1/properties/{slug}/availability [post]
func (p PropertyController) SearchAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	property, err := p.availability.ResolveProperty(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	list, err := p.availability.SearchRoomTypes(c.Request.Context(), property, req.CheckIn, req.CheckOut, req.Adults, req.Children)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.AvailabilityResponse{
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Currency:  property.Currency,
		RoomTypes: list,
	})
}

// ListReviews godoc
// @Summary Review đã publish kèm điểm trung bình
// @Tags properties
// @Produce json
// @Param slug path string true "property slug"
// @Success 200 {object} response.Response
// @Router /v1/properties/{slug}/reviews [get]
func (p PropertyController) ListReviews(c *gin.Context) {
	property, err := p.availability.ResolveProperty(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out, err := p.reviews.Published(c.Request.Context(), property.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, out)
}
