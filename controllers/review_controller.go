package controllers

import (
	"staydesk/dto"
	"staydesk/response"
	"staydesk/services"

	"github.com/gin-gonic/gin"
)

// ReviewController là trang review khách mở từ link trong email
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(ct *services.Container) ReviewController {
	return ReviewController{reviews: ct.ReviewSvc}
}

// GetForm godoc
// @Summary Thông tin stay cho form review
// @Tags reviews
// @Produce json
// @Param token path string true "review token"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /review/{token} [get]
func (r ReviewController) GetForm(c *gin.Context) {
	row, err := r.reviews.OpenToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	res := row.Reservation
	out := dto.ReviewFormResponse{
		FirstName: res.Guest.FirstName,
		CheckIn:   res.CheckIn,
		CheckOut:  res.CheckOut,
		ExpiresAt: row.ExpiresAt,
	}
	if res.Property != nil {
		out.PropertyName = res.Property.Name
	}
	response.Success(c, out)
}

// Submit godoc
// @Summary Gửi review bằng link một lần
// @Tags reviews
// @Accept json
// @Produce json
// @Param token path string true "review token"
// @Param body body dto.SubmitReviewRequest true "review"
// @Success 201 {object} response.Response
// @Router /review/{token} [post]
func (r ReviewController) Submit(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := r.reviews.Submit(c.Request.Context(), c.Param("token"), services.ReviewInput{
		Rating: req.Rating,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, gin.H{"id": review.ID, "status": review.Status})
}
