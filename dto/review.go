package dto

import (
	"time"

	"staydesk/models"
)

// SubmitReviewRequest là body khách gửi qua link review
type SubmitReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Title  string `json:"title" binding:"max=200"`
	Body   string `json:"body" binding:"required,max=5000"`
}

type ReviewReplyRequest struct {
	Response string `json:"response" binding:"required,max=5000"`
}

type ReviewListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending published hidden"`
}

// ReviewFormResponse là thông tin hiển thị trên trang review của khách
type ReviewFormResponse struct {
	PropertyName string    `json:"propertyName"`
	FirstName    string    `json:"firstName"`
	CheckIn      string    `json:"checkIn"`
	CheckOut     string    `json:"checkOut"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type ReviewGuest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ReviewResponse struct {
	ID                  string      `json:"id"`
	Rating              int         `json:"rating"`
	Title               string      `json:"title,omitempty"`
	Body                string      `json:"body"`
	StayDateStart       string      `json:"stayDateStart"`
	StayDateEnd         string      `json:"stayDateEnd"`
	Status              string      `json:"status,omitempty"`
	PropertyResponse    string      `json:"propertyResponse,omitempty"`
	PropertyRespondedAt *time.Time  `json:"propertyRespondedAt,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	Guest               ReviewGuest `json:"guest"`
}

func NewReviewResponse(r *models.Review) ReviewResponse {
	out := ReviewResponse{
		ID:                  r.ID,
		Rating:              r.Rating,
		Title:               r.Title,
		Body:                r.Body,
		StayDateStart:       r.StayDateStart,
		StayDateEnd:         r.StayDateEnd,
		Status:              string(r.Status),
		PropertyResponse:    r.PropertyResponse,
		PropertyRespondedAt: r.PropertyRespondedAt,
		CreatedAt:           r.CreatedAt,
	}
	if r.Guest != nil {
		out.Guest = ReviewGuest{FirstName: r.Guest.FirstName, LastName: r.Guest.LastName}
	}
	return out
}

func NewReviewResponses(list []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for i := range list {
		out = append(out, NewReviewResponse(&list[i]))
	}
	return out
}

// PropertyReviewsResponse: averageRating null khi chưa có review nào được publish
type PropertyReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating *float64         `json:"averageRating"`
	TotalCount    int64            `json:"totalCount"`
}
