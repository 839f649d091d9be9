package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"staydesk/constants"
	"staydesk/dto"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/services/notification"
	"staydesk/utils"

	"gorm.io/gorm"
)

// ReviewService phát hành link review khi check-out, nhận review của khách và kiểm duyệt
type ReviewService struct {
	db        *gorm.DB
	reviews   repository.ReviewRepository
	emailLogs notification.EmailLogStore
	publisher notification.Publisher
	logger    logger.Logger
	now       func() time.Time
}

type ReviewServiceOptions struct {
	DB        *gorm.DB
	Reviews   repository.ReviewRepository
	EmailLogs notification.EmailLogStore
	Publisher notification.Publisher
	Logger    logger.Logger
	Now       func() time.Time
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.Publisher == nil {
		opts.Publisher = notification.NopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReviewService{
		db:        opts.DB,
		reviews:   opts.Reviews,
		emailLogs: opts.EmailLogs,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// ReviewInput là nội dung khách gửi
type ReviewInput struct {
	Rating int
	Title  string
	Body   string
}

func newReviewToken() (string, error) {
	b := make([]byte, constants.ReviewTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IssueToken tạo link review cho reservation đã check-out; gọi lại trả về token cũ
func (s *ReviewService) IssueToken(ctx context.Context, res *models.Reservation) (*models.ReviewToken, error) {
	existing, err := s.reviews.FindTokenByReservation(ctx, res.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	token, err := newReviewToken()
	if err != nil {
		return nil, err
	}
	row := &models.ReviewToken{
		ReservationID: res.ID,
		PropertyID:    res.PropertyID,
		Token:         token,
		ExpiresAt:     s.now().UTC().AddDate(0, 0, constants.ReviewTokenValidDays),
	}
	if err := s.reviews.CreateToken(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// OpenToken trả về token còn dùng được cùng reservation đã preload
func (s *ReviewService) OpenToken(ctx context.Context, token string) (*models.ReviewToken, error) {
	row, err := s.reviews.FindToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgReviewLinkInvalid, errors.ErrReviewTokenNotFound)
		}
		return nil, unexpected(err)
	}
	if row.UsedAt != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, "This review link has already been used.", errors.ErrReviewTokenUsed)
	}
	if row.Expired(s.now()) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, "This review link has expired.", errors.ErrReviewTokenExpired)
	}
	if row.Reservation == nil || row.Reservation.Guest == nil {
		return nil, reservationNotFound(errors.ErrReservationNotFound)
	}
	return row, nil
}

// Submit ghi review pending và đánh dấu token đã dùng trong cùng transaction
func (s *ReviewService) Submit(ctx context.Context, token string, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "Rating must be between 1 and 5.", nil)
	}
	body := strings.TrimSpace(in.Body)
	if utf8.RuneCountInString(body) < constants.ReviewMinBodyLength {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "Review must be at least 10 characters.", nil)
	}

	row, err := s.OpenToken(ctx, token)
	if err != nil {
		return nil, err
	}
	res := row.Reservation
	review := &models.Review{
		PropertyID:    row.PropertyID,
		ReservationID: row.ReservationID,
		GuestID:       res.GuestID,
		ReviewTokenID: row.ID,
		Rating:        in.Rating,
		Title:         strings.TrimSpace(in.Title),
		Body:          body,
		StayDateStart: res.CheckIn,
		StayDateEnd:   res.CheckOut,
		Status:        models.ReviewStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.reviews.WithTx(tx)
		ok, err := repo.ConsumeToken(ctx, row.ID, s.now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrReviewTokenUsed
		}
		return repo.Create(ctx, review)
	})
	if err != nil {
		if errors.Is(err, errors.ErrReviewTokenUsed) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, "This review link has already been used.", err)
		}
		return nil, unexpected(err)
	}
	review.Guest = res.Guest
	s.logger.Info("review %s submitted for %s (rating %d)", review.ID, res.ConfirmationCode, review.Rating)
	return review, nil
}

// get tìm review; propertyID rỗng = không giới hạn property
func (s *ReviewService) get(ctx context.Context, propertyID, id string) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgReviewNotFound, errors.ErrReviewNotFound)
		}
		return nil, unexpected(err)
	}
	if propertyID != "" && review.PropertyID != propertyID {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, constants.MsgReviewNotFound, errors.ErrReviewNotFound)
	}
	return review, nil
}

func (s *ReviewService) setStatus(ctx context.Context, propertyID, id string, status models.ReviewStatus) (*models.Review, error) {
	review, err := s.get(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, review.ID, map[string]interface{}{"status": status}); err != nil {
		return nil, unexpected(err)
	}
	s.logger.Info("review %s: %s -> %s", review.ID, review.Status, status)
	review.Status = status
	return review, nil
}

func (s *ReviewService) Publish(ctx context.Context, propertyID, id string) (*models.Review, error) {
	return s.setStatus(ctx, propertyID, id, models.ReviewStatusPublished)
}

func (s *ReviewService) Hide(ctx context.Context, propertyID, id string) (*models.Review, error) {
	return s.setStatus(ctx, propertyID, id, models.ReviewStatusHidden)
}

// Respond ghi phản hồi công khai của property, ghi đè phản hồi cũ
func (s *ReviewService) Respond(ctx context.Context, propertyID, id, response string) (*models.Review, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "Response must not be empty.", nil)
	}
	review, err := s.get(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	at := s.now().UTC()
	if err := s.reviews.Update(ctx, review.ID, map[string]interface{}{
		"property_response":     response,
		"property_responded_at": at,
	}); err != nil {
		return nil, unexpected(err)
	}
	review.PropertyResponse = response
	review.PropertyRespondedAt = &at
	return review, nil
}

// List trả review của property cho dashboard
func (s *ReviewService) List(ctx context.Context, propertyID string, status models.ReviewStatus) ([]models.Review, error) {
	if status != "" && !status.Valid() {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "Unknown review status.", nil)
	}
	list, err := s.reviews.ListByProperty(ctx, propertyID, status)
	if err != nil {
		return nil, unexpected(err)
	}
	return list, nil
}

// Published trả review đã publish kèm điểm trung bình cho trang public
func (s *ReviewService) Published(ctx context.Context, propertyID string) (*dto.PropertyReviewsResponse, error) {
	list, err := s.reviews.ListByProperty(ctx, propertyID, models.ReviewStatusPublished)
	if err != nil {
		return nil, unexpected(err)
	}
	avg, total, err := s.reviews.Summary(ctx, propertyID)
	if err != nil {
		return nil, unexpected(err)
	}
	out := &dto.PropertyReviewsResponse{Reviews: dto.NewReviewResponses(list), TotalCount: total}
	for i := range out.Reviews {
		out.Reviews[i].Status = ""
	}
	if total > 0 {
		out.AverageRating = &avg
	}
	return out, nil
}

// SendReviewRequests gửi email mời review cho stay đã check-out từ hai ngày trước day trở về trước.
// Reservation đã có email review_request thành công thì bỏ qua.
func (s *ReviewService) SendReviewRequests(ctx context.Context, day string) (int, error) {
	cutoff, err := utils.AddDays(day, -constants.ReviewRequestDelayDays)
	if err != nil {
		return 0, err
	}
	tokens, err := s.reviews.ListOpenTokens(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	now := s.now()
	queued := 0
	for i := range tokens {
		row := &tokens[i]
		res := row.Reservation
		if res == nil || res.Guest == nil || res.Property == nil || row.Expired(now) {
			continue
		}
		if s.emailLogs != nil {
			sent, err := s.emailLogs.Sent(ctx, res.ID, models.EmailReviewRequest)
			if err != nil {
				return queued, err
			}
			if sent {
				continue
			}
		}
		if s.publisher.Publish(notification.NewReviewRequest(res, row.Token)) {
			queued++
		}
	}
	s.logger.Info("review requests: %d/%d queued for checkouts until %s", queued, len(tokens), cutoff)
	return queued, nil
}
