package jobs

import (
	"context"
	"time"

	"staydesk/services/logger"
	"staydesk/utils"

	"github.com/robfig/cron/v3"
)

// InventoryBackfiller đẩy cửa sổ ledger về phía trước
type InventoryBackfiller interface {
	BackfillAll(ctx context.Context) (int, error)
}

// PreArrivalSender gửi email nhắc cho khách đến vào ngày hôm sau
type PreArrivalSender interface {
	SendPreArrivals(ctx context.Context, day string) (int, error)
}

// ReviewRequester mời khách review sau khi check-out
type ReviewRequester interface {
	SendReviewRequests(ctx context.Context, day string) (int, error)
}

// Schedule là biểu thức cron của từng job
type Schedule struct {
	Backfill      string
	PreArrival    string
	ReviewRequest string
}

type Jobs struct {
	Backfiller    InventoryBackfiller
	PreArrival    PreArrivalSender
	ReviewRequest ReviewRequester
	Logger        logger.Logger
	Now           func() time.Time
}

const jobTimeout = 10 * time.Minute

// RunBackfill chạy một lượt backfill toàn bộ loại phòng
func (j *Jobs) RunBackfill() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := j.Backfiller.BackfillAll(ctx)
	if err != nil {
		j.Logger.Error("cron backfill: %d room types done, error: %v", n, err)
		return
	}
	j.Logger.Info("cron backfill: %d room types", n)
}

func (j *Jobs) RunPreArrival() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	day := utils.Today(j.now().UTC())
	if _, err := j.PreArrival.SendPreArrivals(ctx, day); err != nil {
		j.Logger.Error("cron pre-arrival %s: %v", day, err)
	}
}

func (j *Jobs) RunReviewRequest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	day := utils.Today(j.now().UTC())
	if _, err := j.ReviewRequest.SendReviewRequests(ctx, day); err != nil {
		j.Logger.Error("cron review request %s: %v", day, err)
	}
}

func (j *Jobs) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

// InitCronJobs đăng ký các job rồi khởi động scheduler
func InitCronJobs(c *cron.Cron, s Schedule, j *Jobs) error {
	if _, err := c.AddFunc(s.Backfill, j.RunBackfill); err != nil {
		return err
	}
	if _, err := c.AddFunc(s.PreArrival, j.RunPreArrival); err != nil {
		return err
	}
	if _, err := c.AddFunc(s.ReviewRequest, j.RunReviewRequest); err != nil {
		return err
	}

	c.Start()
	j.Logger.Info("Cron jobs initialized successfully")
	return nil
}
