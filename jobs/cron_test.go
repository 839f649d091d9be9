package jobs

import (
	"context"
	"testing"
	"time"

	"staydesk/services/logger"

	"github.com/robfig/cron/v3"
)

type fakeBackfiller struct{ calls int }

func (f *fakeBackfiller) BackfillAll(ctx context.Context) (int, error) {
	f.calls++
	return 3, nil
}

type fakePreArrival struct{ days []string }

func (f *fakePreArrival) SendPreArrivals(ctx context.Context, day string) (int, error) {
	f.days = append(f.days, day)
	return 0, nil
}

type fakeReviewRequester struct{ days []string }

func (f *fakeReviewRequester) SendReviewRequests(ctx context.Context, day string) (int, error) {
	f.days = append(f.days, day)
	return 1, nil
}

func TestRunReviewRequestUsesToday(t *testing.T) {
	reviews := &fakeReviewRequester{}
	j := &Jobs{
		ReviewRequest: reviews,
		Logger:        logger.NewDefaultLogger(logger.ErrorLevel),
		Now:           func() time.Time { return time.Date(2026, 7, 14, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600)) },
	}
	j.RunReviewRequest()
	if len(reviews.days) != 1 || reviews.days[0] != "2026-07-14" {
		t.Fatalf("got %v, want [2026-07-14]", reviews.days)
	}
}

func TestRunPreArrivalUsesToday(t *testing.T) {
	pre := &fakePreArrival{}
	j := &Jobs{
		Backfiller: &fakeBackfiller{},
		PreArrival: pre,
		Logger:     logger.NewDefaultLogger(logger.ErrorLevel),
		Now:        func() time.Time { return time.Date(2026, 7, 14, 23, 30, 0, 0, time.UTC) },
	}
	j.RunPreArrival()
	if len(pre.days) != 1 || pre.days[0] != "2026-07-14" {
		t.Fatalf("got %v, want [2026-07-14]", pre.days)
	}
}

func TestInitCronJobsRejectsBadSchedule(t *testing.T) {
	j := &Jobs{
		Backfiller:    &fakeBackfiller{},
		PreArrival:    &fakePreArrival{},
		ReviewRequest: &fakeReviewRequester{},
		Logger:        logger.NewDefaultLogger(logger.ErrorLevel),
	}
	c := cron.New()
	defer c.Stop()
	if err := InitCronJobs(c, Schedule{Backfill: "not a schedule", PreArrival: "0 9 * * *", ReviewRequest: "0 10 * * *"}, j); err == nil {
		t.Fatalf("want error for invalid schedule")
	}
	c = cron.New()
	defer c.Stop()
	if err := InitCronJobs(c, Schedule{Backfill: "0 3 * * *", PreArrival: "0 9 * * *", ReviewRequest: "bad"}, j); err == nil {
		t.Fatalf("want error for invalid review schedule")
	}
	c = cron.New()
	defer c.Stop()
	if err := InitCronJobs(c, Schedule{Backfill: "0 3 * * *", PreArrival: "0 9 * * *", ReviewRequest: "0 10 * * *"}, j); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := len(c.Entries()); got != 3 {
		t.Fatalf("got %d entries, want 3", got)
	}
}
