package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"staydesk/errors"
	"staydesk/models"
	"staydesk/services/notification"
	"staydesk/testutil"

	"gorm.io/gorm"
)

type testClock struct{ at time.Time }

func (c *testClock) Now() time.Time { return c.at }

func newReviewContainer(t *testing.T, db *gorm.DB) (*Container, *recordingPublisher, *testClock) {
	t.Helper()
	pub := &recordingPublisher{}
	clock := &testClock{at: time.Date(2026, 7, 3, 11, 0, 0, 0, time.UTC)}
	ct := NewContainer(ContainerOptions{DB: db, Publisher: pub, Now: clock.Now})
	return ct, pub, clock
}

// completedStay đặt phòng, check-in rồi check-out và trả về token review
func completedStay(t *testing.T, ct *Container, fx testutil.Fixture, checkIn, checkOut string) (*models.Reservation, *models.ReviewToken) {
	t.Helper()
	ctx := context.Background()
	res := book(t, ct, fx, checkIn, checkOut)
	if _, err := ct.ReservationSvc.CheckIn(ctx, fx.Property.ID, res.ID); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := ct.ReservationSvc.CheckOut(ctx, fx.Property.ID, res.ID); err != nil {
		t.Fatalf("check out: %v", err)
	}
	token, err := ct.Reviews.FindTokenByReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("find review token: %v", err)
	}
	return res, token
}

func TestCheckOutIssuesReviewToken(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, pub, clock := newReviewContainer(t, db)

	res, token := completedStay(t, ct, fx, "2026-07-01", "2026-07-03")

	if !regexp.MustCompile(`^[0-9a-f]{48}$`).MatchString(token.Token) {
		t.Fatalf("token got %q, want 48 hex chars", token.Token)
	}
	want := clock.at.AddDate(0, 0, 30)
	if d := token.ExpiresAt.Sub(want); d > time.Second || d < -time.Second {
		t.Fatalf("expires got %v, want %v", token.ExpiresAt, want)
	}
	if token.PropertyID != fx.Property.ID || token.UsedAt != nil {
		t.Fatalf("got %+v", token)
	}

	var post notification.PostStay
	for _, e := range pub.events {
		if ps, ok := e.(notification.PostStay); ok {
			post = ps
		}
	}
	if post.ReviewToken != token.Token {
		t.Fatalf("post stay token got %q, want %q", post.ReviewToken, token.Token)
	}

	again, err := ct.ReviewSvc.IssueToken(context.Background(), res)
	if err != nil {
		t.Fatalf("issue again: %v", err)
	}
	if again.ID != token.ID {
		t.Fatalf("issue again got new token %s, want %s", again.ID, token.ID)
	}
}

func TestSubmitReviewUsesTokenOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, _, _ := newReviewContainer(t, db)
	ctx := context.Background()
	res, token := completedStay(t, ct, fx, "2026-07-01", "2026-07-03")

	_, err := ct.ReviewSvc.Submit(ctx, token.Token, ReviewInput{Rating: 6, Body: "Lovely sea view."})
	wantCode(t, err, errors.ErrCodeInvalidRequest)
	_, err = ct.ReviewSvc.Submit(ctx, token.Token, ReviewInput{Rating: 5, Body: "   short   "})
	wantCode(t, err, errors.ErrCodeInvalidRequest)

	review, err := ct.ReviewSvc.Submit(ctx, token.Token, ReviewInput{Rating: 5, Title: " Great ", Body: "  Lovely sea view and breakfast.  "})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if review.Status != models.ReviewStatusPending {
		t.Fatalf("status got %s, want pending", review.Status)
	}
	if review.Title != "Great" || review.Body != "Lovely sea view and breakfast." {
		t.Fatalf("got title %q body %q", review.Title, review.Body)
	}
	if review.StayDateStart != res.CheckIn || review.StayDateEnd != res.CheckOut || review.GuestID != res.GuestID {
		t.Fatalf("got %+v", review)
	}

	_, err = ct.ReviewSvc.Submit(ctx, token.Token, ReviewInput{Rating: 4, Body: "Second attempt at a review."})
	wantCode(t, err, errors.ErrCodeInvalidTransition)
	if !errors.Is(err, errors.ErrReviewTokenUsed) {
		t.Fatalf("got %v, want used token", err)
	}

	// review bị từ chối không ghi thêm bản ghi
	var count int64
	db.Model(&models.Review{}).Count(&count)
	if count != 1 {
		t.Fatalf("reviews got %d, want 1", count)
	}
}

func TestSubmitReviewRejectsExpiredOrUnknownToken(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1, From: "2026-07-01", Days: 5})
	ct, _, clock := newReviewContainer(t, db)
	ctx := context.Background()
	_, token := completedStay(t, ct, fx, "2026-07-01", "2026-07-03")

	_, err := ct.ReviewSvc.Submit(ctx, "deadbeef", ReviewInput{Rating: 4, Body: "Nice quiet room."})
	wantCode(t, err, errors.ErrCodeNotFound)

	clock.at = clock.at.AddDate(0, 0, 30)
	_, err = ct.ReviewSvc.Submit(ctx, token.Token, ReviewInput{Rating: 4, Body: "Nice quiet room."})
	wantCode(t, err, errors.ErrCodeInvalidTransition)
	if !errors.Is(err, errors.ErrReviewTokenExpired) {
		t.Fatalf("got %v, want expired token", err)
	}
}

func TestReviewModeration(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct, _, _ := newReviewContainer(t, db)
	ctx := context.Background()
	pid := fx.Property.ID

	_, first := completedStay(t, ct, fx, "2026-07-01", "2026-07-03")
	_, second := completedStay(t, ct, fx, "2026-07-02", "2026-07-03")
	r1, err := ct.ReviewSvc.Submit(ctx, first.Token, ReviewInput{Rating: 5, Body: "Wonderful hosts and views."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	r2, err := ct.ReviewSvc.Submit(ctx, second.Token, ReviewInput{Rating: 2, Body: "Noisy street at night."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	summary, err := ct.ReviewSvc.Published(ctx, pid)
	if err != nil {
		t.Fatalf("published: %v", err)
	}
	if summary.TotalCount != 0 || summary.AverageRating != nil || len(summary.Reviews) != 0 {
		t.Fatalf("pending reviews leaked: %+v", summary)
	}

	_, err = ct.ReviewSvc.Publish(ctx, "00000000-0000-0000-0000-000000000001", r1.ID)
	wantCode(t, err, errors.ErrCodeNotFound)

	for _, id := range []string{r1.ID, r2.ID} {
		if _, err := ct.ReviewSvc.Publish(ctx, pid, id); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if _, err := ct.ReviewSvc.Respond(ctx, pid, r2.ID, "  We have added double glazing.  "); err != nil {
		t.Fatalf("respond: %v", err)
	}
	_, err = ct.ReviewSvc.Respond(ctx, pid, r2.ID, "   ")
	wantCode(t, err, errors.ErrCodeInvalidRequest)

	summary, err = ct.ReviewSvc.Published(ctx, pid)
	if err != nil {
		t.Fatalf("published: %v", err)
	}
	if summary.TotalCount != 2 || summary.AverageRating == nil || *summary.AverageRating != 3.5 {
		t.Fatalf("got count %d avg %v, want 2 and 3.5", summary.TotalCount, summary.AverageRating)
	}
	var reply string
	for _, r := range summary.Reviews {
		if r.ID == r2.ID {
			reply = r.PropertyResponse
		}
		if r.Status != "" {
			t.Fatalf("public review exposes status %q", r.Status)
		}
	}
	if reply != "We have added double glazing." {
		t.Fatalf("reply got %q", reply)
	}

	if _, err := ct.ReviewSvc.Hide(ctx, pid, r2.ID); err != nil {
		t.Fatalf("hide: %v", err)
	}
	summary, err = ct.ReviewSvc.Published(ctx, pid)
	if err != nil {
		t.Fatalf("published: %v", err)
	}
	if summary.TotalCount != 1 || *summary.AverageRating != 5 || summary.Reviews[0].ID != r1.ID {
		t.Fatalf("after hide got %+v", summary)
	}

	hidden, err := ct.ReviewSvc.List(ctx, pid, models.ReviewStatusHidden)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hidden) != 1 || hidden[0].ID != r2.ID {
		t.Fatalf("hidden got %d reviews", len(hidden))
	}
	_, err = ct.ReviewSvc.List(ctx, pid, "archived")
	wantCode(t, err, errors.ErrCodeInvalidRequest)
}

func TestSendReviewRequests(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 2, From: "2026-07-01", Days: 5})
	ct, pub, _ := newReviewContainer(t, db)
	ctx := context.Background()
	res, token := completedStay(t, ct, fx, "2026-07-01", "2026-07-03")
	_, reviewed := completedStay(t, ct, fx, "2026-07-01", "2026-07-03")
	if _, err := ct.ReviewSvc.Submit(ctx, reviewed.Token, ReviewInput{Rating: 4, Body: "Already reviewed this stay."}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// stay chưa check-out không nhận lời mời
	book(t, ct, fx, "2026-07-03", "2026-07-04")

	send := func(day string) []notification.Event {
		t.Helper()
		pub.events = nil
		if _, err := ct.ReviewSvc.SendReviewRequests(ctx, day); err != nil {
			t.Fatalf("review requests %s: %v", day, err)
		}
		return pub.events
	}

	if got := send("2026-07-04"); len(got) != 0 {
		t.Fatalf("one day after checkout got %d events, want 0", len(got))
	}
	got := send("2026-07-05")
	if len(got) != 1 {
		t.Fatalf("two days after checkout got %d events, want 1", len(got))
	}
	req, ok := got[0].(notification.ReviewRequest)
	if !ok || req.Subject().ID != res.ID || req.ReviewToken != token.Token {
		t.Fatalf("got %+v", got[0])
	}

	if err := ct.EmailLogs.Record(ctx, &models.EmailLog{
		ReservationID: res.ID,
		PropertyID:    res.PropertyID,
		Type:          models.EmailReviewRequest,
		Recipient:     "ana@example.com",
		Status:        models.EmailStatusSent,
		SentAt:        time.Now().UTC(),
	}); err != nil {
		t.Fatalf("record email: %v", err)
	}
	if got := send("2026-07-06"); len(got) != 0 {
		t.Fatalf("after email sent got %d events, want 0", len(got))
	}
}
