package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"staydesk/models"
	"staydesk/services/logger"

	"github.com/shopspring/decimal"
)

// Sender gửi một email HTML
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPSender gửi qua net/smtp với PlainAuth
type SMTPSender struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	msg := []byte("MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"From: " + s.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" + html)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}
	return smtp.SendMail(s.Host+":"+s.Port, auth, envelopeAddress(s.From), []string{to}, msg)
}

// envelopeAddress lấy địa chỉ trong "Name <addr>"
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return from
}

// LogSender chỉ ghi log, dùng khi chưa cấu hình SMTP
type LogSender struct {
	Logger logger.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, html string) error {
	s.Logger.Info("email to=%s subject=%q (%d bytes)", to, subject, len(html))
	return nil
}

// EmailLogStore lưu lịch sử gửi email
type EmailLogStore interface {
	Sent(ctx context.Context, reservationID string, kind models.EmailType) (bool, error)
	Record(ctx context.Context, entry *models.EmailLog) error
}

// EmailHandler render và gửi email cho guest
type EmailHandler struct {
	sender Sender
	logs   EmailLogStore
	log    logger.Logger
	tmpl   *template.Template
	// baseURL dùng cho link đặt lại trong email sau kỳ ở, rỗng thì bỏ link
	baseURL string
}

func NewEmailHandler(sender Sender, logs EmailLogStore, log logger.Logger) *EmailHandler {
	return &EmailHandler{
		sender: sender,
		logs:   logs,
		log:    log,
		tmpl:   template.Must(template.New("email").Parse(emailTemplates)),
	}
}

// WithBaseURL đặt địa chỉ public của trang đặt phòng
func (h *EmailHandler) WithBaseURL(baseURL string) *EmailHandler {
	h.baseURL = strings.TrimRight(baseURL, "/")
	return h
}

func (h *EmailHandler) Name() string { return "email" }

func (h *EmailHandler) reviewURL(token string) string {
	if h.baseURL == "" || token == "" {
		return ""
	}
	return h.baseURL + "/review/" + token
}

type emailData struct {
	FirstName    string
	PropertyName string
	Address      string
	Code         string
	CheckIn      string
	CheckOut     string
	CheckInTime  string
	Nights       int
	RoomType     string
	Total        string
	Paid         string
	Deposit      bool
	Reason       string
	RefundNote   string
	BookAgainURL string
	ReviewURL    string
}

func (h *EmailHandler) Handle(ctx context.Context, e Event) error {
	r := e.Subject()
	if r == nil || r.Guest == nil || r.Property == nil {
		return nil
	}

	var (
		kind    models.EmailType
		subject string
		name    string
		dedupe  bool
	)
	data := emailData{
		FirstName:    r.Guest.FirstName,
		PropertyName: r.Property.Name,
		Address:      r.Property.Address,
		Code:         r.ConfirmationCode,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		CheckInTime:  r.Property.CheckInTime,
		Nights:       r.Nights,
		RoomType:     roomTypeName(r),
		Total:        FormatMoney(r.TotalCents, r.Currency),
	}

	switch ev := e.(type) {
	case BookingConfirmed:
		kind, name, dedupe = models.EmailConfirmation, "confirmation", true
		subject = fmt.Sprintf("Booking confirmed: %s · %s", r.ConfirmationCode, r.Property.Name)
		data.Paid = FormatMoney(ev.AmountPaidCents, r.Currency)
		data.Deposit = ev.PaymentType == models.PaymentTypeDeposit
	case BookingCancelled:
		kind, name = models.EmailCancellation, "cancellation"
		subject = fmt.Sprintf("Booking cancelled: %s · %s", r.ConfirmationCode, r.Property.Name)
		data.Reason = ev.Reason
		data.RefundNote = ev.RefundNote
	case PreArrival:
		kind, name, dedupe = models.EmailPreArrival, "pre_arrival", true
		subject = fmt.Sprintf("Your check-in tomorrow at %s", r.Property.Name)
	case PostStay:
		kind, name = models.EmailPostStay, "post_stay"
		subject = fmt.Sprintf("Thanks for staying at %s", r.Property.Name)
		if h.baseURL != "" && r.Property.Slug != "" {
			data.BookAgainURL = h.baseURL + "/book/" + r.Property.Slug
		}
		data.ReviewURL = h.reviewURL(ev.ReviewToken)
	case ReviewRequest:
		kind, name, dedupe = models.EmailReviewRequest, "review_request", true
		subject = fmt.Sprintf("How was your stay at %s?", r.Property.Name)
		data.ReviewURL = h.reviewURL(ev.ReviewToken)
		if data.ReviewURL == "" {
			return nil
		}
	default:
		return nil
	}

	if dedupe {
		sent, err := h.logs.Sent(ctx, r.ID, kind)
		if err != nil {
			return err
		}
		if sent {
			h.log.Debug("skip %s for %s, already sent", kind, r.ConfirmationCode)
			return nil
		}
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	sendErr := h.sender.Send(ctx, r.Guest.Email, subject, buf.String())
	status := models.EmailStatusSent
	if sendErr != nil {
		status = models.EmailStatusFailed
	}
	if err := h.logs.Record(ctx, &models.EmailLog{
		ReservationID: r.ID,
		PropertyID:    r.PropertyID,
		Type:          kind,
		Recipient:     r.Guest.Email,
		Subject:       subject,
		Status:        status,
		SentAt:        time.Now().UTC(),
	}); err != nil {
		h.log.Error("write email log for %s: %v", r.ConfirmationCode, err)
	}
	return sendErr
}

// FormatMoney định dạng cents thành "EUR 123.45"
func FormatMoney(cents int64, currency string) string {
	return strings.ToUpper(currency) + " " + decimal.New(cents, -2).StringFixed(2)
}

const emailTemplates = `
{{define "header"}}<!DOCTYPE html><html><head><meta charset="UTF-8"></head><body>{{end}}
{{define "footer"}}<p>{{.PropertyName}}</p></body></html>{{end}}

{{define "confirmation"}}{{template "header" .}}
<p>Hi {{.FirstName}},</p>
<p>Your booking at <strong>{{.PropertyName}}</strong> is confirmed.</p>
<p>Confirmation code: <strong>{{.Code}}</strong></p>
<p>{{.RoomType}}, {{.CheckIn}} to {{.CheckOut}} ({{.Nights}} nights)</p>
<p>Total: {{.Total}}<br>{{if .Deposit}}Deposit paid: {{.Paid}}{{else}}Paid: {{.Paid}}{{end}}</p>
{{if .CheckInTime}}<p>Check-in from {{.CheckInTime}}.</p>{{end}}
{{template "footer" .}}{{end}}

{{define "cancellation"}}{{template "header" .}}
<p>Hi {{.FirstName}},</p>
<p>Your booking <strong>{{.Code}}</strong> for {{.CheckIn}} to {{.CheckOut}} has been cancelled.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
{{if .RefundNote}}<p>{{.RefundNote}}</p>{{end}}
{{template "footer" .}}{{end}}

{{define "pre_arrival"}}{{template "header" .}}
<p>Hi {{.FirstName}},</p>
<p>We look forward to welcoming you tomorrow, {{.CheckIn}}{{if .CheckInTime}}, from {{.CheckInTime}}{{end}}.</p>
<p>{{.RoomType}}, confirmation code <strong>{{.Code}}</strong></p>
{{if .Address}}<p>{{.Address}}</p>{{end}}
{{template "footer" .}}{{end}}

{{define "post_stay"}}{{template "header" .}}
<p>Hi {{.FirstName}},</p>
<p>Thank you for staying with us until {{.CheckOut}}. We hope to see you again.</p>
{{if .ReviewURL}}<p><a href="{{.ReviewURL}}">Tell us about your stay</a></p>{{end}}
{{if .BookAgainURL}}<p><a href="{{.BookAgainURL}}">Book your next stay</a></p>{{end}}
{{template "footer" .}}{{end}}

{{define "review_request"}}{{template "header" .}}
<p>Hi {{.FirstName}},</p>
<p>We hope you enjoyed your stay at <strong>{{.PropertyName}}</strong>. It takes a minute to leave a review.</p>
<p><a href="{{.ReviewURL}}">Review your stay</a></p>
<p>The link is valid for 30 days.</p>
{{template "footer" .}}{{end}}
`
