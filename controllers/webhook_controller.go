package controllers

import (
	"io"

	"staydesk/commands"
	"staydesk/errors"
	"staydesk/response"
	"staydesk/services"
	"staydesk/services/logger"
	"staydesk/services/payment"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "X-Webhook-Signature"
	maxWebhookBody  = 1 << 20
)

// WebhookController nhận sự kiện từ nhà cung cấp thanh toán
type WebhookController struct {
	repos  commands.Repos
	secret string
	logger logger.Logger
}

func NewWebhookController(ct *services.Container, log logger.Logger) WebhookController {
	return WebhookController{
		repos: commands.Repos{
			DB:           ct.DB,
			Payments:     ct.Payments,
			Reservations: ct.Reservations,
		},
		secret: ct.WebhookSecret,
		logger: log,
	}
}

// HandlePayment godoc
// @Summary Webhook thanh toán
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string true "hex HMAC-SHA256 của body"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /v1/webhooks/payments [post]
func (w WebhookController) HandlePayment(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "Could not read request body.")
		return
	}

	event, err := payment.ParseWebhookEvent(body, c.GetHeader(signatureHeader), w.secret)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidSignature) {
			w.logger.Warn("webhook: invalid signature")
			response.Error(c, errors.ErrCodeInvalidRequest, "Invalid signature.")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	cmd := commands.NewWebhookCommand(event, w.repos)
	if cmd == nil {
		w.logger.Debug("webhook %s: ignored type %s", event.ID, event.Type)
		response.Success(c, gin.H{"received": true})
		return
	}
	if err := cmd.Execute(c.Request.Context()); err != nil {
		w.logger.Error("webhook %s (%s): %v", event.ID, event.Type, err)
		response.ServerError(c)
		return
	}
	response.Success(c, gin.H{"received": true})
}
