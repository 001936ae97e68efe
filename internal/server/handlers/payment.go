package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/internal/server/websocket"
)

type PaymentHandler struct {
	intakeSvc intakesvc.IIntakeService
	wsHub     *websocket.WsHub
	logger    zerolog.Logger
}

func NewPaymentHandler(intakeSvc intakesvc.IIntakeService, wsHub *websocket.WsHub, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		intakeSvc: intakeSvc,
		wsHub:     wsHub,
		logger:    logger,
	}
}

type paymentForm struct {
	PayerName   string  `form:"payer_name" binding:"required"`
	UpiOrMobile string  `form:"upi_or_mobile" binding:"required"`
	Amount      float64 `form:"amount" binding:"required"`
	Currency    string  `form:"currency" binding:"required"`
	Note        string  `form:"note"`
	Sid         string  `form:"sid"`
}

// CreatePayment runs the intake pipeline and shows the processing view.
// Served on both /pay and its /generate alias.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var form paymentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, domain.ApiResponse{
			Message: err.Error(),
			Success: false,
			Status:  http.StatusBadRequest,
		})
		return
	}

	sid := c.Query("sid")
	if sid == "" {
		sid = form.Sid
	}

	result, err := h.intakeSvc.Submit(c.Request.Context(), intakesvc.SubmitRequest{
		PayerName: form.PayerName,
		Handle:    form.UpiOrMobile,
		Amount:    form.Amount,
		Currency:  form.Currency,
		Note:      form.Note,
		SessionID: sid,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Payment submission failed")
		c.JSON(http.StatusInternalServerError, domain.ApiResponse{
			Message: "Failed to process payment",
			Success: false,
			Status:  http.StatusInternalServerError,
		})
		return
	}

	if result.SessionLinked {
		h.wsHub.BroadcastSessionStatus(sid, string(domain.SessionStatusProcessing), result.PaymentID.String())
	}

	c.HTML(http.StatusOK, "processing.html", gin.H{
		"id":              result.PaymentID.String(),
		"sid":             sid,
		"payer_name":      form.PayerName,
		"upi_id":          result.UpiID,
		"source_amount":   fmt.Sprintf("%.2f", form.Amount),
		"source_currency": result.SourceCurrency,
		"amount_inr":      fmt.Sprintf("%.2f", result.Fees.AmountINR),
		"total_inr":       fmt.Sprintf("%.2f", result.Fees.TotalINR),
		"total_src":       fmt.Sprintf("%.2f", result.Fees.TotalSrc),
		"fee_transfer":    fmt.Sprintf("%.2f", result.Fees.FeeTransferINR),
		"fee_platform":    fmt.Sprintf("%.2f", result.Fees.FeePlatformINR),
		"rate":            result.Quote.Rate,
		"rate_provider":   result.Quote.Provider,
		"risk_score":      result.Risk.Score,
		"risk_label":      result.Risk.Label,
		"risk_reasons":    result.Risk.Reasons,
	})
}

// Success finalizes the payment and session, then renders the settled
// totals. Desktop visits (the host that created the QR) are bounced back to
// the landing page instead.
func (h *PaymentHandler) Success(c *gin.Context) {
	id := c.Query("id")
	sid := c.Query("sid")

	result, err := h.intakeSvc.Finalize(c.Request.Context(), id, sid)
	if err != nil {
		h.logger.Error().Err(err).Str("payment_id", id).Msg("Finalization failed")
		c.JSON(http.StatusInternalServerError, domain.ApiResponse{
			Message: "Failed to finalize payment",
			Success: false,
			Status:  http.StatusInternalServerError,
		})
		return
	}

	if result.SessionFinalized {
		h.wsHub.BroadcastSessionStatus(sid, string(domain.SessionStatusSuccess), id)
	}

	host := c.Request.Host
	if strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
		c.Redirect(http.StatusFound, "/")
		return
	}

	data := gin.H{}
	if p := result.Payment; p != nil {
		data["payer_name"] = p.PayerName
		data["amount_inr"] = fmt.Sprintf("%.2f", p.AmountINR)
		data["total_inr"] = fmt.Sprintf("%.2f", p.TotalINR)
		data["source_amount"] = fmt.Sprintf("%.2f", p.SourceAmount)
		data["total_src"] = fmt.Sprintf("%.2f", p.TotalSrc)
		data["source_currency"] = p.SourceCurrency
		data["upi_link"] = upiDeeplink(p.UpiID, p.PayerName, p.AmountINR, p.Note)
	}

	c.HTML(http.StatusOK, "success.html", data)
}
