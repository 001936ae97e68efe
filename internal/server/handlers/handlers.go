package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/server/websocket"
	"github.com/compile-and-cry/GlobePay/pkg/config"
)

type Handlers struct {
	IntakeSvc intakesvc.IIntakeService
	Logger    zerolog.Logger
	Config    *config.Config
	WsHub     *websocket.WsHub
}

func New(intakeSvc intakesvc.IIntakeService, logger zerolog.Logger, config *config.Config, wsHub *websocket.WsHub) *Handlers {
	return &Handlers{
		IntakeSvc: intakeSvc,
		Logger:    logger,
		Config:    config,
		WsHub:     wsHub,
	}
}

func (h *Handlers) SetupHandlers(router *gin.Engine) {
	pageHandler := NewPageHandler(h.IntakeSvc, h.Config, h.Logger)
	paymentHandler := NewPaymentHandler(h.IntakeSvc, h.WsHub, h.Logger)
	sessionHandler := NewSessionHandler(h.IntakeSvc, h.WsHub, h.Config, h.Logger)
	faqHandler := NewFaqHandler()
	optimizeHandler := NewOptimizeHandler(h.IntakeSvc)
	healthHandler := NewHealthHandler()

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Desktop landing page and payer-facing views
	router.GET("/", pageHandler.Index)
	router.GET("/pay", pageHandler.PayForm)
	router.GET("/processing", pageHandler.Processing)
	router.GET("/success", paymentHandler.Success)

	// Intake pipeline
	router.POST("/pay", paymentHandler.CreatePayment)
	router.POST("/generate", paymentHandler.CreatePayment)

	// Session lifecycle
	router.GET("/session_status", sessionHandler.SessionStatus)
	router.POST("/session_processing", sessionHandler.SessionProcessing)
	router.GET("/ws/session_status", sessionHandler.HandleWebSocket)

	// Helpers
	router.POST("/ask", faqHandler.Ask)
	router.GET("/optimize_currency", optimizeHandler.OptimizeCurrency)

	router.Static("/static", "./static")
}
