package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/server/websocket"
	"github.com/compile-and-cry/GlobePay/pkg/config"
)

type stubIntakeService struct {
	statuses        map[string]string
	rankedAmount    float64
	rankedAllowed   []string
	forceProcessing []string
}

func (s *stubIntakeService) CreateSession(ctx context.Context) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *stubIntakeService) Submit(ctx context.Context, req intakesvc.SubmitRequest) (*intakesvc.SubmitResult, error) {
	return &intakesvc.SubmitResult{PaymentID: uuid.New()}, nil
}

func (s *stubIntakeService) Finalize(ctx context.Context, paymentID, sessionID string) (*intakesvc.FinalizeResult, error) {
	return &intakesvc.FinalizeResult{}, nil
}

func (s *stubIntakeService) SessionStatus(ctx context.Context, sessionID string) string {
	if status, ok := s.statuses[sessionID]; ok {
		return status
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return "invalid"
	}
	return "not_found"
}

func (s *stubIntakeService) ForceProcessing(ctx context.Context, sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return intakesvc.ErrInvalidSessionID
	}
	s.forceProcessing = append(s.forceProcessing, sessionID)
	return nil
}

func (s *stubIntakeService) RankCurrencies(amount float64, clientAllowed []string) []intakesvc.CurrencyOption {
	s.rankedAmount = amount
	s.rankedAllowed = clientAllowed
	return []intakesvc.CurrencyOption{
		{Currency: "EUR", Rate: 90.0, AmountINR: 90000, FeeINR: 124, NetINR: 89876},
		{Currency: "USD", Rate: 83.0, AmountINR: 83000, FeeINR: 124, NetINR: 82876},
	}
}

func newTestRouter(svc intakesvc.IIntakeService) (*gin.Engine, *websocket.WsHub) {
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()
	hub := websocket.NewWsHub(logger)

	router := gin.New()
	sessionHandler := NewSessionHandler(svc, hub, &config.Config{}, logger)
	faqHandler := NewFaqHandler()
	optimizeHandler := NewOptimizeHandler(svc)
	healthHandler := NewHealthHandler()

	router.GET("/health", healthHandler.Health)
	router.GET("/session_status", sessionHandler.SessionStatus)
	router.POST("/session_processing", sessionHandler.SessionProcessing)
	router.POST("/ask", faqHandler.Ask)
	router.GET("/optimize_currency", optimizeHandler.OptimizeCurrency)
	return router, hub
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(&stubIntakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"globepay"`)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestSessionStatusEndpoint(t *testing.T) {
	known := uuid.New()
	svc := &stubIntakeService{statuses: map[string]string{known.String(): "processing"}}
	router, _ := newTestRouter(svc)

	tests := []struct {
		name string
		sid  string
		want string
	}{
		{"known session", known.String(), "processing"},
		{"unknown session", uuid.New().String(), "not_found"},
		{"malformed session", "not-a-uuid", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session_status?sid="+tt.sid, nil)
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"status":"`+tt.want+`"}`, w.Body.String())
		})
	}
}

func TestSessionProcessingEndpoint(t *testing.T) {
	svc := &stubIntakeService{}
	router, hub := newTestRouter(svc)

	sid := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session_processing?sid="+sid, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{sid}, svc.forceProcessing)

	select {
	case msg := <-hub.Broadcast:
		assert.Equal(t, sid, msg.SessionID)
		assert.Equal(t, "processing", msg.Status)
	default:
		t.Fatal("expected a broadcast message")
	}
}

func TestSessionProcessingRejectsMalformedID(t *testing.T) {
	svc := &stubIntakeService{}
	router, hub := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session_processing?sid=garbage", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.forceProcessing)
	assert.Empty(t, hub.Broadcast)
}

func TestAskEndpoint(t *testing.T) {
	router, _ := newTestRouter(&stubIntakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"what fees do you charge?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"answer"`)
}

func TestAskEndpointRequiresQuestion(t *testing.T) {
	router, _ := newTestRouter(&stubIntakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptimizeCurrencyEndpoint(t *testing.T) {
	svc := &stubIntakeService{}
	router, _ := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/optimize_currency?amount=1000&allowed=USD,%20EUR", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1000.0, svc.rankedAmount)
	assert.Equal(t, []string{"USD", "EUR"}, svc.rankedAllowed)
	assert.Contains(t, w.Body.String(), `"currency":"EUR"`)
}

func TestOptimizeCurrencyRequiresAmount(t *testing.T) {
	router, _ := newTestRouter(&stubIntakeService{})

	tests := []string{
		"/optimize_currency",
		"/optimize_currency?amount=abc",
		"/optimize_currency?amount=-5",
	}
	for _, path := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
