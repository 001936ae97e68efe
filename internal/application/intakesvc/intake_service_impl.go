package intakesvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/application/fees"
	"github.com/compile-and-cry/GlobePay/internal/application/rates"
	"github.com/compile-and-cry/GlobePay/internal/application/risk"
	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/internal/repositories/fxraterepo"
	"github.com/compile-and-cry/GlobePay/internal/repositories/paymentrepo"
	"github.com/compile-and-cry/GlobePay/internal/repositories/sessionrepo"
	"github.com/compile-and-cry/GlobePay/pkg/config"
)

type intakeService struct {
	paymentRepo paymentrepo.IPaymentRepository
	sessionRepo sessionrepo.ISessionRepository
	fxRateRepo  fxraterepo.IFxRateRepository
	rateSvc     rates.IRateService
	calculator  *fees.Calculator
	scorer      *risk.Scorer
	config      config.IntakeConfig
	now         func() time.Time
	logger      zerolog.Logger
}

func New(
	paymentRepo paymentrepo.IPaymentRepository,
	sessionRepo sessionrepo.ISessionRepository,
	fxRateRepo fxraterepo.IFxRateRepository,
	rateSvc rates.IRateService,
	cfg config.IntakeConfig,
	logger zerolog.Logger,
) IIntakeService {
	return &intakeService{
		paymentRepo: paymentRepo,
		sessionRepo: sessionRepo,
		fxRateRepo:  fxRateRepo,
		rateSvc:     rateSvc,
		calculator:  fees.NewCalculator(cfg),
		scorer:      risk.NewScorer(cfg.SettlementCurrency),
		config:      cfg,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger.With().Str("component", "intake_service").Logger(),
	}
}

func (s *intakeService) CreateSession(ctx context.Context) (uuid.UUID, error) {
	return s.sessionRepo.Create(ctx)
}

// Submit runs the intake pipeline: normalize -> rate -> fees -> risk ->
// persist payment -> advisory fx audit and session transition. Only the
// payment insert is fatal; every other write degrades to a result flag.
func (s *intakeService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	startTime := s.now()

	upiID := NormalizeHandle(req.Handle, s.config.DefaultHandleSuffix)
	srcCurrency := strings.ToUpper(strings.TrimSpace(req.Currency))
	settlement := s.calculator.SettlementCurrency()

	quote := s.rateSvc.Resolve(ctx, srcCurrency, settlement)
	breakdown := s.calculator.Compute(req.Amount, srcCurrency, quote.Rate)
	assessment := s.scorer.Assess(upiID, srcCurrency, breakdown.AmountINR, req.Note, s.now())

	rate := quote.Rate
	payment := &domain.Payment{
		ID:             uuid.New(),
		PayerName:      strings.TrimSpace(req.PayerName),
		UpiID:          upiID,
		Note:           strings.TrimSpace(req.Note),
		SourceCurrency: srcCurrency,
		SourceAmount:   req.Amount,
		AmountINR:      breakdown.AmountINR,
		RateToINR:      &rate,
		RateTimestamp:  quote.Timestamp,
		FeeTransferINR: breakdown.FeeTransferINR,
		FeePlatformINR: breakdown.FeePlatformINR,
		FeeSrcTotal:    breakdown.FeeSrcTotal,
		TotalINR:       breakdown.TotalINR,
		TotalSrc:       breakdown.TotalSrc,
		RiskScore:      assessment.Score,
		RiskLabel:      assessment.Label,
		RiskReasons:    assessment.Reasons,
		Status:         domain.PaymentStatusPending,
	}

	if err := s.paymentRepo.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	result := &SubmitResult{
		PaymentID:      payment.ID,
		UpiID:          upiID,
		SourceCurrency: srcCurrency,
		SourceAmount:   req.Amount,
		Quote:          quote,
		Fees:           breakdown,
		Risk:           assessment,
	}

	// Advisory: fx audit row, only meaningful for cross-currency payments.
	if srcCurrency != settlement {
		fxRow := &domain.FxRate{
			ID:            uuid.New(),
			BaseCurrency:  srcCurrency,
			QuoteCurrency: settlement,
			Rate:          quote.Rate,
			Provider:      quote.Provider,
			FetchedAt:     quote.Timestamp,
		}
		if err := s.fxRateRepo.Insert(ctx, fxRow); err != nil {
			s.logger.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("Fx audit write failed, continuing")
		} else {
			result.FxRecorded = true
		}
	}

	// Advisory: transition the session and attach the payment. A missing or
	// malformed session id never fails the submission.
	if sid, err := uuid.Parse(strings.TrimSpace(req.SessionID)); err == nil {
		linked := true
		if err := s.sessionRepo.SetStatus(ctx, sid, domain.SessionStatusProcessing); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sid.String()).Msg("Session status update failed, continuing")
			linked = false
		}
		if err := s.sessionRepo.AttachPayment(ctx, sid, payment.ID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sid.String()).Msg("Session attach failed, continuing")
			linked = false
		}
		result.SessionLinked = linked
	}

	s.logger.Info().
		Str("payment_id", payment.ID.String()).
		Str("source_currency", srcCurrency).
		Float64("amount_inr", breakdown.AmountINR).
		Str("rate_provider", quote.Provider).
		Int("risk_score", assessment.Score).
		Bool("session_linked", result.SessionLinked).
		Dur("processing_time", s.now().Sub(startTime)).
		Msg("Payment submission completed")

	return result, nil
}

// Finalize marks the payment successful (idempotent) and advisorily
// completes the session, then re-reads the payment for rendering.
func (s *intakeService) Finalize(ctx context.Context, paymentID, sessionID string) (*FinalizeResult, error) {
	result := &FinalizeResult{}

	if pid, err := uuid.Parse(strings.TrimSpace(paymentID)); err == nil {
		if err := s.paymentRepo.MarkSuccess(ctx, pid); err != nil {
			s.logger.Warn().Err(err).Str("payment_id", pid.String()).Msg("Mark success failed, continuing")
		}
		payment, err := s.paymentRepo.GetByID(ctx, pid)
		if err != nil {
			s.logger.Warn().Err(err).Str("payment_id", pid.String()).Msg("Payment read-back failed")
		} else {
			result.Payment = payment
		}
	}

	if sid, err := uuid.Parse(strings.TrimSpace(sessionID)); err == nil {
		if err := s.sessionRepo.SetStatus(ctx, sid, domain.SessionStatusSuccess); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sid.String()).Msg("Session finalize failed, continuing")
		} else {
			result.SessionFinalized = true
		}
	}

	return result, nil
}

// SessionStatus reports created/processing/success, "not_found" for an
// unknown id and "invalid" for an unparsable one. Never an error.
func (s *intakeService) SessionStatus(ctx context.Context, sessionID string) string {
	sid, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return "invalid"
	}

	session, err := s.sessionRepo.GetByID(ctx, sid)
	if err != nil || session == nil {
		return "not_found"
	}

	return string(session.Status)
}

func (s *intakeService) ForceProcessing(ctx context.Context, sessionID string) error {
	sid, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return ErrInvalidSessionID
	}

	if err := s.sessionRepo.SetStatus(ctx, sid, domain.SessionStatusProcessing); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sid.String()).Msg("Forced processing transition failed, continuing")
	}
	return nil
}

// RankCurrencies orders the allowed currencies by estimated net settlement
// for the given source amount, using fallback rates only. The server-side
// allow-list is authoritative; a client list only narrows it.
func (s *intakeService) RankCurrencies(amount float64, clientAllowed []string) []CurrencyOption {
	allowed := s.config.AllowedCurrencies
	if len(clientAllowed) > 0 {
		narrow := make(map[string]bool, len(clientAllowed))
		for _, code := range clientAllowed {
			narrow[strings.ToUpper(strings.TrimSpace(code))] = true
		}
		var filtered []string
		for _, code := range allowed {
			if narrow[strings.ToUpper(code)] {
				filtered = append(filtered, code)
			}
		}
		allowed = filtered
	}

	settlement := s.calculator.SettlementCurrency()
	options := make([]CurrencyOption, 0, len(allowed))
	for _, code := range allowed {
		codeUp := strings.ToUpper(code)
		rate := 1.0
		if codeUp != settlement {
			rate = s.rateSvc.FallbackRate(codeUp)
		}
		breakdown := s.calculator.Compute(amount, codeUp, rate)
		fee := breakdown.FeeTransferINR + breakdown.FeePlatformINR
		options = append(options, CurrencyOption{
			Currency:  codeUp,
			Rate:      rate,
			AmountINR: breakdown.AmountINR,
			FeeINR:    fee,
			NetINR:    breakdown.AmountINR - fee,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].NetINR > options[j].NetINR
	})

	return options
}

// NormalizeHandle trims the payee handle and appends the default provider
// suffix to bare 10-12 digit mobile numbers. Everything else passes through.
func NormalizeHandle(input, defaultSuffix string) string {
	s := strings.TrimSpace(input)
	if defaultSuffix == "" {
		defaultSuffix = "upi"
	}

	if len(s) >= 10 && len(s) <= 12 && isAllDigits(s) {
		return s + "@" + defaultSuffix
	}
	return s
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
