package handlers

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/pkg/config"
)

type PageHandler struct {
	intakeSvc intakesvc.IIntakeService
	config    *config.Config
	logger    zerolog.Logger
}

func NewPageHandler(intakeSvc intakesvc.IIntakeService, cfg *config.Config, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		intakeSvc: intakeSvc,
		config:    cfg,
		logger:    logger,
	}
}

// Index creates a session and shows a QR pointing the payer at
// /pay?sid=<session>.
func (h *PageHandler) Index(c *gin.Context) {
	sid, err := h.intakeSvc.CreateSession(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create session for landing page")
		c.JSON(http.StatusInternalServerError, domain.ApiResponse{
			Message: "Failed to create session",
			Success: false,
			Status:  http.StatusInternalServerError,
		})
		return
	}

	link := baseURL(&h.config.Server) + "/pay?sid=" + sid.String()
	qr, err := qrDataURL(link)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render QR code")
		c.JSON(http.StatusInternalServerError, domain.ApiResponse{
			Message: "Failed to render QR code",
			Success: false,
			Status:  http.StatusInternalServerError,
		})
		return
	}

	c.HTML(http.StatusOK, "scan_to_pay.html", gin.H{
		"scan_url":    link,
		"qr_data_url": qr,
		"sid":         sid.String(),
	})
}

func (h *PageHandler) PayForm(c *gin.Context) {
	c.HTML(http.StatusOK, "pay_form.html", gin.H{
		"sid": c.Query("sid"),
	})
}

func (h *PageHandler) Processing(c *gin.Context) {
	c.HTML(http.StatusOK, "processing.html", gin.H{
		"id":  c.Query("id"),
		"sid": c.Query("sid"),
	})
}

// baseURL resolves the externally reachable base URL for QR links: the
// configured override wins, then the LAN IP of the default outbound
// interface, then localhost.
func baseURL(cfg *config.ServerConfig) string {
	port := cfg.Port
	if port == "" {
		port = "3000"
	}

	if raw := cfg.PublicBaseURL; raw != "" {
		candidate := raw
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			candidate = "http://" + raw
		}
		if u, err := url.Parse(candidate); err == nil {
			// Trust the configured URL (e.g. an ngrok https endpoint) and
			// do not force-add the port.
			return strings.TrimRight(u.String(), "/")
		}
	}

	if ip := detectLANIP(); ip != "" {
		return "http://" + ip + ":" + port
	}

	return "http://localhost:" + port
}

// detectLANIP uses a UDP connect to discover the default outbound interface
// address. No packets are sent; connect only sets the local address.
func detectLANIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return ""
}
