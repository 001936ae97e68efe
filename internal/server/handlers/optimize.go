package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/domain"
)

type OptimizeHandler struct {
	intakeSvc intakesvc.IIntakeService
}

func NewOptimizeHandler(intakeSvc intakesvc.IIntakeService) *OptimizeHandler {
	return &OptimizeHandler{
		intakeSvc: intakeSvc,
	}
}

// OptimizeCurrency ranks the allowed currencies by estimated net settlement
// for a given source amount. Estimates use the fallback table only; no live
// quotes are fetched.
func (h *OptimizeHandler) OptimizeCurrency(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, domain.ApiResponse{
			Message: "amount must be a non-negative number",
			Success: false,
			Status:  http.StatusBadRequest,
		})
		return
	}

	var clientAllowed []string
	if raw := c.Query("allowed"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				clientAllowed = append(clientAllowed, code)
			}
		}
	}

	options := h.intakeSvc.RankCurrencies(amount, clientAllowed)
	c.JSON(http.StatusOK, gin.H{
		"amount":  amount,
		"options": options,
	})
}
