package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/compile-and-cry/GlobePay/internal/application/faq"
	"github.com/compile-and-cry/GlobePay/internal/domain"
)

type FaqHandler struct{}

func NewFaqHandler() *FaqHandler {
	return &FaqHandler{}
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *FaqHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.ApiResponse{
			Message: err.Error(),
			Success: false,
			Status:  http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": faq.Answer(req.Question)})
}
