package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

func (h *CreditsHandler) GetCredits(c *gin.Context) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		userID = defaultUserID
	}

	credits, err := h.service.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.CreditsResponse{Credits: credits})
}

type topupRequest struct {
	Amount int64 `json:"amount"`
}

func (h *CreditsHandler) Topup(c *gin.Context) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		userID = defaultUserID
	}

	var req topupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.service.Topup(userID, req.Amount)
	if err != nil {
		if err == entity.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.CreditsResponse{Credits: balance})
}
