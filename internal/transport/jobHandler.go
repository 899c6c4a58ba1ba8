package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

func (h *JobHandler) SubmitEdit(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		userID = defaultUserID
	}

	var req entity.SubmitEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.jobs.SubmitEdit(sessionID, userID, req)
	if err != nil {
		switch err {
		case entity.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case entity.ErrEmptyPrompt, entity.ErrNoBoundingBox, entity.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case entity.ErrInsufficientCredits:
			current, _ := h.credits.Get(userID)
			c.JSON(http.StatusPaymentRequired, entity.InsufficientCreditsResponse{
				CurrentCredits:  current,
				RequiredCredits: h.cost,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// Status serves the 2-second poll loop: GET /edits?jobId=...
func (h *JobHandler) Status(c *gin.Context) {
	jobID := c.Query("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId is required"})
		return
	}

	resp, err := h.jobs.Status(jobID)
	if err != nil {
		if err == entity.ErrJobNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) ApplyResult(c *gin.Context) {
	sessionID := c.Param("id")
	jobID := c.Param("jobId")

	snap, err := h.jobs.ApplyResult(sessionID, jobID)
	if err != nil {
		switch err {
		case entity.ErrSessionNotFound, entity.ErrJobNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case entity.ErrJobNotFinished:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, sessionResponse(sessionID, snap))
}
