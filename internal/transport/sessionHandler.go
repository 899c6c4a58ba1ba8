package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req entity.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.CreateSession(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(session.ID, session.Snapshot()))
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")

	session, err := h.service.GetSession(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(id, session.Snapshot()))
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteSession(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

func (h *SessionHandler) Dispatch(c *gin.Context) {
	id := c.Param("id")

	var req entity.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.service.Dispatch(id, req.Action)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(id, snap))
}

func (h *SessionHandler) Undo(c *gin.Context) {
	id := c.Param("id")

	snap, applied, err := h.service.Undo(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied, "session": sessionResponse(id, snap)})
}

func (h *SessionHandler) Redo(c *gin.Context) {
	id := c.Param("id")

	snap, applied, err := h.service.Redo(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied, "session": sessionResponse(id, snap)})
}

func (h *SessionHandler) UndoStroke(c *gin.Context) {
	id := c.Param("id")

	snap, applied, err := h.service.UndoStroke(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied, "session": sessionResponse(id, snap)})
}

func (h *SessionHandler) RedoStroke(c *gin.Context) {
	id := c.Param("id")

	snap, applied, err := h.service.RedoStroke(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied, "session": sessionResponse(id, snap)})
}

func (h *SessionHandler) KeyPress(c *gin.Context) {
	id := c.Param("id")

	var req entity.KeyPressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, cmd, err := h.service.KeyPress(id, req.Chord)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"command": string(cmd), "session": sessionResponse(id, snap)})
}

type finalizeRequest struct {
	CanvasWidth  float64 `json:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight"`
}

func (h *SessionHandler) FinalizeDrawToEdit(c *gin.Context) {
	id := c.Param("id")

	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.service.FinalizeDrawToEdit(id, req.CanvasWidth, req.CanvasHeight)
	if err != nil {
		switch err {
		case entity.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, sessionResponse(id, snap))
}

func (h *SessionHandler) CommitBaseline(c *gin.Context) {
	id := c.Param("id")

	snap, err := h.service.CommitBaseline(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(id, snap))
}

func (h *SessionHandler) Export(c *gin.Context) {
	id := c.Param("id")

	key, url, err := h.service.Export(id)
	if err != nil {
		if err == entity.ErrSessionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.UploadResponse{Key: key, URL: url})
}
