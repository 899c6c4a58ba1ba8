package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
	"github.com/drivecanvas/designer-backend/internal/service"
)

// SessionJanitor drops sessions that have been idle longer than maxIdle. The
// document is session-scoped by design, so expiry only discards unsaved
// transient state.
type SessionJanitor struct {
	editorService service.EditorService
	bus           *events.Bus
	interval      time.Duration
	maxIdle       time.Duration
}

func NewSessionJanitor(editorService service.EditorService, bus *events.Bus, interval, maxIdle time.Duration) *SessionJanitor {
	return &SessionJanitor{
		editorService: editorService,
		bus:           bus,
		interval:      interval,
		maxIdle:       maxIdle,
	}
}

func (w *SessionJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Session janitor started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Session janitor stopped")
			return
		case <-ticker.C:
			w.expireIdleSessions()
		}
	}
}

func (w *SessionJanitor) expireIdleSessions() {
	cutoff := time.Now().Add(-w.maxIdle)

	expired := w.editorService.ExpireIdle(func(s *editor.Session) bool {
		return s.IdleSince().After(cutoff)
	})

	if len(expired) == 0 {
		return
	}

	for _, id := range expired {
		w.bus.Publish(events.TopicSessionExpired, id)
	}
	logrus.Infof("Expired %d idle sessions", len(expired))
}
