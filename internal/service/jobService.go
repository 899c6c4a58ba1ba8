package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
)

// SubmitEdit validates, stores the image payloads, debits credits and queues
// the generation task. The balance check is authoritative here: the client's
// optimistic precheck may pass and still fail on the atomic debit.
func (s *jobService) SubmitEdit(sessionID, userID string, req entity.SubmitEditRequest) (*entity.SubmitEditResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, entity.ErrEmptyPrompt
	}

	session, ok := s.sessions.FindByID(sessionID)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	box := req.BoundingBox
	if box == nil {
		if ann := session.Snapshot().State.DrawToEdit; ann != nil {
			box = ann.Box
		}
	}
	if box == nil {
		return nil, entity.ErrNoBoundingBox
	}
	if box.Width <= 0 || box.Height <= 0 {
		return nil, entity.ErrInvalidInput
	}

	regionData, regionExt, err := parseDataURL(req.ImageDataURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image payload: %w", err)
	}
	originalData, originalExt, err := parseDataURL(req.OriginalImageDataURL)
	if err != nil {
		return nil, fmt.Errorf("invalid original image payload: %w", err)
	}

	jobID := uuid.New().String()
	regionKey := "regions/" + jobID + regionExt
	originalKey := "originals/" + jobID + originalExt

	if err := s.files.SaveBytes(regionKey, regionData); err != nil {
		return nil, err
	}
	if err := s.files.SaveBytes(originalKey, originalData); err != nil {
		return nil, err
	}

	job := &entity.EditJob{
		ID:          jobID,
		SessionID:   sessionID,
		Prompt:      req.Prompt,
		Box:         *box,
		RegionKey:   regionKey,
		OriginalKey: originalKey,
		CarMaskURL:  req.CarMaskURL,
		Status:      entity.JobPending,
		CreatedAt:   time.Now(),
	}
	if err := s.jobs.Save(job); err != nil {
		return nil, err
	}

	// the debit happens last before the queue send: any earlier failure must
	// leave the balance untouched, and a send failure refunds
	remaining, err := s.credits.Debit(userID, s.editCost)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(events.TopicCreditsRefresh, userID)

	if err := s.producer.SendMessage(s.topic, entity.EditTask{JobID: jobID}); err != nil {
		// refund: the job never reached the queue
		if _, terr := s.credits.Topup(userID, s.editCost); terr != nil {
			logrus.Errorf("Failed to refund credits for user %s: %v", userID, terr)
		}
		return nil, err
	}

	return &entity.SubmitEditResponse{
		Status:  entity.JobPending,
		JobID:   jobID,
		Credits: remaining,
	}, nil
}

func (s *jobService) Status(jobID string) (*entity.JobStatusResponse, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	resp := &entity.JobStatusResponse{Status: job.Status, Error: job.Error}
	if job.Status == entity.JobCompleted {
		resp.Key = job.ResultKey
		resp.URL = s.files.ResolveURL(job.ResultKey)
	}
	return resp, nil
}

// ApplyResult swaps the completed job's output in as the session background.
// The per-session guard makes this idempotent when two poll ticks race.
func (s *jobService) ApplyResult(sessionID, jobID string) (editor.Snapshot, error) {
	session, ok := s.sessions.FindByID(sessionID)
	if !ok {
		return editor.Snapshot{}, entity.ErrSessionNotFound
	}

	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		return editor.Snapshot{}, err
	}
	if job.Status != entity.JobCompleted {
		return editor.Snapshot{}, entity.ErrJobNotFinished
	}

	if !session.MarkJobApplied(jobID) {
		return session.Snapshot(), nil
	}

	session.Dispatch(entity.Action{
		Type: entity.ActionApplyDrawToEditResult,
		URL:  s.files.ResolveURL(job.ResultKey),
	})
	// the overlay exits to the select tool after applying
	return session.Dispatch(entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolSelect}), nil
}

func parseDataURL(dataURL string) ([]byte, string, error) {
	if dataURL == "" {
		return nil, "", fmt.Errorf("empty data url")
	}

	payload := dataURL
	ext := ".png"
	if strings.HasPrefix(dataURL, "data:") {
		idx := strings.Index(dataURL, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data url")
		}
		header := dataURL[5:idx]
		payload = dataURL[idx+1:]
		switch {
		case strings.HasPrefix(header, "image/jpeg"):
			ext = ".jpg"
		case strings.HasPrefix(header, "image/webp"):
			ext = ".webp"
		}
		if !strings.Contains(header, "base64") {
			return nil, "", fmt.Errorf("unsupported data url encoding")
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, ext, nil
}
