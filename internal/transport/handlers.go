package transport

import (
	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/drivecanvas/designer-backend/internal/pkg/storage"
	"github.com/drivecanvas/designer-backend/internal/service"
)

type SessionHandler struct {
	service service.EditorService
}

func NewSessionHandler(service service.EditorService) *SessionHandler {
	return &SessionHandler{service: service}
}

type JobHandler struct {
	jobs    service.JobService
	credits service.CreditsService
	cost    int64
}

func NewJobHandler(jobs service.JobService, credits service.CreditsService, cost int64) *JobHandler {
	return &JobHandler{jobs: jobs, credits: credits, cost: cost}
}

type CreditsHandler struct {
	service service.CreditsService
}

func NewCreditsHandler(service service.CreditsService) *CreditsHandler {
	return &CreditsHandler{service: service}
}

type StorageHandler struct {
	files storage.Storage
}

func NewStorageHandler(files storage.Storage) *StorageHandler {
	return &StorageHandler{files: files}
}

func sessionResponse(id string, snap editor.Snapshot) entity.SessionResponse {
	return entity.SessionResponse{
		ID:       id,
		Revision: snap.Revision,
		Dirty:    snap.Dirty,
		CanUndo:  snap.CanUndo,
		CanRedo:  snap.CanRedo,
		State:    snap.State,
	}
}

// userID extracts the caller identity. Auth lives in front of this service;
// the header is trusted as-is.
const userIDHeader = "X-User-ID"
const defaultUserID = "demo"
