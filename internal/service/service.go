package service

import (
	"github.com/drivecanvas/designer-backend/internal/database"
	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
	"github.com/drivecanvas/designer-backend/internal/pkg/kafka"
	"github.com/drivecanvas/designer-backend/internal/pkg/render"
	"github.com/drivecanvas/designer-backend/internal/pkg/storage"
)

type EditorService interface {
	CreateSession(req entity.CreateSessionRequest) (*editor.Session, error)
	GetSession(id string) (*editor.Session, error)
	DeleteSession(id string) error
	Dispatch(id string, action entity.Action) (editor.Snapshot, error)
	Undo(id string) (editor.Snapshot, bool, error)
	Redo(id string) (editor.Snapshot, bool, error)
	UndoStroke(id string) (editor.Snapshot, bool, error)
	RedoStroke(id string) (editor.Snapshot, bool, error)
	KeyPress(id, chord string) (editor.Snapshot, editor.Command, error)
	FinalizeDrawToEdit(id string, canvasW, canvasH float64) (editor.Snapshot, error)
	CommitBaseline(id string) (editor.Snapshot, error)
	Export(id string) (string, string, error)
	ExpireIdle(keep func(*editor.Session) bool) []string
}

type JobService interface {
	SubmitEdit(sessionID, userID string, req entity.SubmitEditRequest) (*entity.SubmitEditResponse, error)
	Status(jobID string) (*entity.JobStatusResponse, error)
	ApplyResult(sessionID, jobID string) (editor.Snapshot, error)
}

type CreditsService interface {
	Get(userID string) (int64, error)
	Topup(userID string, amount int64) (int64, error)
}

type editorService struct {
	sessions   database.SessionRepository
	files      storage.Storage
	rasterizer *render.Rasterizer
	bus        *events.Bus
}

func NewEditorService(sessions database.SessionRepository, files storage.Storage, rasterizer *render.Rasterizer, bus *events.Bus) EditorService {
	return &editorService{
		sessions:   sessions,
		files:      files,
		rasterizer: rasterizer,
		bus:        bus,
	}
}

type jobService struct {
	sessions database.SessionRepository
	jobs     database.JobRepository
	credits  database.CreditsRepository
	files    storage.Storage
	producer kafka.Producer
	topic    string
	editCost int64
	bus      *events.Bus
}

func NewJobService(
	sessions database.SessionRepository,
	jobs database.JobRepository,
	credits database.CreditsRepository,
	files storage.Storage,
	producer kafka.Producer,
	topic string,
	editCost int64,
	bus *events.Bus,
) JobService {
	return &jobService{
		sessions: sessions,
		jobs:     jobs,
		credits:  credits,
		files:    files,
		producer: producer,
		topic:    topic,
		editCost: editCost,
		bus:      bus,
	}
}

type creditsService struct {
	repo database.CreditsRepository
	bus  *events.Bus
}

func NewCreditsService(repo database.CreditsRepository, bus *events.Bus) CreditsService {
	return &creditsService{repo: repo, bus: bus}
}
