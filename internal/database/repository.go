package database

import (
	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/entity"
)

type SessionRepository interface {
	Save(session *editor.Session) error
	FindByID(id string) (*editor.Session, bool)
	Delete(id string) error
	All() []*editor.Session
}

type JobRepository interface {
	Save(job *entity.EditJob) error
	FindByID(id string) (*entity.EditJob, error)
	SetStatus(id string, status entity.JobStatus, resultKey, errMsg string) error
}

type CreditsRepository interface {
	Get(userID string) (int64, error)
	Debit(userID string, amount int64) (int64, error)
	Topup(userID string, amount int64) (int64, error)
}
