package service

import (
	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
)

func (s *creditsService) Get(userID string) (int64, error) {
	credits, err := s.repo.Get(userID)
	if err == entity.ErrUserNotFound {
		// unknown users simply have an empty balance
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return credits, nil
}

func (s *creditsService) Topup(userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, entity.ErrInvalidInput
	}
	balance, err := s.repo.Topup(userID, amount)
	if err != nil {
		return 0, err
	}
	s.bus.Publish(events.TopicCreditsRefresh, userID)
	return balance, nil
}
