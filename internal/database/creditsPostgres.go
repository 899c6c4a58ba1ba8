package database

import (
	"database/sql"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

type CreditsPostgresRepository struct {
	db *sql.DB
}

func NewCreditsRepository(db *sql.DB) *CreditsPostgresRepository {
	return &CreditsPostgresRepository{db: db}
}

func (r *CreditsPostgresRepository) Get(userID string) (int64, error) {
	var credits int64
	err := r.db.QueryRow(
		`SELECT credits FROM user_credits WHERE user_id = $1`, userID,
	).Scan(&credits)
	if err == sql.ErrNoRows {
		return 0, entity.ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return credits, nil
}

// Debit subtracts atomically; the WHERE guard makes the balance the single
// authority, so two concurrent submissions cannot both pass.
func (r *CreditsPostgresRepository) Debit(userID string, amount int64) (int64, error) {
	var remaining int64
	err := r.db.QueryRow(
		`UPDATE user_credits
		    SET credits = credits - $2, updated_at = CURRENT_TIMESTAMP
		  WHERE user_id = $1 AND credits >= $2
		 RETURNING credits`,
		userID, amount,
	).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, entity.ErrInsufficientCredits
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *CreditsPostgresRepository) Topup(userID string, amount int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(
		`INSERT INTO user_credits (user_id, credits)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id)
		 DO UPDATE SET credits = user_credits.credits + $2, updated_at = CURRENT_TIMESTAMP
		 RETURNING credits`,
		userID, amount,
	).Scan(&balance)
	if err != nil {
		return 0, err
	}
	return balance, nil
}
