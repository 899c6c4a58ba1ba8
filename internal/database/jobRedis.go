package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

// jobs are short-lived; finished ones expire on their own
const jobTTL = 24 * time.Hour

type JobRedisRepository struct {
	client *redis.Client
	ctx    context.Context
}

func NewJobRepository(redisClient *redis.Client) (*JobRedisRepository, error) {

	ctx := context.Background()

	// Проверка подключения
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &JobRedisRepository{
		client: redisClient,
		ctx:    ctx,
	}, nil
}

func (r *JobRedisRepository) Save(job *entity.EditJob) error {
	jobKey := fmt.Sprintf("edit-job:%s", job.ID)
	job.UpdatedAt = time.Now()
	if err := r.client.Set(r.ctx, jobKey, job, jobTTL).Err(); err != nil {
		return err
	}

	// индекс по сессии
	sessionKey := fmt.Sprintf("edit-job:session:%s", job.SessionID)
	return r.client.SAdd(r.ctx, sessionKey, job.ID).Err()
}

func (r *JobRedisRepository) FindByID(id string) (*entity.EditJob, error) {
	jobKey := fmt.Sprintf("edit-job:%s", id)
	data, err := r.client.Get(r.ctx, jobKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, entity.ErrJobNotFound
		}
		return nil, err
	}

	var job entity.EditJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *JobRedisRepository) SetStatus(id string, status entity.JobStatus, resultKey, errMsg string) error {
	job, err := r.FindByID(id)
	if err != nil {
		return err
	}

	job.Status = status
	job.ResultKey = resultKey
	job.Error = errMsg
	job.UpdatedAt = time.Now()

	jobKey := fmt.Sprintf("edit-job:%s", id)
	return r.client.Set(r.ctx, jobKey, job, jobTTL).Err()
}
