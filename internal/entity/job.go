package entity

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// EditJob is one queued draw-to-edit generation.
type EditJob struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Prompt    string      `json:"prompt"`
	Box       BoundingBox `json:"box"`

	// storage keys for the cropped region, the whole-image context and the
	// subject cutout
	RegionKey   string `json:"region_key"`
	OriginalKey string `json:"original_key"`
	CarMaskURL  string `json:"car_mask_url,omitempty"`

	Status    JobStatus `json:"status"`
	ResultKey string    `json:"result_key,omitempty"`
	Error     string    `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Для сериализации в Redis
func (j *EditJob) MarshalBinary() ([]byte, error) {
	return json.Marshal(j)
}

func (j *EditJob) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, j)
}

// EditTask is the Kafka message handed to the generator worker.
type EditTask struct {
	JobID string `json:"job_id"`
}
