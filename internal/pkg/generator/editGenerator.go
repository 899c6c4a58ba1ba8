package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/drivecanvas/designer-backend/internal/database"
	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
	"github.com/drivecanvas/designer-backend/internal/pkg/storage"
)

// EditGenerator runs queued draw-to-edit jobs: it takes the cropped region,
// applies the edit transform and pastes the result back into the original at
// the bounding box. The transform itself is a deterministic imaging pipeline;
// model inference lives behind an external endpoint and is not reproduced
// here.
type EditGenerator interface {
	Process(task entity.EditTask) error
}

type editGenerator struct {
	jobs  database.JobRepository
	files storage.Storage
	bus   *events.Bus
}

func NewEditGenerator(jobs database.JobRepository, files storage.Storage, bus *events.Bus) EditGenerator {
	return &editGenerator{jobs: jobs, files: files, bus: bus}
}

func (g *editGenerator) Process(task entity.EditTask) error {
	logrus.Infof("Processing edit job: %s", task.JobID)

	job, err := g.jobs.FindByID(task.JobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %v", err)
	}

	if err := g.jobs.SetStatus(job.ID, entity.JobProcessing, "", ""); err != nil {
		return fmt.Errorf("failed to update status: %v", err)
	}

	resultKey, err := g.run(job)
	if err != nil {
		logrus.Errorf("Edit job %s failed: %v", job.ID, err)
		if serr := g.jobs.SetStatus(job.ID, entity.JobFailed, "", err.Error()); serr != nil {
			logrus.Errorf("Failed to mark job %s failed: %v", job.ID, serr)
		}
		g.bus.Publish(events.TopicJobFailed, job.ID)
		return err
	}

	if err := g.jobs.SetStatus(job.ID, entity.JobCompleted, resultKey, ""); err != nil {
		return fmt.Errorf("failed to update status: %v", err)
	}
	g.bus.Publish(events.TopicJobCompleted, job.ID)

	logrus.Infof("Completed edit job: %s", job.ID)
	return nil
}

func (g *editGenerator) run(job *entity.EditJob) (string, error) {
	region, err := g.loadImage(job.RegionKey)
	if err != nil {
		return "", fmt.Errorf("failed to load region: %v", err)
	}

	original, err := g.loadImage(job.OriginalKey)
	if err != nil {
		return "", fmt.Errorf("failed to load original: %v", err)
	}

	edited := applyEdit(region, job.Prompt)

	// размер региона должен точно соответствовать bounding box
	boxW := int(job.Box.Width)
	boxH := int(job.Box.Height)
	if edited.Bounds().Dx() != boxW || edited.Bounds().Dy() != boxH {
		edited = imaging.Resize(edited, boxW, boxH, imaging.Lanczos)
	}

	result := imaging.Paste(original, edited, image.Pt(int(job.Box.X), int(job.Box.Y)))

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return "", fmt.Errorf("failed to encode result: %v", err)
	}

	resultKey := "results/" + job.ID + ".png"
	if err := g.files.SaveBytes(resultKey, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to store result: %v", err)
	}

	return resultKey, nil
}

func (g *editGenerator) loadImage(key string) (*image.NRGBA, error) {
	data, err := g.files.GetBytes(key)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// applyEdit picks the transform from prompt keywords.
func applyEdit(img *image.NRGBA, prompt string) *image.NRGBA {
	p := strings.ToLower(prompt)

	switch {
	case strings.Contains(p, "blur"):
		return imaging.Blur(img, 4)
	case strings.Contains(p, "mono") || strings.Contains(p, "black and white"):
		return imaging.Grayscale(img)
	case strings.Contains(p, "bright"):
		return imaging.AdjustBrightness(img, 20)
	case strings.Contains(p, "dark"):
		return imaging.AdjustBrightness(img, -20)
	default:
		return imaging.Sharpen(imaging.AdjustSaturation(img, 15), 1)
	}
}

func StartEditGeneratorConsumer(brokers []string, topic, groupID string, gen EditGenerator) {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer reader.Close()

	logrus.Info("Edit generator consumer started...")
	logrus.Infof("Connected to Kafka brokers: %s", brokers)

	for {
		ctx := context.Background()
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			logrus.Errorf("Error reading message from Kafka: %v", err)
			continue
		}

		logrus.Infof("Received message from topic %s [partition %d, offset %d]: %s",
			msg.Topic, msg.Partition, msg.Offset, string(msg.Value))

		var task entity.EditTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			logrus.Errorf("Failed to parse task: %v", err)
			continue
		}

		go func(t entity.EditTask) {
			if err := gen.Process(t); err != nil {
				logrus.Errorf("Processing failed for %s: %v", t.JobID, err)
			}
		}(task)
	}
}
