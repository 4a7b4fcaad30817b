package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"photo-bridge/internal/broadcast"
	"photo-bridge/internal/domain"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/processor"
	"photo-bridge/internal/repository"
	"photo-bridge/internal/storage"
)

type Processor interface {
	Process(path string, mode domain.ProcessingMode) (*processor.Result, error)
}

// Pipeline runs Upload Tasks: process, upload, record, and report each step
// to the status broadcaster. Failures stay inside the task that hit them.
type Pipeline struct {
	processor Processor
	store     storage.ObjectStore
	keys      *storage.KeyGenerator
	photos    repository.PhotoRepository
	status    broadcast.Publisher
	log       logging.Logger
	now       func() time.Time
}

func NewPipeline(
	proc Processor,
	store storage.ObjectStore,
	keys *storage.KeyGenerator,
	photos repository.PhotoRepository,
	status broadcast.Publisher,
	log logging.Logger,
) *Pipeline {
	return &Pipeline{
		processor: proc,
		store:     store,
		keys:      keys,
		photos:    photos,
		status:    status,
		log:       log.With("component", "pipeline"),
		now:       time.Now,
	}
}

// NewTask binds a finalized file to a fresh, never reused object key.
func (p *Pipeline) NewTask(path string, eventID uuid.UUID, mode domain.ProcessingMode) domain.UploadTask {
	name := filepath.Base(path)
	return domain.UploadTask{
		OriginalName:   name,
		SourcePath:     path,
		GeneratedKey:   p.keys.Next(name),
		ProcessingMode: mode,
		EventID:        eventID,
	}
}

// Run processes a file from the watched folder.
func (p *Pipeline) Run(ctx context.Context, task domain.UploadTask) (*domain.Photo, error) {
	log := p.taskLogger(task)
	started := p.now()
	p.status.Publish(ctx, domain.UploadStarted(task.OriginalName))

	result, err := p.processor.Process(task.SourcePath, task.ProcessingMode)
	if err != nil {
		return nil, p.fail(ctx, log, task, withKind(err, domain.ErrProcessing))
	}

	photo, err := p.persist(ctx, log, task, result.Data, result.ContentType)
	if err != nil {
		return nil, p.fail(ctx, log, task, err)
	}

	log.Info(ctx, "uploaded", "url", photo.URL, "bytes", len(result.Data), "elapsed", p.now().Sub(started))
	p.status.Publish(ctx, domain.UploadSucceeded(task.OriginalName, p.now()))
	return photo, nil
}

// Ingest uploads bytes posted by a client as-is, skipping the processor.
func (p *Pipeline) Ingest(ctx context.Context, input domain.ManualUploadInput) (*domain.Photo, error) {
	name := filepath.Base(input.FileName)
	if input.FileName == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrValidation)
	}

	contentType := input.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(input.Data)
	}

	task := domain.UploadTask{
		OriginalName:   name,
		GeneratedKey:   p.keys.Next(name),
		ProcessingMode: domain.ProcessingModeRaw,
		EventID:        input.EventID,
	}
	log := p.taskLogger(task).With("source", "manual")
	p.status.Publish(ctx, domain.UploadStarted(task.OriginalName))

	photo, err := p.persist(ctx, log, task, input.Data, contentType)
	if err != nil {
		return nil, p.fail(ctx, log, task, err)
	}

	log.Info(ctx, "uploaded", "url", photo.URL, "bytes", len(input.Data))
	p.status.Publish(ctx, domain.UploadSucceeded(task.OriginalName, p.now()))
	return photo, nil
}

// persist uploads and then records. A photo row is only written once the
// object is in storage.
func (p *Pipeline) persist(ctx context.Context, log logging.Logger, task domain.UploadTask, data []byte, contentType string) (*domain.Photo, error) {
	url, err := p.store.Put(ctx, task.GeneratedKey, data, contentType)
	if err != nil {
		return nil, withKind(err, domain.ErrStorage)
	}

	photo := &domain.Photo{
		ID:         uuid.New(),
		EventID:    task.EventID,
		URL:        url,
		StorageKey: task.GeneratedKey,
	}
	if err := p.photos.Create(ctx, photo); err != nil {
		log.Warn(ctx, "object left in storage without a photo row", "url", url)
		return nil, fmt.Errorf("%w: record %s: %v", domain.ErrPersistence, task.GeneratedKey, err)
	}
	return photo, nil
}

func (p *Pipeline) fail(ctx context.Context, log logging.Logger, task domain.UploadTask, err error) error {
	log.Error(ctx, "upload task failed", "error", err)
	p.status.Publish(ctx, domain.UploadFailed(task.OriginalName, err))
	return err
}

func (p *Pipeline) taskLogger(task domain.UploadTask) logging.Logger {
	return p.log.With(
		"file", task.OriginalName,
		"key", task.GeneratedKey,
		"event_id", task.EventID,
		"mode", task.ProcessingMode,
	)
}

func withKind(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}
