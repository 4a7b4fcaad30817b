// Package bridge owns the single active watch session and feeds every file
// it finalizes through the upload pipeline.
package bridge

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"photo-bridge/internal/broadcast"
	"photo-bridge/internal/domain"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/repository"
	"photo-bridge/internal/watcher"
)

const DefaultMaxConcurrentTasks = 4

type Service interface {
	Start(ctx context.Context, input domain.StartBridgeInput) (*domain.WatchSession, error)
	// Stop reports whether a session was running. Stopping while idle is not an error.
	Stop(ctx context.Context) bool
	Status() domain.BridgeStatus
}

// Detector is the part of watcher.Detector the manager depends on.
type Detector interface {
	Events() <-chan string
	Errors() <-chan error
	Close() error
}

type WatchFunc func(root string) (Detector, error)

// FSWatch returns a WatchFunc backed by fsnotify.
func FSWatch(opts watcher.Options) WatchFunc {
	return func(root string) (Detector, error) {
		d, err := watcher.Watch(root, opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

type activeSession struct {
	session  domain.WatchSession
	detector Detector
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

type Manager struct {
	mu     sync.Mutex
	active *activeSession

	watch    WatchFunc
	events   repository.EventRepository
	pipeline *Pipeline
	status   broadcast.Publisher
	log      logging.Logger

	sem   *semaphore.Weighted
	tasks sync.WaitGroup
	now   func() time.Time
}

func NewManager(
	watch WatchFunc,
	events repository.EventRepository,
	pipeline *Pipeline,
	status broadcast.Publisher,
	log logging.Logger,
	maxConcurrentTasks int,
) *Manager {
	if maxConcurrentTasks <= 0 {
		maxConcurrentTasks = DefaultMaxConcurrentTasks
	}
	return &Manager{
		watch:    watch,
		events:   events,
		pipeline: pipeline,
		status:   status,
		log:      log.With("component", "bridge"),
		sem:      semaphore.NewWeighted(int64(maxConcurrentTasks)),
		now:      time.Now,
	}
}

// Start replaces whatever session is running with a new one. Invalid input
// is rejected before the current session is touched. If the new folder
// cannot be watched the manager ends up idle.
func (m *Manager) Start(ctx context.Context, input domain.StartBridgeInput) (*domain.WatchSession, error) {
	input.Normalize()
	eventID, err := validateStart(input)
	if err != nil {
		return nil, err
	}

	event, err := m.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked(ctx)

	detector, err := m.watch(input.FolderPath)
	if err != nil {
		err = withKind(err, domain.ErrWatchEstablish)
		m.log.Error(ctx, "watch not established", "folder", input.FolderPath, "error", err)
		m.status.Publish(ctx, domain.UploadFailed(input.FolderPath, err))
		return nil, err
	}

	sessionCtx, cancel := context.WithCancel(context.Background())
	a := &activeSession{
		session: domain.WatchSession{
			FolderPath:     input.FolderPath,
			EventID:        eventID,
			ProcessingMode: input.ProcessingMode,
			StartedAt:      m.now(),
		},
		detector: detector,
		ctx:      sessionCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	m.active = a
	go m.consume(a)

	m.log.Info(ctx, "bridge started",
		"folder", input.FolderPath,
		"event_id", eventID,
		"mode", input.ProcessingMode,
	)

	session := a.session
	return &session, nil
}

func (m *Manager) Stop(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	stopped := m.stopLocked(ctx)
	if stopped {
		m.log.Info(ctx, "bridge stopped")
	}
	return stopped
}

func (m *Manager) Status() domain.BridgeStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return domain.BridgeStatus{}
	}
	session := m.active.session
	return domain.BridgeStatus{Active: true, WatchSession: &session}
}

// Shutdown stops the session and waits for in-flight tasks until ctx ends.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.Stop(ctx)

	done := make(chan struct{})
	go func() {
		m.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every spawned Upload Task has finished.
func (m *Manager) Wait() {
	m.tasks.Wait()
}

// stopLocked tears the active session down completely: once it returns the
// old detector is closed and its consumer has exited. m.mu must be held.
func (m *Manager) stopLocked(ctx context.Context) bool {
	a := m.active
	if a == nil {
		return false
	}
	a.cancel()
	if err := a.detector.Close(); err != nil {
		m.log.Warn(ctx, "closing detector", "folder", a.session.FolderPath, "error", err)
	}
	<-a.done
	m.active = nil
	return true
}

func (m *Manager) consume(a *activeSession) {
	defer close(a.done)

	events := a.detector.Events()
	errs := a.detector.Errors()
	for {
		select {
		case <-a.ctx.Done():
			return
		case path, ok := <-events:
			if !ok {
				return
			}
			if a.ctx.Err() != nil {
				return
			}
			m.spawn(a, path)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			m.log.Warn(a.ctx, "watcher error", "folder", a.session.FolderPath, "error", err)
		}
	}
}

// spawn starts one Upload Task. It blocks while the concurrency bound is
// reached, and gives up if the session is stopped meanwhile. Tasks run on a
// background context so stopping never cancels them.
func (m *Manager) spawn(a *activeSession, path string) {
	if err := m.sem.Acquire(a.ctx, 1); err != nil {
		return
	}

	task := m.pipeline.NewTask(path, a.session.EventID, a.session.ProcessingMode)
	m.tasks.Add(1)
	go func() {
		defer m.tasks.Done()
		defer m.sem.Release(1)
		_, _ = m.pipeline.Run(context.Background(), task)
	}()
}

func validateStart(input domain.StartBridgeInput) (uuid.UUID, error) {
	if strings.TrimSpace(input.FolderPath) == "" || strings.TrimSpace(input.EventID) == "" {
		return uuid.Nil, fmt.Errorf("%w: folder_path and event_id are required", domain.ErrValidation)
	}
	eventID, err := uuid.Parse(input.EventID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid event_id", domain.ErrValidation)
	}
	if !input.ProcessingMode.IsValid() {
		return uuid.Nil, fmt.Errorf("%w: processing_mode must be raw or compressed", domain.ErrValidation)
	}
	return eventID, nil
}
