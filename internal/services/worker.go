package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const (
	jobQueueSize     = 100
	pendingBatchSize = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// EnqueueJob queues a résumé for analysis. It reports false when the
	// résumé is already queued or the worker is stopped.
	EnqueueJob(resumeID uuid.UUID) bool
}

type WorkerOptions struct {
	Concurrency  int
	RetryDelay   time.Duration
	PollInterval time.Duration
}

type worker struct {
	repo     repositories.ResumeRepository
	analyzer ResumeAnalysisService
	opts     WorkerOptions
	log      *zap.Logger

	jobQueue chan uuid.UUID
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
	retries  map[uuid.UUID]*time.Timer
	stopped  bool
}

func NewWorker(
	repo repositories.ResumeRepository,
	analyzer ResumeAnalysisService,
	opts WorkerOptions,
	log *zap.Logger,
) Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	return &worker{
		repo:     repo,
		analyzer: analyzer,
		opts:     opts,
		log:      logger.OrNop(log).Named("worker"),
		jobQueue: make(chan uuid.UUID, jobQueueSize),
		stopChan: make(chan struct{}),
		inFlight: make(map[uuid.UUID]struct{}),
		retries:  make(map[uuid.UUID]*time.Timer),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting worker", zap.Int("concurrency", w.opts.Concurrency))

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker. Scheduled retries are cancelled; their résumés
// keep the partial result already saved.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping worker")

		w.mu.Lock()
		w.stopped = true
		for id, timer := range w.retries {
			timer.Stop()
			delete(w.retries, id)
		}
		w.mu.Unlock()

		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("worker stopped")
	})
}

// EnqueueJob implements Worker. A full queue leaves the job to the pending
// poller.
func (w *worker) EnqueueJob(resumeID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		w.log.Warn("worker stopped, job not enqueued", zap.String(logger.FieldResumeID, resumeID.String()))
		return false
	}
	if _, ok := w.inFlight[resumeID]; ok {
		return false
	}

	select {
	case w.jobQueue <- resumeID:
		w.inFlight[resumeID] = struct{}{}
		w.log.Debug("job enqueued", zap.String(logger.FieldResumeID, resumeID.String()))
		return true
	default:
		w.log.Warn("job queue full", zap.String(logger.FieldResumeID, resumeID.String()))
		return false
	}
}

func (w *worker) done(resumeID uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, resumeID)
	w.mu.Unlock()
}

func (w *worker) scheduleRetry(resumeID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if _, ok := w.retries[resumeID]; ok {
		return
	}

	w.retries[resumeID] = time.AfterFunc(w.opts.RetryDelay, func() {
		w.mu.Lock()
		delete(w.retries, resumeID)
		w.mu.Unlock()
		w.EnqueueJob(resumeID)
	})
	w.log.Info("analysis retry scheduled",
		zap.String(logger.FieldResumeID, resumeID.String()),
		zap.Duration("delay", w.opts.RetryDelay),
	)
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker_id", workerID))

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case resumeID := <-w.jobQueue:
			w.process(ctx, log, resumeID)
		}
	}
}

func (w *worker) process(ctx context.Context, log *zap.Logger, resumeID uuid.UUID) {
	retry, err := w.analyzer.AnalyzeResume(ctx, resumeID)
	w.done(resumeID)
	if err != nil {
		log.Error("failed to process job", zap.String(logger.FieldResumeID, resumeID.String()), zap.Error(err))
		return
	}
	if retry {
		w.scheduleRetry(resumeID)
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.repo.FindPending(pendingBatchSize)
			if err != nil {
				w.log.Warn("failed to fetch pending resumes", zap.Error(err))
				continue
			}
			if len(pending) > 0 {
				w.log.Debug("found pending resumes", zap.Int("count", len(pending)))
			}
			for _, resume := range pending {
				w.EnqueueJob(resume.ID)
			}
		}
	}
}
