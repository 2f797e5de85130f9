package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newsatlas/app/cfg"
	"newsatlas/app/checkpoint"
	"newsatlas/app/database"
	"newsatlas/app/pipeline"
	"newsatlas/app/search"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// fallbackScheduleAt is used when the configured schedule cannot be parsed.
const fallbackScheduleAt = "03:00"

type Scheduler struct {
	crawler        CrawlerInterface
	filter         FilterInterface
	checkpoints    *checkpoint.Store
	articleRepo    database.ArticleRepository
	index          *search.Index
	pipelineConfig *pipeline.Config
	scheduleAt     string
	runOnStartup   bool
	workerCount    int
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	taskQueue      chan TaskInterface
}

func NewScheduler(crawler CrawlerInterface, filter FilterInterface,
	checkpoints *checkpoint.Store, articleRepo database.ArticleRepository,
	index *search.Index, pipelineConfig *pipeline.Config) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		crawler:        crawler,
		filter:         filter,
		checkpoints:    checkpoints,
		articleRepo:    articleRepo,
		index:          index,
		pipelineConfig: pipelineConfig,
		scheduleAt:     cfg.ScheduleAt,
		runOnStartup:   cfg.RunOnStartup,
		workerCount:    cfg.WorkerCount,
		ctx:            ctx,
		cancel:         cancel,
		taskQueue:      make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.runOnStartup {
			s.enqueuePipelineRun()
		}

		scheduleAt := s.scheduleAt
		nextRun, err := NextRunAfter(time.Now(), scheduleAt)
		if err != nil {
			slog.Error("Invalid schedule time, using fallback", "schedule_at", scheduleAt, "fallback", fallbackScheduleAt, "error", err)
			scheduleAt = fallbackScheduleAt
			nextRun, _ = NextRunAfter(time.Now(), scheduleAt)
		}
		slog.Info("Pipeline run scheduled", "next_run", nextRun.Format(time.RFC3339))

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				if now.Before(nextRun) {
					continue
				}
				s.enqueuePipelineRun()
				nextRun, _ = NextRunAfter(now, scheduleAt)
				slog.Info("Pipeline run scheduled", "next_run", nextRun.Format(time.RFC3339))
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// NextRunAfter returns the first occurrence of the wall-clock time scheduleAt
// (in "15:04" form) strictly after now, in now's location.
func NextRunAfter(now time.Time, scheduleAt string) (time.Time, error) {
	at, err := time.Parse("15:04", scheduleAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q: %w", scheduleAt, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next, nil
}

func (s *Scheduler) enqueuePipelineRun() {
	task := NewRunPipelineTask(s.crawler, s.filter, s.checkpoints, s.articleRepo, s.index, s.pipelineConfig)
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue RunPipelineTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 30*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
