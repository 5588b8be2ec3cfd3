package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Job is one queued reconciliation request.
type Job struct {
	ID     string   `json:"id"`
	Lines  []string `json:"-"`
	Params string   `json:"params"`
}

// ChunkMessage is what gets published per report segment; subscribers
// post each one individually to the chat channel.
type ChunkMessage struct {
	JobID   string `json:"job_id"`
	Seq     int    `json:"seq"`
	Total   int    `json:"total"`
	Content string `json:"content"`
}

// WorkerPool runs reconciliation jobs off an HTTP request's critical path
// and publishes the resulting report chunks to NATS. Runs never share
// mutable state, so workers need no coordination beyond the queue.
type WorkerPool struct {
	jobQueue    chan Job
	workerCount int
	reconciler  *Reconciler
	js          nats.JetStreamContext
	logger      *zap.Logger
}

func NewWorkerPool(workerCount int, bufferSize int, reconciler *Reconciler, js nats.JetStreamContext, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		jobQueue:    make(chan Job, bufferSize),
		workerCount: workerCount,
		reconciler:  reconciler,
		js:          js,
		logger:      logger,
	}
}

func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(ctx, i)
	}
	p.logger.Info("started reconcile worker pool", zap.Int("workers", p.workerCount))
}

// Submit enqueues a job. It reports false when the queue is full rather
// than blocking the caller.
func (p *WorkerPool) Submit(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		p.logger.Warn("reconcile job queue full, rejecting job", zap.String("job_id", job.ID))
		return false
	}
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.process(id, job)
		}
	}
}

func (p *WorkerPool) process(workerID int, job Job) {
	p.logger.Debug("worker picked up reconcile job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID),
		zap.Int("lines", len(job.Lines)),
	)

	result := p.reconciler.Run(job.Lines, job.Params)

	subject := fmt.Sprintf("reports.%s", job.ID)
	for i, chunk := range result.Chunks {
		data, err := json.Marshal(ChunkMessage{
			JobID:   job.ID,
			Seq:     i + 1,
			Total:   len(result.Chunks),
			Content: chunk,
		})
		if err != nil {
			p.logger.Error("failed to marshal report chunk", zap.Error(err))
			continue
		}
		if _, err := p.js.Publish(subject, data); err != nil {
			p.logger.Error("failed to publish report chunk",
				zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}
