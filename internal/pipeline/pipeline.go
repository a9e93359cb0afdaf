package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/observability"
)

// BatchExtractor reads up to batchSize raw station input messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer computes the advisory for a raw station input message.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.FireBehaviourAdvisory, error)
}

// BatchLoader publishes advisories to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, advisories []domain.FireBehaviourAdvisory) error
}

// Pipeline orchestrates the extract-compute-publish loop. A station whose
// advisory cannot be computed is logged and counted; it never holds back the
// rest of its batch. Offsets are committed once the batch is published.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil if the pipeline has processed at least one message,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Run executes the batch loop until the context is cancelled. Extract and
// publish failures are retried with exponential backoff.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	retry := newBackoff(initialBackoff, maxBackoff)
	for ctx.Err() == nil {
		if !p.processBatch(ctx, retry) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// processBatch runs one extract-compute-publish cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, retry *backoff) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case err != nil && ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("extract batch failed", "error", err)
		return retry.wait(ctx)
	case len(rawBatch) == 0:
		return true
	}
	retry.reset()

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))

	advisories := p.computeAll(ctx, rawBatch)
	if len(advisories) > 0 && !p.publish(ctx, advisories, retry) {
		return false
	}
	// Commits are cumulative per partition, so nothing in the batch is
	// committed until its advisories are published.
	for _, raw := range rawBatch {
		p.commitOffset(ctx, raw)
	}
	if len(advisories) == 0 {
		return true
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// computeAll returns the advisories that could be computed. Failed messages
// are logged and counted by reason.
func (p *Pipeline) computeAll(ctx context.Context, rawBatch []domain.RawEvent) []domain.FireBehaviourAdvisory {
	advisories := make([]domain.FireBehaviourAdvisory, 0, len(rawBatch))
	for _, raw := range rawBatch {
		adv, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			reason := failureReason(err)
			p.logger.Warn("advisory failed, skipping message",
				"error", err,
				"reason", reason,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.AdvisoryFailures.WithLabelValues(reason).Inc()
			continue
		}
		advisories = append(advisories, adv)
	}
	return advisories
}

// publish retries LoadBatch until it succeeds or ctx is done. Offsets of the
// batch are committed only after a successful publish.
func (p *Pipeline) publish(ctx context.Context, advisories []domain.FireBehaviourAdvisory, retry *backoff) bool {
	for {
		err := p.loader.LoadBatch(ctx, advisories)
		if err == nil {
			p.metrics.MessagesProduced.Add(float64(len(advisories)))
			return true
		}
		p.logger.Error("publish batch failed", "error", err, "batch_size", len(advisories))
		if !retry.wait(ctx) {
			return false
		}
	}
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
