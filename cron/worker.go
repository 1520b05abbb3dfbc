package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"carelink/services/billing"
	"carelink/services/directory"
	"carelink/services/store"
)

const TypeTierChange = "billing:tier_change"

// ErrNoTierChange means the completed plan does not move the provider's tier.
var ErrNoTierChange = errors.New("plan does not change tier")

// NewTierChangeTask wraps the tier change a completed checkout pays for as a
// queue task carrying an encoded UpgradeTier action.
func NewTierChangeTask(c billing.Completion) (*asynq.Task, error) {
	tier, ok := c.Plan.Tier()
	if !ok {
		return nil, fmt.Errorf("plan %q: %w", c.Plan, ErrNoTierChange)
	}
	b, err := store.EncodeAction(store.UpgradeTier{ProviderID: c.ProviderID, Tier: tier})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTierChange, b, asynq.MaxRetry(10), asynq.Timeout(30*time.Second)), nil
}

// Enqueuer is the part of *asynq.Client the queue needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue fulfils completions by handing them to the worker.
type Queue struct {
	Client Enqueuer
	Logger *zap.Logger
}

func (q Queue) Fulfil(ctx context.Context, c billing.Completion) error {
	task, err := NewTierChangeTask(c)
	if errors.Is(err, ErrNoTierChange) {
		return nil
	}
	if err != nil {
		return err
	}
	// The checkout session id makes redelivered webhooks collapse into one task.
	info, err := q.Client.EnqueueContext(ctx, task, asynq.TaskID(c.SessionID))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue tier change: %w", err)
	}
	if q.Logger != nil {
		q.Logger.Info("Tier change queued", zap.String("task", info.ID), zap.String("providerId", c.ProviderID))
	}
	return nil
}

// HandleTierChange applies queued tier changes. Failures that a retry cannot
// fix skip the retry queue.
func HandleTierChange(up billing.TierUpgrader, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		action, err := store.DecodeAction(task.Payload())
		if err != nil {
			logger.Error("Invalid tier change payload", zap.Error(err))
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		change, ok := action.(store.UpgradeTier)
		if !ok {
			logger.Error("Unexpected action on tier change queue", zap.String("action", action.Type()))
			return fmt.Errorf("%w: %s: %w", store.ErrUnknownAction, action.Type(), asynq.SkipRetry)
		}

		_, err = up.UpgradeTier(ctx, change.ProviderID, change.Tier)
		switch {
		case err == nil:
			logger.Info("Tier change applied", zap.String("providerId", change.ProviderID), zap.String("tier", string(change.Tier)))
			return nil
		case errors.Is(err, directory.ErrNotFound), errors.Is(err, directory.ErrValidation):
			logger.Error("Tier change rejected", zap.String("providerId", change.ProviderID), zap.Error(err))
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		default:
			logger.Warn("Tier change failed; will retry", zap.String("providerId", change.ProviderID), zap.Error(err))
			return err
		}
	}
}

// Worker runs the billing task server.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewWorker builds a worker bound to the Redis queue database.
func NewWorker(redisOpt asynq.RedisClientOpt, up billing.TierUpgrader, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTierChange, HandleTierChange(up, logger))
	return &Worker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		w.logger.Info("Starting billing worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Failed to start billing worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		w.logger.Error("Billing worker gave up; completions will not be applied until restart")
	}()
}

// Shutdown stops the worker, waiting for active tasks.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
