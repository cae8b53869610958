package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Handler runs one kind of job.
type Handler interface {
	Handle(ctx context.Context, job Envelope) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, job Envelope) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, job Envelope) error {
	return f(ctx, job)
}

// WorkerConfig tunes a Worker.
type WorkerConfig struct {
	// Block is how long a pop waits for a job before checking ctx again.
	Block time.Duration
	// JobTimeout bounds a single handler call.
	JobTimeout time.Duration
	// ErrorBackoff is the pause after a Redis error.
	ErrorBackoff time.Duration
}

// Worker pops jobs of its registered kinds and runs their handlers.
type Worker struct {
	q        *Queue
	rdb      redis.Cmdable
	log      zerolog.Logger
	handlers map[string]Handler
	cfg      WorkerConfig
}

// NewWorker creates a Worker reading from q.
func NewWorker(q *Queue, log zerolog.Logger, cfg WorkerConfig) *Worker {
	if cfg.Block <= 0 {
		cfg.Block = 5 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		q:        q,
		rdb:      q.rdb,
		log:      log.With().Str("component", "queue_worker").Logger(),
		handlers: map[string]Handler{},
		cfg:      cfg,
	}
}

// Register routes jobs of kind to h.
func (w *Worker) Register(kind string, h Handler) {
	w.handlers[kind] = h
}

func (w *Worker) keys() []string {
	keys := make([]string, 0, len(w.handlers))
	for kind := range w.handlers {
		keys = append(keys, w.q.key(kind))
	}
	sort.Strings(keys)
	return keys
}

// Run processes jobs until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	keys := w.keys()
	if len(keys) == 0 {
		return errors.New("queue worker has no handlers")
	}
	w.log.Info().Strs("queues", keys).Msg("worker started")

	for {
		if ctx.Err() != nil {
			w.log.Info().Msg("worker stopped")
			return nil
		}

		res, err := w.rdb.BRPop(ctx, w.cfg.Block, keys...).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.log.Error().Err(err).Msg("pop failed")
			select {
			case <-ctx.Done():
			case <-time.After(w.cfg.ErrorBackoff):
			}
			continue
		}
		// res is [key, value]
		w.process(ctx, res[1])
	}
}

// Drain runs every job currently queued and returns how many ran. Jobs
// that fail are parked and still counted.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	n := 0
	for _, key := range w.keys() {
		for {
			raw, err := w.rdb.RPop(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				break
			}
			if err != nil {
				return n, fmt.Errorf("pop %s: %w", key, err)
			}
			w.process(ctx, raw)
			n++
		}
	}
	return n, nil
}

func (w *Worker) process(ctx context.Context, raw string) {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		w.log.Error().Err(err).Str("raw", truncate(raw, 256)).Msg("dropping undecodable job")
		return
	}
	log := w.log.With().Str("job_id", env.ID).Str("kind", env.Kind).Logger()

	h, ok := w.handlers[env.Kind]
	if !ok {
		w.fail(ctx, env, fmt.Errorf("no handler for kind %q", env.Kind))
		return
	}

	start := time.Now()
	if err := w.run(ctx, h, env); err != nil {
		w.fail(ctx, env, err)
		return
	}
	log.Info().Dur("took", time.Since(start)).Msg("job done")
}

func (w *Worker) run(ctx context.Context, h Handler, env Envelope) (err error) {
	jobCtx, cancel := context.WithTimeout(ctx, w.cfg.JobTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return h.Handle(jobCtx, env)
}

func (w *Worker) fail(ctx context.Context, env Envelope, cause error) {
	now := time.Now().UTC()
	env.FailedAt = &now
	env.Error = cause.Error()
	w.log.Error().Err(cause).Str("job_id", env.ID).Str("kind", env.Kind).Msg("job failed")
	if err := w.q.park(context.WithoutCancel(ctx), env); err != nil {
		w.log.Error().Err(err).Str("job_id", env.ID).Msg("could not park failed job")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
