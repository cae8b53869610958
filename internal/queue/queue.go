// Package queue is a Redis list backed job queue. Producers push and return;
// a Worker pops and runs jobs out of band. Failed jobs are parked on a
// per-kind failed list and never retried.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Envelope is a queued job.
type Envelope struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	FailedAt   *time.Time      `json:"failed_at,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Queue pushes jobs to Redis lists named <prefix>:<kind>.
type Queue struct {
	rdb    redis.Cmdable
	prefix string
}

// New creates a Queue on rdb.
func New(rdb redis.Cmdable, prefix string) *Queue {
	if prefix == "" {
		prefix = "jobs"
	}
	return &Queue{rdb: rdb, prefix: prefix}
}

func (q *Queue) key(kind string) string       { return q.prefix + ":" + kind }
func (q *Queue) failedKey(kind string) string { return q.prefix + ":" + kind + ":failed" }

// Enqueue submits a job and returns its id once Redis has accepted it. An
// error here means the job was not submitted.
func (q *Queue) Enqueue(ctx context.Context, kind string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", kind, err)
	}
	env := Envelope{
		ID:         uuid.NewString(),
		Kind:       kind,
		Payload:    body,
		EnqueuedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	if err := q.rdb.LPush(ctx, q.key(kind), data).Err(); err != nil {
		return "", fmt.Errorf("enqueue %s: %w", kind, err)
	}
	return env.ID, nil
}

// Len returns the number of pending jobs of kind.
func (q *Queue) Len(ctx context.Context, kind string) (int64, error) {
	return q.rdb.LLen(ctx, q.key(kind)).Result()
}

// Failed returns the parked failed jobs of kind, newest first.
func (q *Queue) Failed(ctx context.Context, kind string) ([]Envelope, error) {
	raw, err := q.rdb.LRange(ctx, q.failedKey(kind), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Envelope, 0, len(raw))
	for _, r := range raw {
		var env Envelope
		if err := json.Unmarshal([]byte(r), &env); err != nil {
			return nil, fmt.Errorf("decode failed job: %w", err)
		}
		out = append(out, env)
	}
	return out, nil
}

func (q *Queue) park(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.failedKey(env.Kind), data).Err()
}
