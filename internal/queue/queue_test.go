package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type greeting struct {
	Name string `json:"name"`
}

func newTestQueue(t *testing.T) (*Queue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, "test"), mr
}

func TestEnqueue(t *testing.T) {
	q, mr := newTestQueue(t)

	id, err := q.Enqueue(context.Background(), "Greet", greeting{Name: "Ana"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if id == "" {
		t.Fatal("empty job id")
	}

	items, err := mr.List("test:Greet")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 queued job, got %d", len(items))
	}
	var env Envelope
	if err := json.Unmarshal([]byte(items[0]), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.ID != id || env.Kind != "Greet" {
		t.Errorf("unexpected envelope %+v", env)
	}
	if string(env.Payload) != `{"name":"Ana"}` {
		t.Errorf("payload = %s", env.Payload)
	}
}

func TestEnqueue_RedisDown(t *testing.T) {
	q, mr := newTestQueue(t)
	mr.Close()

	if _, err := q.Enqueue(context.Background(), "Greet", greeting{Name: "Ana"}); err == nil {
		t.Fatal("expected submission error")
	}
}

func TestDrain_RunsHandlers(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Bruno"} {
		if _, err := q.Enqueue(ctx, "Greet", greeting{Name: name}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	var got []string
	w := NewWorker(q, zerolog.Nop(), WorkerConfig{})
	w.Register("Greet", HandlerFunc(func(_ context.Context, job Envelope) error {
		var g greeting
		if err := json.Unmarshal(job.Payload, &g); err != nil {
			return err
		}
		got = append(got, g.Name)
		return nil
	}))

	n, err := w.Drain(ctx)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 jobs, got %d", n)
	}
	// LPUSH + RPOP is FIFO
	if len(got) != 2 || got[0] != "Ana" || got[1] != "Bruno" {
		t.Errorf("handled %v", got)
	}
	if l, _ := q.Len(ctx, "Greet"); l != 0 {
		t.Errorf("expected empty queue, got %d", l)
	}
}

func TestDrain_ParksFailedJobs(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	if _, err := q.Enqueue(ctx, "Greet", greeting{Name: "Ana"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := q.Enqueue(ctx, "Greet", greeting{Name: "Bruno"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	calls := 0
	w := NewWorker(q, zerolog.Nop(), WorkerConfig{})
	w.Register("Greet", HandlerFunc(func(_ context.Context, job Envelope) error {
		calls++
		if calls == 1 {
			return errors.New("smtp: connection refused")
		}
		panic("template exploded")
	}))

	if _, err := w.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if calls != 2 {
		t.Fatalf("failed jobs must not be retried, got %d calls", calls)
	}

	failed, err := q.Failed(ctx, "Greet")
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("expected 2 parked jobs, got %d", len(failed))
	}
	for _, f := range failed {
		if f.Error == "" || f.FailedAt == nil {
			t.Errorf("parked job missing failure details: %+v", f)
		}
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handled := make(chan string, 1)
	w := NewWorker(q, zerolog.Nop(), WorkerConfig{Block: time.Second})
	w.Register("Greet", HandlerFunc(func(_ context.Context, job Envelope) error {
		handled <- job.ID
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	id, err := q.Enqueue(ctx, "Greet", greeting{Name: "Ana"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case got := <-handled:
		if got != id {
			t.Errorf("handled %s, want %s", got, id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("job was not handled")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestRun_NoHandlers(t *testing.T) {
	q, _ := newTestQueue(t)
	w := NewWorker(q, zerolog.Nop(), WorkerConfig{})

	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error without handlers")
	}
}
