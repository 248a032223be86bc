package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

type memoryAuditRepo struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (r *memoryAuditRepo) Insert(_ context.Context, entry *ports.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryAuditRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestAuditDispatcher_DeliversEntries(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, subject := range []string{"alice", "bob", "carol", "alice"} {
		d.Record(ports.AuditEntry{Subject: subject, Action: "login", Outcome: "success", Timestamp: time.Now()})
	}

	deadline := time.After(2 * time.Second)
	for repo.len() < 4 {
		select {
		case <-deadline:
			t.Fatalf("expected 4 entries persisted, got %d", repo.len())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAuditDispatcher_ShardingIsStable(t *testing.T) {
	d := NewAuditDispatcher(4, &memoryAuditRepo{}, zerolog.Nop())

	for _, subject := range []string{"alice", "bob", "user_42"} {
		first := d.shardIndex(subject)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(subject); got != first {
				t.Fatalf("subject %q: shard changed from %d to %d", subject, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("subject %q: shard %d out of range", subject, first)
		}
	}
}

func TestAuditDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewAuditDispatcher(0, &memoryAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestAuditDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	// Workers never started: the channel fills and further records must
	// return without blocking.

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(ports.AuditEntry{Subject: "alice", Action: "login", Outcome: "failure"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full queue")
	}
}
