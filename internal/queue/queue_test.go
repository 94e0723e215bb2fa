package queue

import (
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[int](4)

	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	if q.Len() != 5 {
		t.Errorf("Len() = %d, want 5", q.Len())
	}

	for i := 0; i < 5; i++ {
		v, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() returned false for item %d", i)
		}
		if v != i {
			t.Errorf("Pop() = %d, want %d", v, i)
		}
	}
}

func TestQueue_PopEmptyIsIdempotent(t *testing.T) {
	q := New[string](2)
	before := q.Stats()

	for i := 0; i < 3; i++ {
		if v, ok := q.Pop(); ok {
			t.Fatalf("Pop() on empty queue = %q, true", v)
		}
	}

	if after := q.Stats(); after != before {
		t.Errorf("Stats changed by empty Pop: before %+v, after %+v", before, after)
	}
}

func TestQueue_GrowPreservesOrderAcrossWrap(t *testing.T) {
	q := New[int](4)

	// Move head off zero so the ring wraps before growing.
	q.Push(-1)
	q.Push(-2)
	q.Pop()
	q.Pop()

	for i := 0; i < 10; i++ {
		q.Push(i)
	}

	stats := q.Stats()
	if stats.Capacity < 10 {
		t.Errorf("Capacity = %d, want >= 10", stats.Capacity)
	}

	got := q.Drain(0)
	if len(got) != 10 {
		t.Fatalf("Drain(0) returned %d items, want 10", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("item %d = %d, want %d", i, v, i)
		}
	}
}

func TestQueue_DrainLimit(t *testing.T) {
	q := New[int](8)
	for i := 0; i < 5; i++ {
		q.Push(i)
	}

	got := q.Drain(3)
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("Drain(3) = %v, want [0 1 2]", got)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	if got := New[int](1).Drain(0); got != nil {
		t.Errorf("Drain on empty = %v, want nil", got)
	}
}

func TestQueue_ReadySignal(t *testing.T) {
	q := New[int](1)

	select {
	case <-q.Ready():
		t.Fatal("Ready signalled before any Push")
	default:
	}

	q.Push(1)
	q.Push(2)

	select {
	case <-q.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready not signalled after Push")
	}

	// Signals coalesce: two pushes, one pending signal.
	select {
	case <-q.Ready():
		t.Error("expected coalesced signal")
	default:
	}
}

func TestQueue_ConcurrentProducersSingleConsumer(t *testing.T) {
	const producers = 8
	const perProducer = 2000

	type item struct {
		producer int
		seq      int
	}

	q := New[item](16)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(item{producer: p, seq: i})
			}
		}(p)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	next := make([]int, producers)
	total := 0
	consume := func() {
		for {
			it, ok := q.Pop()
			if !ok {
				return
			}
			if it.seq != next[it.producer] {
				t.Fatalf("producer %d: got seq %d, want %d", it.producer, it.seq, next[it.producer])
			}
			next[it.producer]++
			total++
		}
	}

	for {
		select {
		case <-q.Ready():
			consume()
			continue
		case <-done:
		}
		break
	}
	consume()

	if total != producers*perProducer {
		t.Errorf("consumed %d items, want %d", total, producers*perProducer)
	}
	stats := q.Stats()
	if stats.Pushed != stats.Popped+int64(stats.Len) {
		t.Errorf("Pushed %d != Popped %d + Len %d", stats.Pushed, stats.Popped, stats.Len)
	}
	if stats.Len != 0 {
		t.Errorf("Len = %d, want 0", stats.Len)
	}
}
