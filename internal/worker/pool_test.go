package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type mockResult struct {
	id  int
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	id        int
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{id: j.id, err: errors.New("job error")}
	}
	return &mockResult{id: j.id}
}

func TestNewPool(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{5, 5},
		{0, 1},
		{-1, 1},
	}
	for _, tt := range tests {
		if got := NewPool(context.Background(), tt.in).workers; got != tt.want {
			t.Errorf("NewPool(%d).workers = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPool_OrderedResults(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var executed int32
	count := 50
	for i := 0; i < count; i++ {
		// later jobs finish first
		pool.Submit(&mockJob{id: i, duration: time.Duration(count-i) * 100 * time.Microsecond, executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Fatalf("Wait() returned %d results, want %d", len(results), count)
	}
	for i, r := range results {
		if got := r.(*mockResult).id; got != i {
			t.Errorf("results[%d] came from job %d", i, got)
		}
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("executed %d jobs, want %d", executed, count)
	}
}

func TestPool_Errors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Submit(&mockJob{id: 0})
	pool.Submit(&mockJob{id: 1, shouldErr: true})

	results := pool.Wait()
	if results[0].GetError() != nil {
		t.Errorf("results[0] error = %v, want nil", results[0].GetError())
	}
	if results[1].GetError() == nil {
		t.Error("results[1] expected an error")
	}
}

func TestPool_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(ctx, 2)
	pool.Start()

	var executed int32
	for i := 0; i < 5; i++ {
		pool.Submit(&mockJob{id: i, executed: &executed})
	}

	for i, r := range pool.Wait() {
		if !errors.Is(r.GetError(), context.Canceled) {
			t.Errorf("results[%d] error = %v, want context.Canceled", i, r.GetError())
		}
	}
	if executed != 0 {
		t.Errorf("executed %d jobs after cancellation, want 0", executed)
	}
}

func TestMap(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	values, errs := Map(context.Background(), 4, items, func(_ context.Context, n int) (string, error) {
		if n == 7 {
			return "", fmt.Errorf("bad item %d", n)
		}
		return fmt.Sprintf("item-%d", n), nil
	})

	for i, n := range items {
		if n == 7 {
			if errs[i] == nil || values[i] != "" {
				t.Errorf("Map()[%d] = %q, %v, want an error", i, values[i], errs[i])
			}
			continue
		}
		if errs[i] != nil || values[i] != fmt.Sprintf("item-%d", n) {
			t.Errorf("Map()[%d] = %q, %v, want item-%d", i, values[i], errs[i], n)
		}
	}
}

func TestMap_Empty(t *testing.T) {
	values, errs := Map(context.Background(), 4, nil, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if len(values) != 0 || len(errs) != 0 {
		t.Errorf("Map(nil) = %v, %v, want empty", values, errs)
	}
}
