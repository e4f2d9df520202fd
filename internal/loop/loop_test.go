package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerialRunsInOrder(t *testing.T) {
	s := NewSerial()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()

	var mu sync.Mutex
	var got []int
	finished := make(chan struct{})
	for i := 0; i < 50; i++ {
		i := i
		s.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 49 {
				close(finished)
			}
		})
	}

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not run")
	}

	mu.Lock()
	require.Len(t, got, 50)
	for i, v := range got {
		require.Equal(t, i, v)
	}
	mu.Unlock()

	cancel()
	<-done
}

func TestSerialRecoversFromPanic(t *testing.T) {
	s := NewSerial()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	ran := make(chan struct{})
	s.Post(func() { panic("boom") })
	s.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("loop stopped after panic")
	}
}

func TestSerialNestedPost(t *testing.T) {
	s := NewSerial()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	ran := make(chan struct{})
	s.Post(func() {
		s.Post(func() { close(ran) })
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("nested post did not run")
	}
}

func TestInlineDefersNestedPosts(t *testing.T) {
	var in Inline
	var order []string

	in.Post(func() {
		order = append(order, "outer-start")
		in.Post(func() { order = append(order, "inner") })
		order = append(order, "outer-end")
	})

	require.Equal(t, []string{"outer-start", "outer-end", "inner"}, order)
}
