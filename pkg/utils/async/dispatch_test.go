package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/tnylea/failwhale/pkg/utils/async"
)

// safeBuffer is a thread-safe buffer for concurrent logging
type safeBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (sb *safeBuffer) Write(p []byte) (int, error) {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.Write(p)
}

func (sb *safeBuffer) String() string {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.String()
}

func TestDispatch_RunsHandler(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatch_SurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	async.Dispatch(ctx, func(ctx context.Context) error {
		done <- ctx.Err()
		return nil
	})

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("handler context already cancelled: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatch_LogsHandlerError(t *testing.T) {
	buf := &safeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	ran := make(chan struct{})
	async.Dispatch(ctx, func(ctx context.Context) error {
		defer close(ran)
		return errors.New("sink unavailable")
	})

	<-ran
	waitFor(t, func() bool {
		return strings.Contains(buf.String(), "sink unavailable")
	})
}

func TestDispatch_RecoversPanic(t *testing.T) {
	buf := &safeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	ran := make(chan struct{})
	async.Dispatch(ctx, func(ctx context.Context) error {
		defer close(ran)
		panic("boom")
	})

	<-ran
	waitFor(t, func() bool {
		return strings.Contains(buf.String(), "panic in async handler")
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
