package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer blocks in Start until Shutdown is called.
type fakeServer struct {
	startErr    error
	shutdownErr error
	stopped     chan struct{}
	once        sync.Once
	mu          sync.Mutex
	started     bool
	shutdown    bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{})}
}

func (f *fakeServer) Start(ctx context.Context) error {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	f.shutdown = true
	f.mu.Unlock()
	f.once.Do(func() { close(f.stopped) })
	return f.shutdownErr
}

func (f *fakeServer) isStarted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *fakeServer) isShutdown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunServer(t *testing.T) {
	t.Run("stops every server on cancel", func(t *testing.T) {
		api := newFakeServer()
		metricsServer := newFakeServer()
		ctx, cancel := context.WithCancel(context.Background())

		result := make(chan error, 1)
		go func() { result <- RunServer(ctx, discardLogger(), "test", time.Second, api, metricsServer) }()

		require.Eventually(t, func() bool { return api.isStarted() && metricsServer.isStarted() },
			time.Second, time.Millisecond)
		cancel()

		select {
		case err := <-result:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop")
		}
		assert.True(t, api.isShutdown())
		assert.True(t, metricsServer.isShutdown())
	})

	t.Run("start failure shuts down the others", func(t *testing.T) {
		api := newFakeServer()
		api.startErr = errors.New("address already in use")
		metricsServer := newFakeServer()

		err := RunServer(context.Background(), discardLogger(), "test", time.Second, api, metricsServer)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
		assert.True(t, metricsServer.isShutdown())
	})

	t.Run("shutdown errors are returned", func(t *testing.T) {
		api := newFakeServer()
		api.shutdownErr = errors.New("deadline exceeded")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := RunServer(ctx, discardLogger(), "test", time.Second, api)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadline exceeded")
	})
}

type fakeConsumer struct {
	err error
}

func (f *fakeConsumer) Run(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return nil
}

func TestRunConsumer(t *testing.T) {
	t.Run("stops on cancel", func(t *testing.T) {
		metricsServer := newFakeServer()
		ctx, cancel := context.WithCancel(context.Background())

		result := make(chan error, 1)
		go func() { result <- RunConsumer(ctx, discardLogger(), time.Second, &fakeConsumer{}, metricsServer) }()

		require.Eventually(t, metricsServer.isStarted, time.Second, time.Millisecond)
		cancel()

		select {
		case err := <-result:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("consumer did not stop")
		}
		assert.True(t, metricsServer.isShutdown())
	})

	t.Run("consumer failure stops the process", func(t *testing.T) {
		metricsServer := newFakeServer()
		consumer := &fakeConsumer{err: errors.New("unknown topic")}

		err := RunConsumer(context.Background(), discardLogger(), time.Second, consumer, metricsServer)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "consumer error: unknown topic")
		assert.True(t, metricsServer.isShutdown())
	})
}
