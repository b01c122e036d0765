package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/CafeApp/internal/config"
	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeConsumer struct {
	mu      sync.Mutex
	handler func(context.Context, payloads.CafeImagePayload) error
	err     error
}

func (f *fakeConsumer) StartConsumingCafeImages(ctx context.Context, handler func(context.Context, payloads.CafeImagePayload) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = handler
	return f.err
}

func (f *fakeConsumer) registered() func(context.Context, payloads.CafeImagePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler
}

type fakeArchive struct {
	got []payloads.CafeImagePayload
}

func (f *fakeArchive) ArchiveCafeImage(ctx context.Context, payload payloads.CafeImagePayload) error {
	f.got = append(f.got, payload)
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode("server"))
	assert.True(t, ValidMode("worker"))
	assert.True(t, ValidMode("migrate"))
	assert.False(t, ValidMode("cron"))
}

func TestRunWorker(t *testing.T) {
	consumer := &fakeConsumer{}
	archive := &fakeArchive{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWorker(ctx, archive, consumer, discardLogger()) }()

	require.Eventually(t, func() bool { return consumer.registered() != nil }, time.Second, 10*time.Millisecond)
	require.NoError(t, consumer.registered()(ctx, payloads.CafeImagePayload{CafeID: 5, ImageURL: "https://img.example.com/x.jpg"}))
	assert.Equal(t, []payloads.CafeImagePayload{{CafeID: 5, ImageURL: "https://img.example.com/x.jpg"}}, archive.got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestRunWorker_Errors(t *testing.T) {
	err := runWorker(context.Background(), nil, nil, discardLogger())
	assert.Error(t, err)

	err = runWorker(context.Background(), &fakeArchive{}, &fakeConsumer{err: errors.New("no channel")}, discardLogger())
	assert.Error(t, err)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{ServerPort: "0"}
	router := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cfg, router, discardLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApp_RunUnknownModeClosesResources(t *testing.T) {
	var order []string
	a := NewApp(&config.Config{}, discardLogger(), nil, nil, nil, nil,
		closerFunc(func() error { order = append(order, "redis"); return nil }),
		closerFunc(func() error { order = append(order, "rabbitmq"); return nil }),
	)

	err := a.Run(context.Background(), "cron")
	assert.Error(t, err)
	assert.Equal(t, []string{"rabbitmq", "redis"}, order)
}
