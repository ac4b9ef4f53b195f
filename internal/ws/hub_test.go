package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/logging"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(logging.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = h.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return h
}

func TestHub_BroadcastsBatchProgress(t *testing.T) {
	h := startHub(t)
	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	id := uuid.New()
	h.NotifyBatchProgress(pipeline.Progress{BatchID: id, File: "a.pdf", Processed: 1, Total: 2})

	select {
	case msg := <-c.send:
		var evt BatchProgressEvent
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, "batch_progress", evt.Type)
		assert.Equal(t, id.String(), evt.BatchID)
		assert.Equal(t, "a.pdf", evt.File)
		assert.Equal(t, 1, evt.Processed)
		assert.Equal(t, 2, evt.Total)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_NilSafe(t *testing.T) {
	var h *Hub
	h.Broadcast([]byte("x"))
	h.NotifyBatchProgress(pipeline.Progress{})
	assert.Equal(t, 0, h.ClientCount())
}
