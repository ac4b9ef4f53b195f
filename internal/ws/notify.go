package ws

import (
	"encoding/json"
	"time"

	"resume-match/internal/pipeline"
)

type BatchProgressEvent struct {
	Type      string `json:"type"`
	BatchID   string `json:"batch_id"`
	File      string `json:"file"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}

// NotifyBatchProgress fits pipeline.ProgressFunc.
func (h *Hub) NotifyBatchProgress(p pipeline.Progress) {
	if h == nil {
		return
	}

	evt := BatchProgressEvent{
		Type:      "batch_progress",
		BatchID:   p.BatchID.String(),
		File:      p.File,
		Processed: p.Processed,
		Total:     p.Total,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
