package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sprintertech/sprinter-gateway/stream"
)

type OpportunityMonitor interface {
	Run(ctx context.Context, emitter *stream.Emitter) error
}

type MonitorHandler struct {
	monitor OpportunityMonitor
	tracker StreamTracker
}

// NewMonitorHandler creates the monitor handler. A nil monitor disables the endpoint.
func NewMonitorHandler(monitor OpportunityMonitor, tracker StreamTracker) *MonitorHandler {
	return &MonitorHandler{
		monitor: monitor,
		tracker: tracker,
	}
}

// HandleMonitor streams detected opportunities until the caller disconnects
func (h *MonitorHandler) HandleMonitor(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		JSONError(w, fmt.Errorf("opportunity monitor not configured"), http.StatusServiceUnavailable)
		return
	}

	serve(w, r, h.tracker, "monitor", h.monitor.Run)
}
