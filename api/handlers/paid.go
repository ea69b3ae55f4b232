package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/stream"
	"github.com/sprintertech/sprinter-gateway/upstream"
)

type UpstreamOpener interface {
	Open(ctx context.Context, body []byte, header http.Header) (*http.Response, error)
}

type UpstreamErrorBody struct {
	Error   string      `json:"error"`
	Status  int         `json:"status"`
	Details interface{} `json:"details"`
}

type PaidHandler struct {
	upstream UpstreamOpener
	tracker  StreamTracker
}

func NewPaidHandler(upstream UpstreamOpener, tracker StreamTracker) *PaidHandler {
	return &PaidHandler{
		upstream: upstream,
		tracker:  tracker,
	}
}

// HandlePaid forwards the request to the execution service and relays its
// response as server-sent events
func (h *PaidHandler) HandlePaid(w http.ResponseWriter, r *http.Request) {
	if h.upstream == nil {
		JSONError(w, fmt.Errorf("execution service not configured"), http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MAX_BODY_SIZE))
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	b := &AgentBody{}
	if err := json.Unmarshal(body, b); err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(b.Intent) == "" {
		JSONError(w, fmt.Errorf("missing field 'intent'"), http.StatusBadRequest)
		return
	}

	resp, err := h.upstream.Open(r.Context(), body, r.Header)
	if err != nil {
		statusErr := &upstream.StatusError{}
		if errors.As(err, &statusErr) {
			log.Warn().Int("status", statusErr.Status).Msg("Execution service rejected request")
			writeJSON(w, statusErr.Status, UpstreamErrorBody{
				Error:   "upstream request failed",
				Status:  statusErr.Status,
				Details: statusErr.Details(),
			})
			return
		}

		log.Error().Err(err).Msg("Execution service unreachable")
		writeJSON(w, http.StatusBadGateway, UpstreamErrorBody{
			Error:   "upstream request failed",
			Status:  http.StatusBadGateway,
			Details: err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	serve(w, r, h.tracker, "paid", func(ctx context.Context, emitter *stream.Emitter) error {
		return upstream.Relay(ctx, resp.Body, emitter)
	})
}
