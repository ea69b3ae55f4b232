package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/stream"
)

const (
	MAX_INTENT_LENGTH = 500
)

type IntentExecutor interface {
	Execute(ctx context.Context, text string, emitter *stream.Emitter) error
}

type StreamTracker interface {
	StartStream(streamID string, endpoint string)
	EndStream(streamID string)
}

type AgentBody struct {
	Intent string `json:"intent"`
}

type AgentHandler struct {
	executor IntentExecutor
	tracker  StreamTracker
}

func NewAgentHandler(executor IntentExecutor, tracker StreamTracker) *AgentHandler {
	return &AgentHandler{
		executor: executor,
		tracker:  tracker,
	}
}

// HandleAgent parses the free-text intent from the body and streams the
// progress of handling it as server-sent events
func (h *AgentHandler) HandleAgent(w http.ResponseWriter, r *http.Request) {
	b := &AgentBody{}
	if err := decodeBody(w, r, b); err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(b.Intent)
	if text == "" {
		JSONError(w, fmt.Errorf("missing field 'intent'"), http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(text) > MAX_INTENT_LENGTH {
		JSONError(w, fmt.Errorf("field 'intent' longer than %d characters", MAX_INTENT_LENGTH), http.StatusBadRequest)
		return
	}

	serve(w, r, h.tracker, "agent", func(ctx context.Context, emitter *stream.Emitter) error {
		return h.executor.Execute(ctx, text, emitter)
	})
}

func serve(w http.ResponseWriter, r *http.Request, tracker StreamTracker, endpoint string, produce stream.Producer) {
	streamID := uuid.NewString()
	if tracker != nil {
		tracker.StartStream(streamID, endpoint)
		defer tracker.EndStream(streamID)
	}

	err := stream.Serve(r.Context(), w, produce)
	if err != nil {
		log.Debug().Err(err).Str("stream", streamID).Str("endpoint", endpoint).Msg("Stream closed with error")
	}
}
