package upstream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/stream"
)

const (
	MAX_ERROR_BODY = 64 * 1024
	MAX_LINE       = 1024 * 1024
)

// StatusError is returned when the execution service answers with a non-2xx
// status.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.Status)
}

// Details returns the upstream body as JSON when possible, otherwise as text.
func (e *StatusError) Details() interface{} {
	trimmed := bytes.TrimSpace(e.Body)
	if json.Valid(trimmed) && len(trimmed) > 0 {
		return json.RawMessage(trimmed)
	}
	return string(trimmed)
}

type Client struct {
	url        string
	apiKey     string
	HTTPClient *http.Client
}

// NewClient creates an execution service client authenticating with its own
// apiKey. The timeout bounds the wait for response headers only so long
// running streams are not cut off.
func NewClient(url string, apiKey string, timeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &Client{
		url:    strings.TrimSuffix(url, "/"),
		apiKey: apiKey,
		HTTPClient: &http.Client{
			Transport: transport,
		},
	}
}

// Open forwards the request body and returns the streaming response. Caller
// credentials are never forwarded. The caller owns the response body.
func (c *Client) Open(ctx context.Context, body []byte, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if v := header.Get("X-Request-Id"); v != "" {
		req.Header.Set("X-Request-Id", v)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, MAX_ERROR_BODY))
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   data,
		}
	}
	return resp, nil
}

// relay accumulates one server-sent event at a time.
type relay struct {
	emitter   *stream.Emitter
	eventType string
	data      []string
	terminal  bool
}

func (r *relay) emit(eventType string, data string) error {
	event := toEvent(eventType, data)
	if err := r.emitter.Emit(event); err != nil {
		return err
	}
	r.terminal = event.Terminal()
	return nil
}

// dispatch emits the pending event, if any, and resets the frame.
func (r *relay) dispatch() error {
	defer func() {
		r.eventType = ""
		r.data = r.data[:0]
	}()

	if len(r.data) == 0 {
		return nil
	}
	return r.emit(r.eventType, strings.Join(r.data, "\n"))
}

// Relay re-frames an upstream body as stream events. Server-sent event frames
// keep their event type and multi-line data is joined. Bare lines become log
// events. A result is emitted on clean end of input if upstream sent no
// terminal event.
func Relay(ctx context.Context, body io.Reader, emitter *stream.Emitter) error {
	reader := bufio.NewScanner(body)
	reader.Buffer(make([]byte, 0, 4096), MAX_LINE)

	r := &relay{emitter: emitter}
	for !r.terminal && reader.Scan() {
		line := strings.TrimRight(reader.Text(), "\r")
		name, value, isField := field(line)

		var err error
		switch {
		case line == "":
			err = r.dispatch()
		case strings.HasPrefix(line, ":"):
		case isField && name == "event":
			r.eventType = strings.TrimSpace(value)
		case isField && name == "data":
			r.data = append(r.data, value)
		case isField:
			// id and retry only matter to a reconnecting client
		default:
			if err = r.dispatch(); err == nil && !r.terminal {
				err = r.emit("", strings.TrimSpace(line))
			}
		}
		if err != nil {
			return err
		}
	}
	if err := reader.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("upstream stream interrupted: %w", err)
	}
	if !r.terminal {
		if err := r.dispatch(); err != nil {
			return err
		}
	}

	if !r.terminal {
		log.Debug().Msg("Upstream stream ended without a terminal event")
		return emitter.Emit(stream.Event{
			Type: stream.ResultEvent,
			Data: map[string]bool{"success": true},
		})
	}
	return nil
}

// field splits a server-sent event field line. Only the fields defined for
// event streams are recognized, anything else is a bare line.
func field(line string) (string, string, bool) {
	name, value, _ := strings.Cut(line, ":")
	switch name {
	case "event", "data", "id", "retry":
		return name, strings.TrimPrefix(value, " "), true
	default:
		return "", "", false
	}
}

func toEvent(eventType string, data string) stream.Event {
	raw := []byte(data)
	if eventType == "" {
		typed := struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}{}
		if err := json.Unmarshal(raw, &typed); err == nil && known(typed.Type) {
			if len(typed.Data) == 0 {
				typed.Data = raw
			}
			return stream.Event{Type: stream.EventType(typed.Type), Data: typed.Data}
		}
		return stream.Event{Type: stream.LogEvent, Data: stream.MessageData{Message: data}}
	}

	if !known(eventType) {
		eventType = string(stream.LogEvent)
	}
	if json.Valid(raw) {
		return stream.Event{Type: stream.EventType(eventType), Data: json.RawMessage(raw)}
	}
	return stream.Event{Type: stream.EventType(eventType), Data: stream.MessageData{Message: data}}
}

func known(t string) bool {
	switch stream.EventType(t) {
	case stream.LogEvent, stream.ResultEvent, stream.ErrorEvent, stream.OpportunityEvent:
		return true
	default:
		return false
	}
}
