package stream

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sprintertech/sprinter-gateway/intent"
)

type EventType string

const (
	LogEvent         EventType = "log"
	ResultEvent      EventType = "result"
	ErrorEvent       EventType = "error"
	OpportunityEvent EventType = "opportunity"
)

type Event struct {
	Type EventType
	Data interface{}
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == ResultEvent || e.Type == ErrorEvent
}

type MessageData struct {
	Message string `json:"message"`
}

type TokenInfo struct {
	Symbol   string   `json:"symbol"`
	Address  string   `json:"address"`
	Decimals uint8    `json:"decimals"`
	PriceUsd *float64 `json:"priceUsd,omitempty"`
}

type ResultData struct {
	Success    bool          `json:"success"`
	Intent     intent.Intent `json:"intent"`
	Preview    string        `json:"preview"`
	TokenInfo  []TokenInfo   `json:"tokenInfo,omitempty"`
	Confidence float64       `json:"confidence"`
}

// WriteEvent writes a single server-sent event frame.
func WriteEvent(w io.Writer, e Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", e.Type, err)
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
	return err
}
