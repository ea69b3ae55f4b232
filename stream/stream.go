package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

const (
	EVENT_BUFFER = 16
)

var ErrStreamClosed = errors.New("stream closed")

// Producer generates the events of a single stream. It must return once ctx
// is done.
type Producer func(ctx context.Context, emitter *Emitter) error

// Emitter is the producer side of a stream. Events are delivered in the
// order they are emitted and nothing can be emitted after a terminal event.
type Emitter struct {
	ctx    context.Context
	events chan Event

	lock   sync.Mutex
	closed bool
}

func newEmitter(ctx context.Context) *Emitter {
	return &Emitter{
		ctx:    ctx,
		events: make(chan Event, EVENT_BUFFER),
	}
}

func (e *Emitter) Emit(event Event) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.closed {
		return ErrStreamClosed
	}
	if err := e.ctx.Err(); err != nil {
		e.closed = true
		return err
	}

	select {
	case e.events <- event:
		{
			if event.Terminal() {
				e.closed = true
			}
			return nil
		}
	case <-e.ctx.Done():
		{
			e.closed = true
			return e.ctx.Err()
		}
	}
}

func (e *Emitter) Log(message string) error {
	return e.Emit(Event{Type: LogEvent, Data: MessageData{Message: message}})
}

func (e *Emitter) Logf(format string, args ...interface{}) error {
	return e.Log(fmt.Sprintf(format, args...))
}

func (e *Emitter) Result(result ResultData) error {
	return e.Emit(Event{Type: ResultEvent, Data: result})
}

func (e *Emitter) Error(message string) error {
	return e.Emit(Event{Type: ErrorEvent, Data: MessageData{Message: message}})
}

// finish guarantees the stream ends with a terminal event unless the caller
// is gone, then closes the event channel.
func (e *Emitter) finish() {
	e.lock.Lock()
	defer e.lock.Unlock()

	if !e.closed && e.ctx.Err() == nil {
		select {
		case e.events <- Event{Type: ErrorEvent, Data: MessageData{Message: "stream ended without a result"}}:
		case <-e.ctx.Done():
		}
	}

	e.closed = true
	close(e.events)
}

func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// Serve runs the producer in its own goroutine and encodes its events to w
// until the producer finishes or ctx is cancelled.
func Serve(ctx context.Context, w http.ResponseWriter, produce Producer) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("response writer does not support flushing")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	SetHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	emitter := newEmitter(ctx)
	var wg conc.WaitGroup
	wg.Go(func() {
		defer emitter.finish()

		err := produce(ctx, emitter)
		if err == nil || ctx.Err() != nil {
			return
		}

		log.Warn().Err(err).Msg("Stream producer failed")
		_ = emitter.Error(err.Error())
	})

	var writeErr error
	for event := range emitter.events {
		if writeErr != nil {
			continue
		}

		writeErr = WriteEvent(w, event)
		if writeErr != nil {
			log.Debug().Err(writeErr).Msg("Failed writing event, closing stream")
			cancel()
			continue
		}
		flusher.Flush()
	}

	if r := wg.WaitAndRecover(); r != nil {
		log.Error().Msgf("Stream producer panicked: %s", r.Value)
		return r.AsError()
	}
	return writeErr
}
