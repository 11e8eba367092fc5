package audit

import (
	"context"
	"log/slog"
)

// Worker consumes events from the recorder queue and persists them through
// the sink. A sink failure is logged and the worker keeps going; the audit
// trail must never take the API down.
type Worker struct {
	sink  Sink
	inbox <-chan Event
	log   *slog.Logger
}

// NewWorker wires a sink to an event queue.
func NewWorker(sink Sink, inbox <-chan Event, log *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, log: log}
}

// Run processes events until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.log.ErrorContext(ctx, "failed to append audit event",
					"error", err,
					"kind", event.Kind,
					"request_id", event.RequestID,
				)
			}
		}
	}
}
