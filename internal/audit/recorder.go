package audit

// Recorder fans authorization outcomes into a bounded queue so request
// handling never blocks on the audit sink. When the queue is full the event
// is dropped and the onDrop hook fires; availability of the API wins over
// completeness of the trail.
type Recorder struct {
	queue  chan Event
	onDrop func()
}

// NewRecorder builds a recorder with the given queue capacity. onDrop may be
// nil.
func NewRecorder(capacity int, onDrop func()) *Recorder {
	return &Recorder{
		queue:  make(chan Event, capacity),
		onDrop: onDrop,
	}
}

// Record enqueues the event without blocking.
func (r *Recorder) Record(e Event) {
	select {
	case r.queue <- e:
	default:
		if r.onDrop != nil {
			r.onDrop()
		}
	}
}

// Events exposes the queue for the worker.
func (r *Recorder) Events() <-chan Event {
	return r.queue
}
