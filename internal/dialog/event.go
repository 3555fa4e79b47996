package dialog

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// State is the lifecycle position of a single raised dialog
type State int32

// Dialog states. Idle is the coordinator state between dialogs; an Event
// starts in Raised.
const (
	StateIdle State = iota
	StateRaised
	StateResolving
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRaised:
		return "raised"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Event is one dialog as seen by a coordinator. The first Respond call
// claims it; every later call is discarded.
type Event struct {
	Kind         Kind
	Message      string
	DefaultValue string

	dialog Dialog
	logger *zap.Logger

	state    atomic.Int32
	done     chan struct{}
	mu       sync.Mutex
	response Response
	err      error
}

func newEvent(d Dialog, logger *zap.Logger) *Event {
	kind, err := ParseKind(d.Type())
	if err != nil {
		// keep the raw type so listeners can still log it
		kind = Kind(d.Type())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ev := &Event{
		Kind:         kind,
		Message:      d.Message(),
		DefaultValue: d.DefaultValue(),
		dialog:       d,
		logger:       logger,
		done:         make(chan struct{}),
	}
	ev.state.Store(int32(StateRaised))
	return ev
}

// State returns the current lifecycle state
func (e *Event) State() State {
	return State(e.state.Load())
}

// Claimed reports whether a response has been issued
func (e *Event) Claimed() bool {
	return e.State() >= StateResolving
}

// Respond issues r unless another response got there first. The browser
// call runs on its own goroutine because listeners are invoked from the
// event delivery path, which must not block on the dialog it is delivering.
func (e *Event) Respond(r Response) bool {
	if !e.state.CompareAndSwap(int32(StateRaised), int32(StateResolving)) {
		e.logger.Debug("Discarding duplicate dialog resolution.",
			zap.String("kind", string(e.Kind)), zap.Stringer("response", r))
		return false
	}

	e.mu.Lock()
	e.response = r
	e.mu.Unlock()

	go func() {
		err := e.apply(r)
		if err != nil {
			// the browser rejects resolutions of settled dialogs; that race is benign
			e.logger.Debug("Dialog resolution rejected by browser.",
				zap.String("kind", string(e.Kind)), zap.Stringer("response", r), zap.Error(err))
		}
		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
		e.state.Store(int32(StateResolved))
		close(e.done)
	}()
	return true
}

func (e *Event) apply(r Response) error {
	if r.Action == ActionDismiss {
		return e.dialog.Dismiss()
	}
	if e.Kind == KindPrompt {
		return e.dialog.Accept(r.InputText)
	}
	return e.dialog.Accept()
}

// Done is closed once the browser call for the winning response returned
func (e *Event) Done() <-chan struct{} {
	return e.done
}

// Response returns the winning response, if any
func (e *Event) Response() (Response, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.response, e.Claimed()
}

// Err returns the error of the winning browser call. Only meaningful after Done.
func (e *Event) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
