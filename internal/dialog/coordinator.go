// Package dialog coordinates native browser dialogs (alert, confirm,
// prompt) with test code that triggers them.
//
// A Coordinator owns an ordered registry of listeners and a single
// subscription on a Source. Every raised dialog is wrapped in an Event and
// handed to the listeners in registration order; the first listener to
// respond wins. Trigger arms a one-shot fallback that accepts the dialog
// when no listener claimed it, so a page is never left frozen behind an
// unresolved dialog.
package dialog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Listener observes a raised dialog and may respond to it
type Listener func(ev *Event)

// Config wires a Coordinator to a page
type Config struct {
	// Source delivers dialogs raised on the page
	Source Source
	// Trigger performs the UI action expected to raise a dialog of kind
	Trigger func(kind Kind) error
	// Result reads the on-page text produced by the last resolved dialog
	Result func() (string, error)
	Logger *zap.Logger
}

// Coordinator mediates between dialogs raised by the browser and the test
// code that expects them. It only ever removes listeners it registered.
type Coordinator struct {
	source  Source
	trigger func(Kind) error
	result  func() (string, error)
	logger  *zap.Logger

	mu        sync.Mutex
	listeners []Listener
	subID     string
	fallback  bool
	state     State
	last      *Event
	raised    chan *Event
}

// NewCoordinator creates a coordinator. It does not subscribe to the
// source until a listener or fallback needs it.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("dialog source is required")
	}
	if cfg.Trigger == nil {
		return nil, fmt.Errorf("dialog trigger is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		source:    cfg.Source,
		trigger:   cfg.Trigger,
		result:    cfg.Result,
		logger:    logger,
		listeners: []Listener{},
		state:     StateIdle,
		raised:    make(chan *Event, 1),
	}, nil
}

// SetupHandler registers a listener that resolves every dialog with action.
// text is entered into prompts when accepting.
func (c *Coordinator) SetupHandler(action Action, text string) error {
	if _, err := ParseAction(string(action)); err != nil {
		return err
	}
	c.OnDialog(func(ev *Event) {
		switch {
		case action == ActionDismiss:
			ev.Respond(Dismiss())
		case ev.Kind == KindPrompt:
			ev.Respond(Accept(text))
		default:
			ev.Respond(Accept(""))
		}
	})
	c.logger.Debug("Dialog handler registered.", zap.String("action", string(action)))
	return nil
}

// OnDialog registers an arbitrary listener
func (c *Coordinator) OnDialog(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
	c.attachLocked()
}

// RemoveHandlers drops every listener registered through this coordinator
// and disarms a pending fallback. Calling it with nothing registered is a
// no-op.
func (c *Coordinator) RemoveHandlers() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.listeners)
	c.listeners = c.listeners[:0]
	c.fallback = false
	c.detachLocked()
	if n > 0 {
		c.logger.Debug("Dialog handlers removed.", zap.Int("count", n))
	}
}

// Registered returns the number of listeners in the registry
func (c *Coordinator) Registered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// Attached reports whether the coordinator holds a source subscription
func (c *Coordinator) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subID != ""
}

// State returns Idle, or the state of the dialog raised after the last Trigger
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return c.state
	}
	return c.last.State()
}

// Trigger arms the fallback and performs the UI action for kind
func (c *Coordinator) Trigger(kind Kind) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}

	c.mu.Lock()
	c.fallback = true
	c.last = nil
	c.state = StateIdle
	select {
	case <-c.raised:
	default:
	}
	c.attachLocked()
	c.mu.Unlock()

	c.logger.Debug("Triggering dialog.", zap.String("kind", string(kind)))
	if err := c.trigger(kind); err != nil {
		c.mu.Lock()
		c.fallback = false
		if len(c.listeners) == 0 {
			c.detachLocked()
		}
		c.mu.Unlock()
		return fmt.Errorf("failed to trigger %s: %w", kind, err)
	}
	return nil
}

// AwaitResolution waits for the dialog raised after the last Trigger to be
// resolved. The coordinator applies no timeout of its own.
func (c *Coordinator) AwaitResolution(ctx context.Context) (*Event, error) {
	c.mu.Lock()
	ev := c.last
	raised := c.raised
	c.mu.Unlock()

	if ev == nil {
		select {
		case ev = <-raised:
		case <-ctx.Done():
			return nil, fmt.Errorf("no dialog raised: %w", ctx.Err())
		}
	}

	select {
	case <-ev.Done():
		return ev, nil
	case <-ctx.Done():
		return ev, fmt.Errorf("dialog %s not resolved: %w", ev.Kind, ctx.Err())
	}
}

// ReadResult reads the on-page text produced by the last resolved dialog
func (c *Coordinator) ReadResult() (string, error) {
	if c.result == nil {
		return "", fmt.Errorf("no result reader configured")
	}
	text, err := c.result()
	if err != nil {
		return "", fmt.Errorf("failed to read dialog result: %w", err)
	}
	return text, nil
}

func (c *Coordinator) attachLocked() {
	if c.subID != "" {
		return
	}
	c.subID = c.source.Subscribe(c.dispatch)
}

func (c *Coordinator) detachLocked() {
	if c.subID == "" {
		return
	}
	if err := c.source.Unsubscribe(c.subID); err != nil {
		c.logger.Debug("Dialog subscription already gone.", zap.Error(err))
	}
	c.subID = ""
}

// dispatch runs on the browser's event delivery path
func (c *Coordinator) dispatch(d Dialog) {
	ev := newEvent(d, c.logger)

	c.mu.Lock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	fallback := c.fallback
	c.fallback = false
	c.last = ev
	select {
	case <-c.raised:
	default:
	}
	c.raised <- ev
	c.mu.Unlock()

	c.logger.Debug("Dialog raised.",
		zap.String("kind", string(ev.Kind)),
		zap.String("message", ev.Message),
		zap.Int("listeners", len(listeners)))

	for _, l := range listeners {
		c.invoke(l, ev)
	}

	if fallback && !ev.Claimed() {
		c.logger.Info("No listener resolved dialog, accepting it.", zap.String("kind", string(ev.Kind)))
		ev.Respond(Accept(ev.DefaultValue))
	}

	c.mu.Lock()
	if len(c.listeners) == 0 && !c.fallback {
		c.detachLocked()
	}
	c.mu.Unlock()
}

func (c *Coordinator) invoke(l Listener, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("Dialog listener panicked.", zap.Any("panic", r), zap.String("kind", string(ev.Kind)))
		}
	}()
	l(ev)
}
