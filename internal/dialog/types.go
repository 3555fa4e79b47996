package dialog

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the type of a native browser dialog
type Kind string

// Dialog kinds as reported by the browser
const (
	KindAlert        Kind = "alert"
	KindConfirm      Kind = "confirm"
	KindPrompt       Kind = "prompt"
	KindBeforeUnload Kind = "beforeunload"
)

// Action is how a dialog gets resolved
type Action string

// Resolution actions
const (
	ActionAccept  Action = "accept"
	ActionDismiss Action = "dismiss"
)

// Domain errors
var (
	ErrUnknownKind     = errors.New("unknown dialog kind")
	ErrUnknownAction   = errors.New("unknown dialog action")
	ErrUnknownListener = errors.New("listener is not registered")
)

// ParseKind converts a browser-reported dialog type into a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAlert, KindConfirm, KindPrompt, KindBeforeUnload:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ParseAction converts "accept" or "dismiss" into an Action
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionAccept, ActionDismiss:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Dialog is a native dialog raised by the browser.
// playwright.Dialog satisfies it as is.
type Dialog interface {
	Type() string
	Message() string
	DefaultValue() string
	Accept(promptText ...string) error
	Dismiss() error
}

// Response is the decision applied to a dialog
type Response struct {
	Action    Action
	InputText string
}

// Accept returns an accepting response. text is only sent for prompts.
func Accept(text string) Response {
	return Response{Action: ActionAccept, InputText: text}
}

// Dismiss returns a dismissing response
func Dismiss() Response {
	return Response{Action: ActionDismiss}
}

func (r Response) String() string {
	if r.Action == ActionAccept && r.InputText != "" {
		return fmt.Sprintf("accept(%q)", r.InputText)
	}
	return string(r.Action)
}
