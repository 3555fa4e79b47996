package dialog

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "alert", want: KindAlert},
		{input: "confirm", want: KindConfirm},
		{input: "PROMPT", want: KindPrompt},
		{input: " beforeunload ", want: KindBeforeUnload},
		{input: "popup", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownKind) {
				t.Errorf("Expected ErrUnknownKind, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{input: "accept", want: ActionAccept},
		{input: "Dismiss", want: ActionDismiss},
		{input: "cancel", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResponse_String(t *testing.T) {
	if got := Accept("hi").String(); got != `accept("hi")` {
		t.Errorf("unexpected string %q", got)
	}
	if got := Accept("").String(); got != "accept" {
		t.Errorf("unexpected string %q", got)
	}
	if got := Dismiss().String(); got != "dismiss" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestEvent_RespondOnce(t *testing.T) {
	d := &fakeDialog{kind: "prompt", message: "I am a JS prompt", defaultValue: "x"}
	ev := newEvent(d, nil)
	if ev.Kind != KindPrompt || ev.DefaultValue != "x" {
		t.Fatalf("Unexpected event %+v", ev)
	}
	if ev.State() != StateRaised {
		t.Fatalf("Expected raised state, got %s", ev.State())
	}

	if !ev.Respond(Accept("typed")) {
		t.Fatal("First Respond should claim the event")
	}
	if ev.Respond(Dismiss()) {
		t.Error("Second Respond should be discarded")
	}
	<-ev.Done()

	if ev.State() != StateResolved {
		t.Errorf("Expected resolved state, got %s", ev.State())
	}
	resp, ok := ev.Response()
	if !ok || resp != Accept("typed") {
		t.Errorf("Unexpected winning response %v (claimed=%v)", resp, ok)
	}
	if ev.Err() != nil {
		t.Errorf("Unexpected error: %v", ev.Err())
	}
}
