package core_test

import (
	"errors"
	"testing"

	"desserts-ops/internal/core"
)

func TestTransitionQuoteStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    core.QuoteStatus
		event   core.QuoteEvent
		want    core.QuoteStatus
		wantErr bool
	}{
		{"draft can be sent", core.QuoteDraft, core.EventSend, core.QuoteSent, false},
		{"sent can be accepted", core.QuoteSent, core.EventAccept, core.QuoteAccepted, false},
		{"sent can be declined", core.QuoteSent, core.EventDecline, core.QuoteDeclined, false},
		{"draft cannot be accepted", core.QuoteDraft, core.EventAccept, "", true},
		{"draft cannot be declined", core.QuoteDraft, core.EventDecline, "", true},
		{"accepted is terminal", core.QuoteAccepted, core.EventSend, "", true},
		{"accepted cannot be re-accepted", core.QuoteAccepted, core.EventAccept, "", true},
		{"declined is terminal", core.QuoteDeclined, core.EventAccept, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.TransitionQuoteStatus(tt.from, tt.event)
			if tt.wantErr {
				var te *core.TransitionError
				if !errors.As(err, &te) {
					t.Fatalf("expected TransitionError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("transition = %s, want %s", got, tt.want)
			}
		})
	}
}
