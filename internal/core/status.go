package core

import "fmt"

// QuoteStatus is the closed set of quote lifecycle states. An Accepted
// quote is what the rest of the business calls an "order": same row,
// different badge.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "Draft"
	QuoteSent     QuoteStatus = "Sent"
	QuoteAccepted QuoteStatus = "Accepted"
	QuoteDeclined QuoteStatus = "Declined"
)

// QuoteEvent is a lifecycle trigger applied via TransitionQuoteStatus.
type QuoteEvent string

const (
	EventSend    QuoteEvent = "send"
	EventAccept  QuoteEvent = "accept"
	EventDecline QuoteEvent = "decline"
)

// TransitionError reports an illegal lifecycle move.
type TransitionError struct {
	From  QuoteStatus
	Event QuoteEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a quote in status %s", e.Event, e.From)
}

// TransitionQuoteStatus is the single place quote lifecycle rules live.
//
//	Draft → Sent → Accepted
//	              ↘ Declined
//
// Accepted and Declined are terminal; financial fields are frozen the
// moment the quote leaves Draft.
func TransitionQuoteStatus(from QuoteStatus, event QuoteEvent) (QuoteStatus, error) {
	switch event {
	case EventSend:
		if from == QuoteDraft {
			return QuoteSent, nil
		}
	case EventAccept:
		if from == QuoteSent {
			return QuoteAccepted, nil
		}
	case EventDecline:
		if from == QuoteSent {
			return QuoteDeclined, nil
		}
	}
	return from, &TransitionError{From: from, Event: event}
}
