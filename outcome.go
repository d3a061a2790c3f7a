package linkid

import (
	"context"
	"errors"
)

// FailureReason classifies why a short link could not be resolved.
type FailureReason string

// Failure reasons.
const (
	ReasonNone       FailureReason = ""
	ReasonTimeout    FailureReason = "timeout"
	ReasonConnection FailureReason = "connection"
	ReasonStatus     FailureReason = "status"
	ReasonCanceled   FailureReason = "canceled"
	ReasonEmpty      FailureReason = "empty"
	ReasonOther      FailureReason = "other"
)

// Outcome is the result of resolving one short link.
type Outcome struct {
	// URL is the short link as found in the input.
	URL string

	// Resolved is the final URL after following redirects.
	Resolved string

	// Err is set when resolution failed.
	Err error
}

// OK reports whether the short link was resolved.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Resolved != ""
}

// Reason classifies the failure. Returns ReasonNone for resolved outcomes.
func (o Outcome) Reason() FailureReason {
	if o.OK() {
		return ReasonNone
	}
	if o.Err == nil {
		return ReasonEmpty
	}
	switch {
	case errors.Is(o.Err, context.Canceled):
		return ReasonCanceled
	case errors.Is(o.Err, context.DeadlineExceeded):
		return ReasonTimeout
	}
	switch ErrorCode(o.Err) {
	case ETIMEOUT:
		return ReasonTimeout
	case EUNAVAILABLE:
		return ReasonConnection
	case EUPSTREAM:
		return ReasonStatus
	}
	return ReasonOther
}
