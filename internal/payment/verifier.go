// Package payment defines the narrow port to the external card gateway.
// Gateway internals (HTTP calls, signatures, retries) live outside this
// core; the booking flow only needs the verification verdict.
package payment

import "context"

// Verdict of a card-payment verification call.
type Verdict int

const (
	// VerdictUnknown means the gateway could not be reached or gave an
	// inconclusive answer; the booking stays PENDING for manual review.
	VerdictUnknown Verdict = iota
	VerdictSuccess
	VerdictFailed
)

// Verifier checks a card payment reference against the gateway.
type Verifier interface {
	Verify(ctx context.Context, reference string, amount int64) (Verdict, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, reference string, amount int64) (Verdict, error)

func (f VerifierFunc) Verify(ctx context.Context, reference string, amount int64) (Verdict, error) {
	return f(ctx, reference, amount)
}
