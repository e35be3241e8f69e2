package fsdkr

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateMessage is returned by Collect when two messages in the
	// input set are structurally identical, indicating a replayed broadcast.
	ErrDuplicateMessage = errors.New("fsdkr: duplicated refresh message")

	// ErrPublicShareValidation is returned by Collect when a committed share
	// point is not the evaluation of the dealer's polynomial commitment.
	ErrPublicShareValidation = errors.New("fsdkr: committed point inconsistent with polynomial commitment")

	// ErrFairnessProof is returned by Collect when a message's proof fails,
	// meaning the encrypted share and the committed point may disagree.
	ErrFairnessProof = errors.New("fsdkr: failed to verify fairness proof")
)

// ThresholdError indicates that Collect was invoked with too few refresh
// messages: a refresh needs strictly more than Threshold of them.
type ThresholdError struct {
	Threshold int
	Received  int
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("fsdkr: refresh requires more than %d messages, received %d", e.Threshold, e.Received)
}

// SizeError indicates that the message at Index carries sequences whose
// lengths disagree with the rest of the epoch's messages.
type SizeError struct {
	Index       int
	Proofs      int
	Commitments int
	Ciphertexts int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("fsdkr: message %d is malformed: %d proofs, %d commitments, %d ciphertexts",
		e.Index, e.Proofs, e.Commitments, e.Ciphertexts)
}
