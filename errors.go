package raft

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the reason behind a failed operation. Wrap
// these with errors.Is; AppendError, TruncateError, and ApplyError attach
// the index involved.
var (
	// ErrOneVotingChangeOnly is returned by AppendEntry when a second
	// voting-configuration entry is offered while one is already pending.
	ErrOneVotingChangeOnly = errors.New("raft: only one voting configuration change may be in flight")

	// ErrNothingToApply is returned by ApplyOne when there is no
	// committed-but-unapplied entry. Benign; used as a loop-termination
	// signal by ApplyUntilCommitted.
	ErrNothingToApply = errors.New("raft: nothing to apply")

	// ErrCommittedTruncation is returned by TruncateFrom when asked to
	// remove an entry at or below commitIndex. Safety-critical: a
	// committed entry must never be removed.
	ErrCommittedTruncation = errors.New("raft: refusing to truncate a committed entry")

	// ErrShutdown is propagated verbatim when a Host or FsmApplier
	// callback asks for termination. Terminal: callers tear down.
	ErrShutdown = errors.New("raft: host or fsm requested shutdown")
)

// AppendError wraps an AppendEntry failure with the index that was about to
// be assigned.
type AppendError struct {
	Index uint64
	Err   error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("raft: append at index %d: %v", e.Index, e.Err)
}

func (e *AppendError) Unwrap() error { return e.Err }

// TruncateError wraps a TruncateFrom failure with the requested index.
type TruncateError struct {
	Index uint64
	Err   error
}

func (e *TruncateError) Error() string {
	return fmt.Sprintf("raft: truncate from index %d: %v", e.Index, e.Err)
}

func (e *TruncateError) Unwrap() error { return e.Err }

// ApplyError wraps an ApplyOne failure with the index that was being
// applied, 0 if none was reached.
type ApplyError struct {
	Index uint64
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("raft: apply at index %d: %v", e.Index, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }
