// Package raft implements the replicated log store and commit/apply
// pipeline at the core of a Raft consensus library.
//
// It owns an append-only sequence of entries (LogStore), and layers commit
// tracking, FSM application, and voting-configuration gating on top
// (LogCommitter). Everything outside the log itself — request-vote and
// append-entries RPCs, leader election, peer bookkeeping, and network
// transport — is the embedder's concern, reached only through the Host and
// FsmApplier capabilities declared in host.go.
//
// The package assumes a single caller drives every mutating call; there is
// no internal locking.
package raft
