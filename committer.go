package raft

import (
	"fmt"
	"time"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"
)

// Config holds the embedder-supplied dependencies and toggles a LogCommitter
// is constructed with: a logger, a metrics sink, and whether to run the
// internal invariant checks. There is no network, timeout, or peer
// configuration here — that belongs to the excluded RPC layer.
type Config struct {
	// Logger receives diagnostic Trace/Warn/Error calls at operation
	// boundaries; it never drives control flow. Defaults to a discarding
	// logger if left nil.
	Logger hclog.Logger

	// Metrics receives MeasureSince calls for AppendEntry, TruncateFrom,
	// PollHead, and ApplyOne. Defaults to a blackhole sink if left nil, so
	// an embedder who doesn't care about metrics pays no wiring cost.
	Metrics *metrics.Metrics

	// InvariantChecks enables a panic-on-violation sanity check
	// (lastAppliedIdx <= commitIdx <= currentIdx, and the voting-change
	// marker always inside the log) after every mutating call. Off by
	// default; meant for tests and staging, not a hot production path.
	InvariantChecks bool
}

// DefaultConfig returns a Config with a discarding logger, a blackhole
// metrics sink, and invariant checks disabled.
func DefaultConfig() Config {
	sink, _ := metrics.New(metrics.DefaultConfig("raft"), &metrics.BlackholeSink{})
	return Config{
		Logger:  hclog.NewNullLogger(),
		Metrics: sink,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics, _ = metrics.New(metrics.DefaultConfig("raft"), &metrics.BlackholeSink{})
	}
	return cfg
}

// LogCommitter wraps a LogStore with commit-index and last-applied-index
// tracking and a voting-configuration-change gate, and drives FSM
// application. It exclusively owns the LogStore it wraps; the log's
// storage lifetime for any entry begins at AppendEntry and ends at
// PollHead or PopTail.
//
// LogCommitter is not itself a state machine: it enforces two monotone
// counters (commitIdx, lastAppliedIdx) and one optional in-flight marker
// (votingChangeIdx) over the underlying log.
type LogCommitter struct {
	log *LogStore
	cfg Config

	commitIdx      uint64
	lastAppliedIdx uint64

	votingChangeIdx   uint64
	votingChangeIsSet bool

	// Membership receives a notification when an AddNode entry is
	// applied. May be left nil.
	Membership MembershipSink
}

// NewLogCommitter returns a LogCommitter wrapping a fresh, empty LogStore,
// configured with cfg. Zero-valued fields of cfg fall back to the defaults
// in DefaultConfig.
func NewLogCommitter(cfg Config) *LogCommitter {
	return &LogCommitter{
		log: NewLogStore(),
		cfg: cfg.withDefaults(),
	}
}

// NewLogCommitterWithStore returns a LogCommitter wrapping an existing
// LogStore (e.g. one constructed with NewLogStoreWithCapacity, or restored
// after a snapshot install), configured with cfg.
func NewLogCommitterWithStore(log *LogStore, cfg Config) *LogCommitter {
	return &LogCommitter{
		log: log,
		cfg: cfg.withDefaults(),
	}
}

func (c *LogCommitter) logger() hclog.Logger {
	return c.cfg.Logger
}

func (c *LogCommitter) measureSince(key []string, start time.Time) {
	c.cfg.Metrics.MeasureSince(key, start)
}

// checkInvariants panics if c.cfg.InvariantChecks is set and the core's
// monotone-counter ordering has been violated. A no-op otherwise.
func (c *LogCommitter) checkInvariants() {
	if !c.cfg.InvariantChecks {
		return
	}
	if c.lastAppliedIdx > c.commitIdx {
		panic(fmt.Errorf("raft: invariant violated: lastAppliedIdx %d > commitIdx %d", c.lastAppliedIdx, c.commitIdx))
	}
	if c.commitIdx > c.log.CurrentIdx() {
		panic(fmt.Errorf("raft: invariant violated: commitIdx %d > currentIdx %d", c.commitIdx, c.log.CurrentIdx()))
	}
	if c.votingChangeIsSet && (c.votingChangeIdx <= c.log.Base() || c.votingChangeIdx > c.log.CurrentIdx()) {
		panic(fmt.Errorf("raft: invariant violated: votingChangeIdx %d outside live range (%d, %d]", c.votingChangeIdx, c.log.Base(), c.log.CurrentIdx()))
	}
}

// --- read-only queries, delegated straight to LogStore ---

func (c *LogCommitter) Count() uint64            { return c.log.Count() }
func (c *LogCommitter) CurrentIdx() uint64       { return c.log.CurrentIdx() }
func (c *LogCommitter) FirstIdx() uint64         { return c.log.FirstIdx() }
func (c *LogCommitter) Base() uint64             { return c.log.Base() }
func (c *LogCommitter) LastTerm() (uint64, bool) { return c.log.LastTerm() }

func (c *LogCommitter) LastEntry() (uint64, uint64) {
	return c.log.LastEntry()
}
func (c *LogCommitter) EntryAt(idx uint64) (Entry, bool) { return c.log.EntryAt(idx) }
func (c *LogCommitter) EntriesFrom(idx uint64) []Entry   { return c.log.EntriesFrom(idx) }

// CommitIdx returns the highest index known replicated to a majority.
func (c *LogCommitter) CommitIdx() uint64 { return c.commitIdx }

// LastAppliedIdx returns the highest index applied to the FSM.
func (c *LogCommitter) LastAppliedIdx() uint64 { return c.lastAppliedIdx }

// VotingChangeIdx returns the in-flight voting-configuration entry's index
// and true, or (0, false) if none is pending.
func (c *LogCommitter) VotingChangeIdx() (uint64, bool) {
	return c.votingChangeIdx, c.votingChangeIsSet
}

// IsCommitted reports whether idx <= CommitIdx().
func (c *LogCommitter) IsCommitted(idx uint64) bool {
	return idx <= c.commitIdx
}

// AppendEntry validates the voting-change gate, offers entry to host for
// durability, and appends it to the log. host.OnOffer fires before the
// in-memory append so that durability is established, or refused, before
// the entry becomes visible.
func (c *LogCommitter) AppendEntry(host Host, entry Entry) (uint64, error) {
	nextIdx := c.log.CurrentIdx() + 1

	if entry.Kind.IsVotingChange() && c.votingChangeIsSet {
		c.logger().Warn("rejecting second voting configuration change",
			"pending_idx", c.votingChangeIdx, "kind", entry.Kind)
		return 0, &AppendError{Index: nextIdx, Err: ErrOneVotingChangeOnly}
	}

	if entry.Kind.IsVotingChange() {
		c.votingChangeIdx = nextIdx
		c.votingChangeIsSet = true
	}

	defer c.measureSince(metricKeyAppend, time.Now())

	if err := host.OnOffer(&entry, nextIdx); err != nil {
		if entry.Kind.IsVotingChange() {
			c.votingChangeIsSet = false
		}
		c.logger().Error("host refused offer", "idx", nextIdx, "error", err)
		return 0, &AppendError{Index: nextIdx, Err: ErrShutdown}
	}

	idx := c.log.Append(entry)
	c.logger().Trace("appended entry", "idx", idx, "term", entry.Term, "kind", entry.Kind)
	c.checkInvariants()
	return idx, nil
}

// AdvanceCommit raises commitIdx to min(toIdx, CurrentIdx()), never
// decreasing it. A no-op if toIdx <= CommitIdx().
func (c *LogCommitter) AdvanceCommit(toIdx uint64) {
	if toIdx <= c.commitIdx {
		return
	}
	newCommit := toIdx
	if cur := c.log.CurrentIdx(); newCommit > cur {
		newCommit = cur
	}
	if newCommit <= c.commitIdx {
		return
	}
	c.commitIdx = newCommit
	c.logger().Trace("advanced commit index", "commit_idx", c.commitIdx)
	c.checkInvariants()
}

// TruncateFrom removes all entries at indices >= idx. Refuses and returns
// ErrCommittedTruncation if idx <= CommitIdx() — a committed entry must
// never be removed. Clears the voting-change marker if it falls within the
// truncated range.
func (c *LogCommitter) TruncateFrom(host Host, idx uint64) error {
	if idx <= c.commitIdx {
		c.logger().Error("refusing to truncate committed entry",
			"idx", idx, "commit_idx", c.commitIdx)
		return &TruncateError{Index: idx, Err: ErrCommittedTruncation}
	}

	if c.votingChangeIsSet && idx <= c.votingChangeIdx {
		c.votingChangeIsSet = false
	}

	defer c.measureSince(metricKeyTruncate, time.Now())
	c.log.TruncateFrom(host, idx)
	c.logger().Trace("truncated log", "from_idx", idx, "current_idx", c.log.CurrentIdx())
	c.checkInvariants()
	return nil
}

// PollHead removes the oldest live entry after a snapshot, delegating to
// the underlying LogStore. LogCommitter adds no bookkeeping on top and does
// not compare the polled index with lastAppliedIdx or commitIdx: a head
// polled ahead of lastAppliedIdx makes ApplyOne report ErrNothingToApply.
func (c *LogCommitter) PollHead(host Host) (Entry, bool) {
	defer c.measureSince(metricKeyPollHead, time.Now())
	entry, ok := c.log.PollHead(host)
	c.checkInvariants()
	return entry, ok
}

// ApplyOne applies the next unapplied-but-committed entry to fsm. Returns
// ErrNothingToApply if lastAppliedIdx == commitIdx, or if the next index is
// absent from the log — a snapshot-installed lastAppliedIdx below base reads
// back as nothing-to-apply rather than a distinct error.
//
// lastAppliedIdx advances before the FSM is invoked, so that a crashing or
// shutting-down FSM is never retried on the same entry — the in-memory
// counter reflects "attempted", not "succeeded".
//
// host is consulted only for NodeIDOf, to notify Membership when an AddNode
// entry is applied; it performs no durability work here.
func (c *LogCommitter) ApplyOne(host Host, fsm FsmApplier) error {
	if c.lastAppliedIdx == c.commitIdx {
		return &ApplyError{Err: ErrNothingToApply}
	}

	next := c.lastAppliedIdx + 1
	entry, ok := c.log.EntryAt(next)
	if !ok {
		return &ApplyError{Index: next, Err: ErrNothingToApply}
	}

	c.lastAppliedIdx = next

	defer c.measureSince(metricKeyFsmApply, time.Now())

	if err := fsm.Apply(entry, next); err != nil {
		c.logger().Error("fsm apply failed", "idx", next, "error", err)
		c.checkInvariants()
		return &ApplyError{Index: next, Err: ErrShutdown}
	}

	if entry.Kind == AddNode && c.Membership != nil {
		c.Membership.NodeAdded(host.NodeIDOf(entry, next))
	}

	if c.votingChangeIsSet && next == c.votingChangeIdx {
		c.votingChangeIsSet = false
		c.logger().Trace("voting configuration change durable in fsm", "idx", next)
	}

	c.checkInvariants()
	return nil
}

// ApplyUntilCommitted repeatedly calls ApplyOne while lastAppliedIdx <
// commitIdx, stopping on the first error other than ErrNothingToApply (that
// one signals "caught up" and is swallowed).
func (c *LogCommitter) ApplyUntilCommitted(host Host, fsm FsmApplier) error {
	for c.lastAppliedIdx < c.commitIdx {
		if err := c.ApplyOne(host, fsm); err != nil {
			ae, ok := err.(*ApplyError)
			if ok && ae.Unwrap() == ErrNothingToApply {
				return nil
			}
			return err
		}
	}
	return nil
}
