package raft

// LogStore holds the ordered sequence of log entries with a logical base
// offset. Indices are 1-based: a non-empty store with base b addresses
// entries at b+1 .. b+len(entries).
//
// LogStore has no notion of commit or apply; LogCommitter layers those on
// top. It is not safe for concurrent use — the embedder serializes all
// calls.
type LogStore struct {
	base    uint64
	entries []Entry
}

// NewLogStore returns an empty LogStore.
func NewLogStore() *LogStore {
	return &LogStore{}
}

// NewLogStoreWithCapacity returns an empty LogStore whose backing slice is
// pre-sized to hint entries, avoiding reallocation when the embedder knows
// its expected batch size up front. Purely a constructor-level convenience;
// it changes no observable behavior.
func NewLogStoreWithCapacity(hint int) *LogStore {
	return &LogStore{entries: make([]Entry, 0, hint)}
}

// Count returns the number of live entries.
func (l *LogStore) Count() uint64 {
	return uint64(len(l.entries))
}

// CurrentIdx returns the last logical index, or 0 if empty.
func (l *LogStore) CurrentIdx() uint64 {
	return l.base + uint64(len(l.entries))
}

// FirstIdx returns base+1. Only meaningful when Count() > 0.
func (l *LogStore) FirstIdx() uint64 {
	return l.base + 1
}

// Base returns the count of entries permanently removed from the head.
func (l *LogStore) Base() uint64 {
	return l.base
}

// LastTerm returns the term of the entry at CurrentIdx(), and true, or
// (0, false) if the log is empty. It consults the actual entry rather than
// a cached scalar, since PopTail can expose an older term.
func (l *LogStore) LastTerm() (uint64, bool) {
	if len(l.entries) == 0 {
		return 0, false
	}
	return l.entries[len(l.entries)-1].Term, true
}

// LastEntry returns (CurrentIdx(), term-at-that-index), or (0, 0) if the
// log is empty. A combined query avoiding a second lookup when a caller
// needs both.
func (l *LogStore) LastEntry() (idx uint64, term uint64) {
	term, ok := l.LastTerm()
	if !ok {
		return 0, 0
	}
	return l.CurrentIdx(), term
}

// Append appends entry, assigning it logical index CurrentIdx()+1. The
// caller guarantees entry.Term is monotonically non-decreasing relative to
// the current tail.
func (l *LogStore) Append(entry Entry) uint64 {
	l.entries = append(l.entries, entry)
	return l.CurrentIdx()
}

// EntryAt returns the entry at idx and true if base < idx <= CurrentIdx().
// Indices at or below base are considered snapshotted away and yield
// (Entry{}, false), not an error; so does idx == 0.
func (l *LogStore) EntryAt(idx uint64) (Entry, bool) {
	if idx <= l.base || idx > l.CurrentIdx() {
		return Entry{}, false
	}
	return l.entries[idx-l.base-1], true
}

// EntriesFrom returns a contiguous view of all entries from idx through
// CurrentIdx() inclusive. If idx <= base or idx > CurrentIdx(), returns an
// empty slice. The returned slice aliases internal storage and must not be
// retained past the next mutating call.
func (l *LogStore) EntriesFrom(idx uint64) []Entry {
	if idx <= l.base || idx > l.CurrentIdx() {
		return nil
	}
	return l.entries[idx-l.base-1:]
}

// PopTail removes the entry at CurrentIdx(), invoking host.OnPopTail before
// removal. Returns the removed entry and true, or (Entry{}, false) if
// empty.
func (l *LogStore) PopTail(host Host) (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	idx := l.CurrentIdx()
	entry := l.entries[len(l.entries)-1]
	host.OnPopTail(entry, idx)
	l.entries = l.entries[:len(l.entries)-1]
	return entry, true
}

// PollHead removes the entry at FirstIdx() and increments base, invoking
// host.OnPollHead before removal. Returns the removed entry and true, or
// (Entry{}, false) if empty. The vacated slot is zeroed before the slice is
// advanced past it, so a large Payload does not outlive the poll just
// because the backing array's capacity hasn't been reclaimed yet.
func (l *LogStore) PollHead(host Host) (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	idx := l.FirstIdx()
	entry := l.entries[0]
	host.OnPollHead(entry, idx)
	l.entries[0] = Entry{}
	l.entries = l.entries[1:]
	l.base++
	return entry, true
}

// TruncateFrom removes all entries at indices >= idx by repeated PopTail,
// tail-first, so each OnPopTail observes the entry being removed. A no-op
// if idx <= base or idx > CurrentIdx().
func (l *LogStore) TruncateFrom(host Host, idx uint64) {
	if idx <= l.base || idx > l.CurrentIdx() {
		return
	}
	for l.CurrentIdx() >= idx {
		if _, ok := l.PopTail(host); !ok {
			return
		}
	}
}
