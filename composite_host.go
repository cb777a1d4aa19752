package raft

import (
	"github.com/hashicorp/go-multierror"
)

// CompositeHost fans OnOffer, OnPollHead and OnPopTail out to every
// delegate, in order; NodeIDOf returns the first non-empty id instead. A
// convenience for embedders who want to compose, say, a durable-write Host
// with a metrics-only Host.
//
// OnOffer aggregates every delegate's error with go-multierror rather than
// stopping at the first, so a caller can see every reason an offer was
// refused; AppendEntry still only needs the aggregate's nil-ness to decide
// whether to append.
type CompositeHost struct {
	Delegates []Host
}

// NewCompositeHost returns a CompositeHost wrapping delegates, in call
// order.
func NewCompositeHost(delegates ...Host) *CompositeHost {
	return &CompositeHost{Delegates: delegates}
}

func (h *CompositeHost) OnOffer(entry *Entry, idx uint64) error {
	var result *multierror.Error
	for _, d := range h.Delegates {
		if err := d.OnOffer(entry, idx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (h *CompositeHost) OnPollHead(entry Entry, idx uint64) {
	for _, d := range h.Delegates {
		d.OnPollHead(entry, idx)
	}
}

func (h *CompositeHost) OnPopTail(entry Entry, idx uint64) {
	for _, d := range h.Delegates {
		d.OnPopTail(entry, idx)
	}
}

// NodeIDOf defers to the first delegate that returns a non-empty id.
func (h *CompositeHost) NodeIDOf(entry Entry, idx uint64) NodeID {
	for _, d := range h.Delegates {
		if id := d.NodeIDOf(entry, idx); id != "" {
			return id
		}
	}
	return ""
}
