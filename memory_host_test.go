package raft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errShutdownForTest = errors.New("fsm shutdown (test)")

func TestMemoryHost_NodeIDOfDefaultsToPayload(t *testing.T) {
	m := NewMemoryHost()
	id := m.NodeIDOf(Entry{Payload: []byte("node-3")}, 1)
	require.Equal(t, NodeID("node-3"), id)
}

func TestMemoryHost_RecordsOfferPollPop(t *testing.T) {
	m := NewMemoryHost()
	entry := Entry{Term: 1, ID: 1}

	require.NoError(t, m.OnOffer(&entry, 1))
	m.OnPollHead(entry, 1)
	m.OnPopTail(entry, 1)

	require.Len(t, m.Offered, 1)
	require.Len(t, m.Polled, 1)
	require.Len(t, m.Popped, 1)
}

func TestMemoryHost_ApplyRecordsAndCanFail(t *testing.T) {
	m := NewMemoryHost()
	require.NoError(t, m.Apply(Entry{ID: 1}, 1))
	require.Len(t, m.Applied, 1)

	m.FailApply = errShutdownForTest
	err := m.Apply(Entry{ID: 2}, 2)
	require.ErrorIs(t, err, errShutdownForTest)
	require.Len(t, m.Applied, 1, "a failed apply must not be recorded as applied")
}

func TestMemoryMembership_RecordsNodeAdded(t *testing.T) {
	m := &MemoryMembership{}
	m.NodeAdded("node-1")
	m.NodeAdded("node-2")
	require.Equal(t, []NodeID{"node-1", "node-2"}, m.Added)
}
