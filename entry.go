package raft

// EntryKind tags the variant of an Entry's payload.
type EntryKind uint8

const (
	// Normal carries an opaque client command for the FSM.
	Normal EntryKind = iota

	// AddNonVotingNode adds a node that receives replication but does not
	// count toward quorum.
	AddNonVotingNode

	// AddNode promotes or adds a full voting node. A voting-configuration
	// change.
	AddNode

	// DemoteNode demotes a voting node to non-voting. A
	// voting-configuration change.
	DemoteNode

	// RemoveNode removes a node from the configuration entirely. A
	// voting-configuration change.
	RemoveNode
)

func (k EntryKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case AddNonVotingNode:
		return "AddNonVotingNode"
	case AddNode:
		return "AddNode"
	case DemoteNode:
		return "DemoteNode"
	case RemoveNode:
		return "RemoveNode"
	default:
		return "Unknown"
	}
}

// IsConfiguration reports whether k carries a cluster-membership change.
func (k EntryKind) IsConfiguration() bool {
	switch k {
	case AddNonVotingNode, AddNode, DemoteNode, RemoveNode:
		return true
	default:
		return false
	}
}

// IsVotingChange reports whether k is restricted to one in-flight change at
// a time: AddNode, DemoteNode, RemoveNode.
func (k EntryKind) IsVotingChange() bool {
	switch k {
	case AddNode, DemoteNode, RemoveNode:
		return true
	default:
		return false
	}
}

// Entry is an immutable unit of log content. Term is a monotonically
// non-decreasing election epoch; ID is a client-assigned identifier unique
// per entry in a well-formed client stream; Payload is opaque to the core.
type Entry struct {
	Term    uint64
	ID      uint64
	Kind    EntryKind
	Payload []byte
}

// NodeID identifies a cluster member, extracted from a configuration
// entry's payload by Host.NodeIDOf.
type NodeID string
