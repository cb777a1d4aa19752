package raft

// Metric key paths emitted via github.com/armon/go-metrics, following the
// conventional {"raft", subsystem, operation} hierarchy.
var (
	metricKeyAppend   = []string{"raft", "log", "append"}
	metricKeyPollHead = []string{"raft", "log", "pollHead"}
	metricKeyTruncate = []string{"raft", "log", "truncateFrom"}
	metricKeyFsmApply = []string{"raft", "fsm", "apply"}
)
