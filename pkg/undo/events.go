package undo

// EventKind identifies what the manager just did.
type EventKind int

const (
	EventDone EventKind = iota + 1
	EventUnDone
	EventReDone
	EventTransactionStarted
	EventTransactionEnded
	EventTransactionCancelled
)

func (k EventKind) String() string {
	switch k {
	case EventDone:
		return "done"
	case EventUnDone:
		return "undone"
	case EventReDone:
		return "redone"
	case EventTransactionStarted:
		return "transaction_started"
	case EventTransactionEnded:
		return "transaction_ended"
	case EventTransactionCancelled:
		return "transaction_cancelled"
	default:
		return "unknown"
	}
}

// Event is published by the Manager after a state change has completed.
type Event struct {
	Kind EventKind

	// Command is the command concerned. For transaction events it is the
	// transaction's accumulator.
	Command Command

	// Depth is the number of open transactions after the change.
	Depth int
}
