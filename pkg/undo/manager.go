package undo

import (
	"fmt"

	"github.com/aretw0/urakawa/pkg/event"
)

// Manager keeps the undo and redo history and the stack of open transactions.
type Manager struct {
	undoStack    []Command
	redoStack    []Command
	transactions []*CompositeCommand
	events       event.Bus[Event]
}

// NewManager creates a manager with empty history.
func NewManager() *Manager {
	return &Manager{}
}

// Events returns the bus the manager publishes to.
func (m *Manager) Events() *event.Bus[Event] {
	return &m.events
}

// Execute runs cmd. Inside a transaction the command is appended to the
// innermost transaction; otherwise it is pushed on the undo stack. A
// successful execution always clears the redo stack.
//
// An irreversible command is refused inside a transaction. Outside one it runs
// and, since nothing before it can be undone any more, clears the undo stack.
func (m *Manager) Execute(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if m.IsTransactionActive() && !cmd.CanUnExecute() {
		return fmt.Errorf("%w: %s", ErrCannotExecuteIrreversibleCommand, cmd.ShortDescription())
	}
	if !cmd.CanExecute() {
		return fmt.Errorf("%w: %s", ErrCommandCannotExecute, cmd.ShortDescription())
	}
	if err := cmd.Execute(); err != nil {
		return wrapExecute(cmd, err)
	}

	switch {
	case m.IsTransactionActive():
		if err := m.transactions[len(m.transactions)-1].Append(cmd); err != nil {
			return err
		}
	case cmd.CanUnExecute():
		m.undoStack = append(m.undoStack, cmd)
	default:
		m.undoStack = nil
	}
	m.redoStack = nil

	m.events.Publish(Event{Kind: EventDone, Command: cmd, Depth: len(m.transactions)})
	return nil
}

// StartTransaction opens a (possibly nested) transaction.
func (m *Manager) StartTransaction(short, long string) {
	tx := NewCompositeCommand(short, long)
	m.transactions = append(m.transactions, tx)
	m.events.Publish(Event{Kind: EventTransactionStarted, Command: tx, Depth: len(m.transactions)})
}

// EndTransaction closes the innermost transaction. The outermost transaction is
// pushed on the undo stack even when empty; a nested one becomes a single
// sub-command of its parent.
func (m *Manager) EndTransaction() error {
	tx, err := m.popTransaction()
	if err != nil {
		return err
	}
	if m.IsTransactionActive() {
		if err := m.transactions[len(m.transactions)-1].Append(tx); err != nil {
			return err
		}
	} else {
		m.undoStack = append(m.undoStack, tx)
		m.redoStack = nil
	}
	m.events.Publish(Event{Kind: EventTransactionEnded, Command: tx, Depth: len(m.transactions)})
	return nil
}

// CancelTransaction reverts everything executed in the innermost transaction
// and discards it. The transaction is closed even when reverting fails.
func (m *Manager) CancelTransaction() error {
	tx, err := m.popTransaction()
	if err != nil {
		return err
	}
	if err := tx.UnExecute(); err != nil {
		return err
	}
	m.events.Publish(Event{Kind: EventTransactionCancelled, Command: tx, Depth: len(m.transactions)})
	return nil
}

func (m *Manager) popTransaction() (*CompositeCommand, error) {
	if !m.IsTransactionActive() {
		return nil, ErrTransactionNotStarted
	}
	last := len(m.transactions) - 1
	tx := m.transactions[last]
	m.transactions[last] = nil
	m.transactions = m.transactions[:last]
	return tx, nil
}

// Undo un-executes the most recent command and moves it to the redo stack.
// On failure both stacks are left unchanged.
func (m *Manager) Undo() error {
	if m.IsTransactionActive() {
		return fmt.Errorf("%w: %w", ErrCannotUndo, ErrTransactionNotEnded)
	}
	if len(m.undoStack) == 0 {
		return fmt.Errorf("%w: undo stack is empty", ErrCannotUndo)
	}
	cmd := m.undoStack[len(m.undoStack)-1]
	if err := cmd.UnExecute(); err != nil {
		return wrapUnExecute(cmd, err)
	}
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, cmd)
	m.events.Publish(Event{Kind: EventUnDone, Command: cmd})
	return nil
}

// Redo re-executes the most recently undone command and moves it back to the
// undo stack. On failure both stacks are left unchanged.
func (m *Manager) Redo() error {
	if m.IsTransactionActive() {
		return fmt.Errorf("%w: %w", ErrCannotRedo, ErrTransactionNotEnded)
	}
	if len(m.redoStack) == 0 {
		return fmt.Errorf("%w: redo stack is empty", ErrCannotRedo)
	}
	cmd := m.redoStack[len(m.redoStack)-1]
	if err := replay(cmd); err != nil {
		return wrapExecute(cmd, err)
	}
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, cmd)
	m.events.Publish(Event{Kind: EventReDone, Command: cmd})
	return nil
}

// replay re-executes a recorded command. Transactions are replayed through
// their sub-commands so that an empty transaction replays as a no-op instead
// of failing like an empty composite built by hand.
func replay(cmd Command) error {
	tx, ok := cmd.(*CompositeCommand)
	if !ok {
		return cmd.Execute()
	}
	for i, sub := range tx.commands {
		if err := replay(sub); err != nil {
			return fmt.Errorf("%w: %s: sub-command %d (%s): %w",
				ErrCommandCannotExecute, tx.ShortDescription(), i, sub.ShortDescription(), err)
		}
	}
	return nil
}

// FlushCommands clears both stacks. It fails while a transaction is open.
func (m *Manager) FlushCommands() error {
	if m.IsTransactionActive() {
		return ErrTransactionNotEnded
	}
	m.undoStack = nil
	m.redoStack = nil
	return nil
}

// IsTransactionActive reports whether at least one transaction is open.
func (m *Manager) IsTransactionActive() bool {
	return len(m.transactions) > 0
}

// TransactionDepth returns the number of open transactions.
func (m *Manager) TransactionDepth() int {
	return len(m.transactions)
}

// CanUndo reports whether Undo would find a command.
func (m *Manager) CanUndo() bool {
	return !m.IsTransactionActive() && len(m.undoStack) > 0
}

// CanRedo reports whether Redo would find a command.
func (m *Manager) CanRedo() bool {
	return !m.IsTransactionActive() && len(m.redoStack) > 0
}

// PeekUndo returns the command Undo would revert.
func (m *Manager) PeekUndo() (Command, bool) {
	if len(m.undoStack) == 0 {
		return nil, false
	}
	return m.undoStack[len(m.undoStack)-1], true
}

// PeekRedo returns the command Redo would re-execute.
func (m *Manager) PeekRedo() (Command, bool) {
	if len(m.redoStack) == 0 {
		return nil, false
	}
	return m.redoStack[len(m.redoStack)-1], true
}

// UndoStack returns a copy of the undo stack, oldest first.
func (m *Manager) UndoStack() []Command {
	return append([]Command(nil), m.undoStack...)
}

// RedoStack returns a copy of the redo stack, oldest first.
func (m *Manager) RedoStack() []Command {
	return append([]Command(nil), m.redoStack...)
}
