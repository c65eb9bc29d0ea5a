package undo

import "errors"

var (
	// ErrNilCommand is returned when a nil command is passed to the manager or a composite.
	ErrNilCommand = errors.New("command is nil")

	// ErrCommandCannotExecute is wrapped by every failure to execute a command.
	ErrCommandCannotExecute = errors.New("command cannot execute")

	// ErrCommandCannotUnExecute is wrapped by every failure to un-execute a command.
	ErrCommandCannotUnExecute = errors.New("command cannot un-execute")

	// ErrCannotExecuteIrreversibleCommand is returned when an irreversible command
	// is executed while a transaction is open.
	ErrCannotExecuteIrreversibleCommand = errors.New("cannot execute irreversible command inside a transaction")

	// ErrTransactionNotStarted is returned by EndTransaction and CancelTransaction
	// when no transaction is open.
	ErrTransactionNotStarted = errors.New("undo/redo transaction is not started")

	// ErrTransactionNotEnded is returned by operations that require every
	// transaction to be closed.
	ErrTransactionNotEnded = errors.New("undo/redo transaction is not ended")

	// ErrCannotUndo is returned when there is nothing to undo.
	ErrCannotUndo = errors.New("cannot undo")

	// ErrCannotRedo is returned when there is nothing to redo.
	ErrCannotRedo = errors.New("cannot redo")

	// ErrCompositeCycle is returned when inserting a composite into itself or
	// into one of its own sub-commands.
	ErrCompositeCycle = errors.New("composite command would contain itself")

	// ErrIndexOutOfBounds is returned by CompositeCommand.Insert for an invalid index.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)
