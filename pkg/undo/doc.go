/*
Package undo provides reversible commands and the undo/redo manager that is the
single entry point for changing document state.

A [Command] encapsulates one mutation and its inverse. A [CompositeCommand]
groups commands that are executed in order and un-executed in reverse order.
The [Manager] records executed commands on an undo stack, and supports nested
transactions that collapse everything executed between StartTransaction and
EndTransaction into one undoable unit.

	m := undo.NewManager()
	m.StartTransaction("rename chapter", "")
	_ = m.Execute(setTitle)
	_ = m.Execute(setHeading)
	_ = m.EndTransaction()
	_ = m.Undo() // reverts both

The manager is not safe for concurrent use.
*/
package undo
