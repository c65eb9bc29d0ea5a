package undo

import (
	"errors"
	"fmt"
)

// Command is a reversible unit of mutation.
//
// Execute must either apply the whole change or leave state untouched, and
// report failure with an error wrapping ErrCommandCannotExecute. UnExecute is
// the inverse, reporting failure with ErrCommandCannotUnExecute.
type Command interface {
	Execute() error
	UnExecute() error

	// CanExecute reports whether Execute is expected to succeed.
	CanExecute() bool

	// CanUnExecute reports whether the command is reversible.
	CanUnExecute() bool

	// ShortDescription is a non-empty human-readable label, e.g. for an Undo menu.
	ShortDescription() string

	// LongDescription may be empty.
	LongDescription() string
}

// FuncCommand adapts a pair of functions to the Command interface.
// A FuncCommand without Undo is irreversible.
type FuncCommand struct {
	Short string
	Long  string
	Do    func() error
	Undo  func() error
}

// NewFuncCommand creates a command running do and reverting with undo.
func NewFuncCommand(short string, do, undo func() error) *FuncCommand {
	return &FuncCommand{Short: short, Do: do, Undo: undo}
}

func (c *FuncCommand) Execute() error {
	if c.Do == nil {
		return fmt.Errorf("%w: %s has no action", ErrCommandCannotExecute, c.ShortDescription())
	}
	return wrapExecute(c, c.Do())
}

func (c *FuncCommand) UnExecute() error {
	if c.Undo == nil {
		return fmt.Errorf("%w: %s is irreversible", ErrCommandCannotUnExecute, c.ShortDescription())
	}
	return wrapUnExecute(c, c.Undo())
}

func (c *FuncCommand) CanExecute() bool   { return c.Do != nil }
func (c *FuncCommand) CanUnExecute() bool { return c.Undo != nil }

func (c *FuncCommand) ShortDescription() string {
	if c.Short == "" {
		return "command"
	}
	return c.Short
}

func (c *FuncCommand) LongDescription() string { return c.Long }

func wrapExecute(c Command, err error) error {
	if err == nil || errors.Is(err, ErrCommandCannotExecute) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrCommandCannotExecute, c.ShortDescription(), err)
}

func wrapUnExecute(c Command, err error) error {
	if err == nil || errors.Is(err, ErrCommandCannotUnExecute) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrCommandCannotUnExecute, c.ShortDescription(), err)
}
