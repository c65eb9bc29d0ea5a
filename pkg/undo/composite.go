package undo

import (
	"fmt"

	"github.com/aretw0/urakawa/pkg/event"
)

// CommandAdded is published by a CompositeCommand after a sub-command is inserted.
type CommandAdded struct {
	Composite *CompositeCommand
	Command   Command
	Index     int
}

// CompositeCommand executes an ordered list of sub-commands as one command.
//
// Execute runs the sub-commands in list order and stops at the first failure.
// Sub-commands that already succeeded are not rolled back; the error reports
// which one failed.
type CompositeCommand struct {
	short    string
	long     string
	commands []Command
	added    event.Bus[CommandAdded]
}

// NewCompositeCommand creates an empty composite.
func NewCompositeCommand(short, long string) *CompositeCommand {
	return &CompositeCommand{short: short, long: long}
}

// Insert places cmd at index, shifting later commands. Valid indices are 0..Count().
func (c *CompositeCommand) Insert(cmd Command, index int) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if sub, ok := cmd.(*CompositeCommand); ok && sub.contains(c) {
		return fmt.Errorf("%w: %s", ErrCompositeCycle, c.ShortDescription())
	}
	if index < 0 || index > len(c.commands) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfBounds, index, len(c.commands))
	}
	c.commands = append(c.commands, nil)
	copy(c.commands[index+1:], c.commands[index:])
	c.commands[index] = cmd
	c.added.Publish(CommandAdded{Composite: c, Command: cmd, Index: index})
	return nil
}

// contains reports whether target is c or nested anywhere below it.
func (c *CompositeCommand) contains(target *CompositeCommand) bool {
	if c == target {
		return true
	}
	for _, cmd := range c.commands {
		if sub, ok := cmd.(*CompositeCommand); ok && sub.contains(target) {
			return true
		}
	}
	return false
}

// Append adds cmd at the end.
func (c *CompositeCommand) Append(cmd Command) error {
	return c.Insert(cmd, len(c.commands))
}

// Count returns the number of sub-commands.
func (c *CompositeCommand) Count() int {
	return len(c.commands)
}

// Command returns the sub-command at index i, or nil when i is out of range.
func (c *CompositeCommand) Command(i int) Command {
	if i < 0 || i >= len(c.commands) {
		return nil
	}
	return c.commands[i]
}

// Commands returns a copy of the sub-command list.
func (c *CompositeCommand) Commands() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}

// Added returns the bus notified after each insertion.
func (c *CompositeCommand) Added() *event.Bus[CommandAdded] {
	return &c.added
}

// CanExecute is true when there is at least one sub-command and all of them can execute.
func (c *CompositeCommand) CanExecute() bool {
	if len(c.commands) == 0 {
		return false
	}
	for _, cmd := range c.commands {
		if !cmd.CanExecute() {
			return false
		}
	}
	return true
}

// CanUnExecute is true when every sub-command is reversible.
func (c *CompositeCommand) CanUnExecute() bool {
	for _, cmd := range c.commands {
		if !cmd.CanUnExecute() {
			return false
		}
	}
	return true
}

func (c *CompositeCommand) Execute() error {
	if len(c.commands) == 0 {
		return fmt.Errorf("%w: %s has no sub-commands", ErrCommandCannotExecute, c.ShortDescription())
	}
	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			return fmt.Errorf("%w: %s: sub-command %d (%s): %w",
				ErrCommandCannotExecute, c.ShortDescription(), i, cmd.ShortDescription(), err)
		}
	}
	return nil
}

// UnExecute reverts the sub-commands in reverse order. An empty composite has
// nothing to revert.
func (c *CompositeCommand) UnExecute() error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		cmd := c.commands[i]
		if err := cmd.UnExecute(); err != nil {
			return fmt.Errorf("%w: %s: sub-command %d (%s): %w",
				ErrCommandCannotUnExecute, c.ShortDescription(), i, cmd.ShortDescription(), err)
		}
	}
	return nil
}

// ShortDescription returns the composite's label, falling back to the label of
// its only sub-command.
func (c *CompositeCommand) ShortDescription() string {
	if c.short != "" {
		return c.short
	}
	if len(c.commands) == 1 {
		return c.commands[0].ShortDescription()
	}
	return fmt.Sprintf("%d commands", len(c.commands))
}

func (c *CompositeCommand) LongDescription() string {
	return c.long
}
