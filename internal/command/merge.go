package command

import (
	"context"
	"fmt"

	"fundscontroller/core"
)

// Merge sequences sub-commands with ordered rollback. Execute runs
// them strictly in order and surfaces the first failure without
// rolling back; the caller decides whether to Undo. Undo unwinds only
// the successfully executed prefix, in reverse, and keeps going on
// sub-undo failures: leaving a partially unwound multi-leg position is
// worse than a partially failed unwind report.
func Merge(commands ...core.Command) core.Command {
	return &mergeCommand{commands: commands}
}

type mergeCommand struct {
	commands []core.Command
	executed int
}

func (c *mergeCommand) Execute(ctx context.Context) error {
	for idx, cmd := range c.commands {
		if err := cmd.Execute(ctx); err != nil {
			return fmt.Errorf("execute command %d: %w", idx, err)
		}
		c.executed++
	}
	return nil
}

func (c *mergeCommand) Undo(ctx context.Context) error {
	var undoErr error
	for idx := c.executed - 1; idx >= 0; idx-- {
		if err := c.commands[idx].Undo(ctx); err != nil {
			if undoErr == nil {
				undoErr = fmt.Errorf("undo command %d: %w", idx, err)
			} else {
				undoErr = fmt.Errorf("%v; undo command %d: %v", undoErr, idx, err)
			}
		}
		c.executed--
	}
	return undoErr
}
