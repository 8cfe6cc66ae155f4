package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gtr/internal/config"
	"gtr/internal/selector"
	"gtr/internal/ui"
)

// ListCommand handles the list command.
type ListCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand.
func NewListCommand(cfg *config.Config, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suite, err := selector.FilterLocation(lc.config.Flags.Location, args)
	if errors.Is(err, selector.ErrNoMatch) {
		color.Yellow("No tests found")
		return nil
	}
	if err != nil {
		return err
	}

	if suite.Count() == 0 {
		color.Yellow("No tests found")
		return nil
	}

	return lc.formatter.PrintTestList(suite, lc.config.Flags.TestCases)
}
