package commands

import (
	"errors"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/pkg/guard"
)

var ErrProcessOrdersCommandIsNotConstructed = errors.New(
	"ProcessOrdersCommand must be created via NewProcessOrdersCommand constructor",
)

// ProcessOrdersCommand triggers one full order-consolidation run: fetch the
// newly-accepted orders, merge them into shipments, advance their status
// upstream, delegate placement downstream, and notify on the outcome.
// One scheduler tick produces exactly one command with a fresh RunContext.
type ProcessOrdersCommand struct {
	runContext kernel.RunContext
	guard      guard.ConstructorGuard
}

// NewProcessOrdersCommand creates the command for one orchestration run.
// The RunContext must be freshly constructed for this run.
func NewProcessOrdersCommand(rc kernel.RunContext) (ProcessOrdersCommand, error) {
	if err := rc.Validate(); err != nil {
		return ProcessOrdersCommand{}, err
	}
	return ProcessOrdersCommand{
		runContext: rc,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RunContext returns the run's correlation state.
func (c *ProcessOrdersCommand) RunContext() kernel.RunContext {
	return c.runContext
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessOrdersCommandIsNotConstructed if validation fails.
func (c *ProcessOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrProcessOrdersCommandIsNotConstructed,
	)
}
