package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Step represents a single unit of work in the Saga.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps.
type Orchestrator struct {
	sagaID string
	steps  []Step
	logger *slog.Logger
}

func NewOrchestrator(sagaID string, steps []Step, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{sagaID: sagaID, steps: steps, logger: logger}
}

// Start runs the saga steps sequentially.
// If a step fails, it triggers the compensation of all previously successful
// steps and returns the step's error. Compensation failures are joined to it.
func (o *Orchestrator) Start(ctx context.Context) error {
	var successfulSteps []Step

	for _, step := range o.steps {
		o.logger.DebugContext(ctx, "executing step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			o.logger.WarnContext(ctx, "step failed, starting rollback",
				"saga_id", o.sagaID,
				"step", step.Name(),
				"error", err,
			)
			if compErr := o.rollback(ctx, successfulSteps); compErr != nil {
				return errors.Join(err, compErr)
			}
			return err
		}
		// Track successful step for potential compensation (LIFO)
		successfulSteps = append(successfulSteps, step)
	}

	o.logger.DebugContext(ctx, "saga completed", "saga_id", o.sagaID, "steps", len(o.steps))
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) error {
	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		o.logger.DebugContext(ctx, "compensating step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			o.logger.ErrorContext(ctx, "CRITICAL: failed to compensate step",
				"saga_id", o.sagaID,
				"step", step.Name(),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("compensate %s: %w", step.Name(), err))
		}
	}
	return errors.Join(errs...)
}
