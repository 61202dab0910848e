package coordinator

import "context"

// FuncStep adapts a pair of functions to Step. A nil compensate is a no-op,
// which suits a final step with nothing to undo.
type FuncStep struct {
	name       string
	execute    func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

func NewFuncStep(name string, execute, compensate func(ctx context.Context) error) *FuncStep {
	return &FuncStep{
		name:       name,
		execute:    execute,
		compensate: compensate,
	}
}

func (s *FuncStep) Name() string { return s.name }

func (s *FuncStep) Execute(ctx context.Context) error {
	return s.execute(ctx)
}

func (s *FuncStep) Compensate(ctx context.Context) error {
	if s.compensate == nil {
		return nil
	}
	return s.compensate(ctx)
}
