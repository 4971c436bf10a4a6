package forecast

import (
	"context"
	"fmt"
)

// TargetProvider resolves the analyst mean price target for a symbol.
// A failed lookup is never fatal; the underlying scorer stays neutral.
type TargetProvider interface {
	TargetMeanPrice(ctx context.Context, symbol string) (float64, error)
}

// StaticTargets is a fixed-map provider for tests and dry runs.
type StaticTargets struct {
	Targets map[string]float64
	Err     error
}

func (s *StaticTargets) TargetMeanPrice(_ context.Context, symbol string) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	target, ok := s.Targets[symbol]
	if !ok {
		return 0, fmt.Errorf("no target for %s", symbol)
	}
	return target, nil
}
