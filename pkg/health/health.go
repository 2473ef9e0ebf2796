package health

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report maps checker names to "ok" or the failure message.
type Report map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker concurrently. The error names the first failed
// dependency; the report always covers all of them.
func (s *service) Ready(ctx context.Context) (Report, error) {
	report := make(Report, len(s.checkers))
	var mu sync.Mutex
	var g errgroup.Group
	for _, ch := range s.checkers {
		g.Go(func() error {
			err := ch.Check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report[ch.Name()] = err.Error()
				return fmt.Errorf("%s: %w", ch.Name(), err)
			}
			report[ch.Name()] = "ok"
			return nil
		})
	}
	return report, g.Wait()
}
