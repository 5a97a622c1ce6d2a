package health

import "context"

// Checker probes a single external dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase reports whether the service can accept traffic.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

// NewService builds a readiness service over the given checkers. The first
// failing checker decides the answer.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return err
		}
	}
	return nil
}
