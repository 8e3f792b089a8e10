package order

import (
	"context"
	"errors"
	"sync"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
)

// OrderSession is the optimistic mutation coordinator for a single order.
// Every mutation follows the same transaction shape: snapshot the current
// order, apply the transform to a copy, make the copy visible immediately,
// dispatch the full-payload remote save, and on remote failure restore the
// snapshot and propagate the error so chained operations can abort.
//
// Mutations are serialized per order: while one is in flight a second Apply
// is rejected outright instead of queued, matching the double-submission
// guards on the edit screen.
type OrderSession struct {
	repo     order.Repository
	mu       sync.Mutex
	current  *order.Order
	inFlight bool
}

// NewOrderSession creates a session around an already-loaded order
func NewOrderSession(repo order.Repository, o *order.Order) *OrderSession {
	return &OrderSession{repo: repo, current: o}
}

// Current returns the order as the operator currently sees it: the
// optimistic value while a save is in flight, the rolled-back snapshot
// after a failed one
func (s *OrderSession) Current() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply runs one mutation through the coordinator. A transform error aborts
// before anything becomes visible; a remote error rolls the visible state
// back to the pre-mutation snapshot.
func (s *OrderSession) Apply(ctx context.Context, transform func(*order.Order) error) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return shared.ErrMutationInFlight
	}
	s.inFlight = true
	snapshot := s.current

	next := s.current.Clone()
	if err := transform(next); err != nil {
		// Validation failures never reach the remote store and never
		// touch visible state
		s.inFlight = false
		s.mu.Unlock()
		return err
	}

	s.current = next
	s.mu.Unlock()

	err := s.repo.SaveWithLock(ctx, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.current = snapshot
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			// Concurrency conflicts and other store-side domain errors keep
			// their code through the rollback
			return err
		}
		return shared.NewRemoteFailure(err.Error())
	}
	return nil
}
