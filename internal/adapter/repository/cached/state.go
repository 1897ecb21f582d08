package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	domain "userdeck/internal/domain/user"
	"userdeck/internal/usecase/user"
)

// StateStore puts a fast cache (Redis) in front of a durable store (SQL).
// Reads are cache-aside; writes go to the durable store first and then
// refresh the cache.
type StateStore struct {
	durable user.StateStore
	cache   user.StateStore
	log     *zap.Logger
	group   singleflight.Group
}

// NewStateStore creates a new cached StateStore.
func NewStateStore(durable, cache user.StateStore, log *zap.Logger) *StateStore {
	return &StateStore{
		durable: durable,
		cache:   cache,
		log:     log,
	}
}

// Get reads from the cache, falling back to the durable store on a miss.
// Concurrent misses for one session share a single durable read.
func (s *StateStore) Get(ctx context.Context, sessionID string) (*domain.State, error) {
	cachedState, err := s.cache.Get(ctx, sessionID)
	if err != nil {
		s.log.Warn("session cache get error, falling back to durable store", zap.String("session_id", sessionID), zap.Error(err))
	} else if cachedState != nil {
		return cachedState, nil
	}

	result, err, _ := s.group.Do("session:"+sessionID, func() (any, error) {
		state, err := s.durable.Get(ctx, sessionID)
		if err != nil || state == nil {
			return state, err
		}

		if err := s.cache.Save(ctx, sessionID, *state); err != nil {
			s.log.Warn("failed to warm session cache", zap.String("session_id", sessionID), zap.Error(err))
		}
		return state, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	state, _ := result.(*domain.State)
	if state == nil {
		return nil, nil
	}
	// Callers sharing a flight must not share the slice.
	cp := *state
	cp.Users = append([]domain.User(nil), state.Users...)
	return &cp, nil
}

// Save writes to the durable store, then to the cache.
func (s *StateStore) Save(ctx context.Context, sessionID string, state domain.State) error {
	if err := s.durable.Save(ctx, sessionID, state); err != nil {
		return err
	}

	if err := s.cache.Save(ctx, sessionID, state); err != nil {
		// A stale cache entry would shadow the new row, so drop it.
		s.log.Warn("failed to update session cache", zap.String("session_id", sessionID), zap.Error(err))
		if err := s.cache.Delete(ctx, sessionID); err != nil {
			s.log.Warn("failed to invalidate session cache", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return nil
}

// Delete removes the session from both stores.
func (s *StateStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.durable.Delete(ctx, sessionID); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		s.log.Warn("failed to invalidate session cache after delete", zap.String("session_id", sessionID), zap.Error(err))
	}
	return nil
}
