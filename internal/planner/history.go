package planner

import (
	"context"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
)

// Snapshot copies the current events ahead of a bulk AI change and
// returns the token that commits or discards it. A newer snapshot
// replaces any older one.
func (s *Store) Snapshot() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastToken++
	s.undo = &snapshot{token: s.lastToken, events: domain.CloneEvents(s.events)}
	return s.lastToken
}

// CommitSnapshot appends the AI-produced events and makes the snapshot
// revertible. If the snapshot was invalidated in the meantime the events
// are still appended, but nothing can be undone.
func (s *Store) CommitSnapshot(ctx context.Context, token uint64, added []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncEvents(ctx); err != nil {
		return nil, err
	}
	next := append(domain.CloneEvents(s.events), domain.CloneEvents(added)...)
	if err := s.writeEvents(ctx, next); err != nil {
		return nil, err
	}

	if s.undo != nil && s.undo.token == token {
		s.undo.committed = true
	} else {
		s.undo = nil
	}
	return domain.CloneEvents(next), nil
}

// DiscardSnapshot drops the snapshot taken with token, if it is still current
func (s *Store) DiscardSnapshot(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo != nil && s.undo.token == token {
		s.undo = nil
	}
}

// HasSnapshot reports whether Revert would succeed
func (s *Store) HasSnapshot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo != nil && s.undo.committed
}

// Revert restores the events saved by the last committed snapshot. It
// works once per snapshot.
func (s *Store) Revert(ctx context.Context) ([]domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncEvents(ctx); err != nil {
		return nil, err
	}
	if s.undo == nil || !s.undo.committed {
		return nil, apperrors.NewConflictError("undo", "nothing to undo")
	}
	if err := s.writeEvents(ctx, domain.CloneEvents(s.undo.events)); err != nil {
		return nil, err
	}
	s.undo = nil
	return domain.CloneEvents(s.events), nil
}
