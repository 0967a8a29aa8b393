// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the normalized client-side state collections.
package store

import (
	"sync"

	"github.com/jeranaias/mumble-tui/internal/model"
)

// =============================================================================
// USER CHANGE NOTIFICATION
// =============================================================================

// UserChange describes one committed transition of a user entry.
// Before is nil for an insert, After is nil for a removal. Observers
// receive snapshots, so the diff is computed against genuine pre-update
// state no matter when the observer runs.
type UserChange struct {
	Before *model.User
	After  *model.User
}

// UserObserver receives user store change notifications.
type UserObserver func(change UserChange)

// =============================================================================
// USERS STORE
// =============================================================================

// Users is the normalized user collection. Insertion order is kept for
// display; it carries no other meaning.
type Users struct {
	mu        sync.RWMutex
	users     []model.User
	currentID *uint32
	observers []UserObserver
}

// NewUsers creates an empty user store.
func NewUsers() *Users {
	return &Users{}
}

// Observe registers an observer for upsert and removal transitions.
// Partial updates (comment, profile picture, talking) do not notify:
// talking changes at audio-frame rate and the large-asset partials
// cannot change anything an observer diffs on.
func (s *Users) Observe(fn UserObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Upsert inserts the user or replaces the existing entry with the same
// id. On replace, Comment and ProfilePicture are carried over from the
// stored entry: a full user update from the backend never contains
// them, and a partial overwrite must not erase large assets it doesn't
// carry.
func (s *Users) Upsert(u model.User) {
	s.mu.Lock()

	var change UserChange
	idx := s.indexOf(u.ID)
	if idx < 0 {
		s.users = append(s.users, u)
		after := u
		change = UserChange{After: &after}
	} else {
		before := s.users[idx]
		u.Comment = before.Comment
		u.ProfilePicture = before.ProfilePicture
		s.users[idx] = u
		after := u
		change = UserChange{Before: &before, After: &after}
	}

	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(change)
	}
}

// Remove deletes the user with the given id. Removing an absent id is
// a no-op and returns false.
func (s *Users) Remove(id uint32) bool {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	before := s.users[idx]
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	if s.currentID != nil && *s.currentID == id {
		s.currentID = nil
	}

	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(UserChange{Before: &before})
	}
	return true
}

// SetComment is the dedicated partial update for the user comment.
// Returns false when the id is unknown.
func (s *Users) SetComment(id uint32, comment string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.users[idx].Comment = comment
	return true
}

// SetProfilePicture is the dedicated partial update for the profile
// picture. Returns false when the id is unknown.
func (s *Users) SetProfilePicture(id uint32, picture string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.users[idx].ProfilePicture = picture
	return true
}

// SetTalking updates the ephemeral talking flag. Returns false when
// the id is unknown.
func (s *Users) SetTalking(id uint32, talking bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.users[idx].Talking = talking
	return true
}

// =============================================================================
// CURRENT USER
// =============================================================================

// SetCurrentID resolves the current-user marker to the user with this
// id. The marker is only ever an id into the live collection, never a
// duplicated object; pointing it at an unknown id fails.
func (s *Users) SetCurrentID(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false
	}
	s.currentID = &id
	return true
}

// Current returns a snapshot of the current user, if resolved.
func (s *Users) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == nil {
		return model.User{}, false
	}
	idx := s.indexOf(*s.currentID)
	if idx < 0 {
		return model.User{}, false
	}
	return s.users[idx], true
}

// =============================================================================
// READS
// =============================================================================

// Get returns a snapshot of the user with the given id.
func (s *Users) Get(id uint32) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.User{}, false
	}
	return s.users[idx], true
}

// All returns a snapshot of the collection in insertion order.
func (s *Users) All() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// Len returns the number of users.
func (s *Users) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Reset drops all users and the current-user marker. Observers stay
// registered.
func (s *Users) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.currentID = nil
}

// indexOf returns the index of the user with the given id, or -1.
// Callers must hold the lock.
func (s *Users) indexOf(id uint32) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}
