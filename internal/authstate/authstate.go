// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authstate holds the client's view of "am I logged in" as a small
// observable store. Screens subscribe to it instead of polling the server;
// the adapter layer flips it on login, logout, and session checks.
package authstate

import "sync"

// Subscriber receives the new authentication state after every change.
type Subscriber func(authenticated bool)

// Store is an observable boolean holding the client's authentication state.
//
// Store is an explicit object, not package state: each client owns its own
// instance, so tests and multiple adapters never share or reset globals.
// The zero value is not ready for use; construct with [NewStore].
type Store struct {
	mu            sync.Mutex
	authenticated bool
	nextID        int
	subscribers   []subscription
}

type subscription struct {
	id int
	fn Subscriber
}

func NewStore() *Store {
	return &Store{}
}

// Authenticated returns the current state.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Hydrate sets the state from a server session check without treating it as
// a transition: subscribers are notified only when the value actually
// changes, so a check that confirms the current state is silent. Safe to
// call any number of times.
func (s *Store) Hydrate(authenticated bool) {
	s.set(authenticated)
}

// Login marks the client authenticated, notifying subscribers when that is
// a change.
func (s *Store) Login() {
	s.set(true)
}

// Logout marks the client unauthenticated, notifying subscribers when that
// is a change.
func (s *Store) Logout() {
	s.set(false)
}

// Subscribe registers fn to be called synchronously on every state change,
// in registration order. The returned cancel function removes the
// subscription and is safe to call more than once.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) set(authenticated bool) {
	s.mu.Lock()
	if s.authenticated == authenticated {
		s.mu.Unlock()
		return
	}
	s.authenticated = authenticated

	// snapshot outside the lock so a subscriber may subscribe or cancel
	// without deadlocking
	subs := make([]subscription, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(authenticated)
	}
}
