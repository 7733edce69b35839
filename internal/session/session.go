// Package session holds per-operator state: who is logged in, which page they
// are on, and their in-progress draft. Sessions live in process memory and
// are destroyed on logout. Page changes go through an explicit transition
// table; nothing else mutates the current page.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/form"
	"github.com/opsdesk/ticketera/internal/model"
)

type Page string

const (
	PageMenu    Page = "menu"
	PageForm    Page = "form"
	PageHistory Page = "history"
)

// Valid page moves for a logged-in session. Login and logout are not listed:
// login creates the session on PageMenu, logout destroys it outright.
var transitions = map[Page][]Page{
	PageMenu:    {PageForm, PageHistory},
	PageForm:    {PageMenu, PageForm},
	PageHistory: {PageMenu},
}

func canTransition(from, to Page) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Session is the state of one logged-in operator.
type Session struct {
	Token     string
	User      string
	Page      Page
	Draft     *model.Draft
	CreatedAt time.Time
}

// Store is a token-indexed in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// NewStoreWithClock is for tests that need a fixed clock.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

// Create opens a session for user on the menu page with a fresh draft.
func (s *Store) Create(user string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{
		Token:     uuid.NewString(),
		User:      user,
		Page:      PageMenu,
		Draft:     form.Reset(now),
		CreatedAt: now,
	}
	s.sessions[sess.Token] = sess
	return sess
}

// Delete destroys the session. Used by logout; the full clear the original
// performs is simply the session ceasing to exist.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// With runs fn against the session under the store lock. Edits are strictly
// sequential per operator, so a single lock is enough.
func (s *Store) With(token string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return errs.ErrNoSession
	}
	return fn(sess)
}

// Snapshot returns a copy of the session's fields for read-only use.
func (s *Store) Snapshot(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	cp := *sess
	d := *sess.Draft
	d.Fields = make(map[int]string, len(sess.Draft.Fields))
	for k, v := range sess.Draft.Fields {
		d.Fields[k] = v
	}
	cp.Draft = &d
	return cp, true
}

// Navigate moves the session to page if the transition table allows it.
// Entering the form resets the draft, matching the original's
// reset-before-navigate, so the operator always starts from a clean form.
func (s *Store) Navigate(token string, to Page) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, errs.ErrNoSession
	}
	if !canTransition(sess.Page, to) {
		return nil, errs.ErrInvalidTransition
	}
	if to == PageForm {
		sess.Draft = form.Reset(s.now())
	}
	sess.Page = to
	return sess, nil
}

// ResetDraft gives the session a fresh draft without changing the page. Used
// after a successful save (the operator stays on the form) and by the
// explicit reset action.
func (s *Store) ResetDraft(token string) error {
	return s.With(token, func(sess *Session) error {
		sess.Draft = form.Reset(s.now())
		return nil
	})
}
