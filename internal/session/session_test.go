package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/form"
)

func TestCreate(t *testing.T) {
	s := NewStore()
	sess := s.Create("alice")
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "alice", sess.User)
	assert.Equal(t, PageMenu, sess.Page)
	require.NotNil(t, sess.Draft)
	assert.False(t, sess.Draft.StartedAt.IsZero())

	other := s.Create("alice")
	assert.NotEqual(t, sess.Token, other.Token, "each login gets its own session")
}

func TestNavigate(t *testing.T) {
	cases := []struct {
		name string
		from Page
		to   Page
		ok   bool
	}{
		{"menu to form", PageMenu, PageForm, true},
		{"menu to history", PageMenu, PageHistory, true},
		{"form to menu", PageForm, PageMenu, true},
		{"form to form", PageForm, PageForm, true},
		{"history to menu", PageHistory, PageMenu, true},
		{"history to form", PageHistory, PageForm, false},
		{"form to history", PageForm, PageHistory, false},
		{"menu to menu", PageMenu, PageMenu, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			sess := s.Create("alice")
			require.NoError(t, s.With(sess.Token, func(sess *Session) error {
				sess.Page = tc.from
				return nil
			}))
			got, err := s.Navigate(sess.Token, tc.to)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, got.Page)
			} else {
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		})
	}

	t.Run("unknown token", func(t *testing.T) {
		s := NewStore()
		_, err := s.Navigate("nope", PageForm)
		assert.ErrorIs(t, err, errs.ErrNoSession)
	})
}

func TestNavigateToFormResetsDraft(t *testing.T) {
	s := NewStore()
	sess := s.Create("alice")
	require.NoError(t, s.With(sess.Token, func(sess *Session) error {
		form.SetDetails(sess.Draft, "stale input")
		return nil
	}))

	_, err := s.Navigate(sess.Token, PageForm)
	require.NoError(t, err)

	snap, ok := s.Snapshot(sess.Token)
	require.True(t, ok)
	assert.Empty(t, snap.Draft.Details)
}

func TestResetDraft(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := base
	s := NewStoreWithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	sess := s.Create("alice")
	_, err := s.Navigate(sess.Token, PageForm)
	require.NoError(t, err)
	before, _ := s.Snapshot(sess.Token)

	require.NoError(t, s.With(sess.Token, func(sess *Session) error {
		form.SetDetails(sess.Draft, "something")
		return nil
	}))
	require.NoError(t, s.ResetDraft(sess.Token))

	after, ok := s.Snapshot(sess.Token)
	require.True(t, ok)
	assert.Equal(t, PageForm, after.Page, "reset keeps the operator on the form")
	assert.Empty(t, after.Draft.Details)
	assert.True(t, after.Draft.StartedAt.After(before.Draft.StartedAt), "reset refreshes the start timestamp")
}

func TestDelete(t *testing.T) {
	s := NewStore()
	sess := s.Create("alice")
	s.Delete(sess.Token)
	_, ok := s.Snapshot(sess.Token)
	assert.False(t, ok)
	assert.ErrorIs(t, s.With(sess.Token, func(*Session) error { return nil }), errs.ErrNoSession)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	sess := s.Create("alice")
	snap, ok := s.Snapshot(sess.Token)
	require.True(t, ok)
	snap.Draft.Fields[0] = "mutated"
	fresh, _ := s.Snapshot(sess.Token)
	assert.Empty(t, fresh.Draft.Fields)
}
