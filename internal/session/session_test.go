package session_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/internal/session"
	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.New(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserID_EmptyUntilSet(t *testing.T) {
	store := newStore(t)

	userID, err := store.UserID()
	require.NoError(t, err)
	require.Empty(t, userID)

	require.NoError(t, store.SetUserID("3f9d"))
	userID, err = store.UserID()
	require.NoError(t, err)
	require.Equal(t, "3f9d", userID)
}

func TestSetUserID_OverwritesPrevious(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetUserID("first"))
	require.NoError(t, store.SetUserID("second"))

	userID, err := store.UserID()
	require.NoError(t, err)
	require.Equal(t, "second", userID)
}

func TestPreferences_RoundTrip(t *testing.T) {
	store := newStore(t)

	answers, err := store.Preferences()
	require.NoError(t, err)
	require.Nil(t, answers)

	saved := []trip.QuestionAnswer{
		{Question: "Beach or mountains?", Answer: "Beach"},
		{Question: "What is your home airport?", Answer: "BCN"},
	}
	require.NoError(t, store.SetPreferences(saved))

	answers, err = store.Preferences()
	require.NoError(t, err)
	require.Equal(t, saved, answers)
}

func TestClearPreferences_ForcesReonboarding(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetPreferences([]trip.QuestionAnswer{
		{Question: "Budget or luxury?", Answer: "Budget"},
	}))
	require.NoError(t, store.ClearPreferences())

	answers, err := store.Preferences()
	require.NoError(t, err)
	require.Nil(t, answers)
}

func TestValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	store, err := session.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SetUserID("persisted"))
	require.NoError(t, store.Close())

	reopened, err := session.New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	userID, err := reopened.UserID()
	require.NoError(t, err)
	require.Equal(t, "persisted", userID)
}
