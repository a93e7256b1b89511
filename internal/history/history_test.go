package history_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/internal/history"
)

func TestNavigation_WalksBackAndForward(t *testing.T) {
	h := history.New(t.TempDir())
	h.Add("first")
	h.Add("second")

	entry, ok := h.Previous("draft")
	require.True(t, ok)
	require.Equal(t, "second", entry)

	entry, ok = h.Previous("draft")
	require.True(t, ok)
	require.Equal(t, "first", entry)

	entry, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "second", entry)

	// Walking past the newest entry restores the saved draft.
	entry, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "draft", entry)
}

func TestAdd_SkipsDuplicatesAndBlanks(t *testing.T) {
	h := history.New(t.TempDir())
	h.Add("hello")
	h.Add("hello")
	h.Add("  ")

	entry, ok := h.Previous("")
	require.True(t, ok)
	require.Equal(t, "hello", entry)

	_, ok = h.Previous("")
	require.False(t, ok)
}

func TestEntriesPersistAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	h := history.New(dir)
	h.Add("multi\nline entry")

	reloaded := history.New(dir)
	entry, ok := reloaded.Previous("")
	require.True(t, ok)
	require.Equal(t, "multi\nline entry", entry)
}
