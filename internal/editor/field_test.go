package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldCommitsOnce(t *testing.T) {
	t.Parallel()

	var writes []string
	f := NewField("old", func(v string) error {
		writes = append(writes, v)
		return nil
	})

	f.SetDraft("ignored")
	require.Equal(t, "old", f.Draft())

	f.Begin()
	f.SetDraft("n")
	f.SetDraft("ne")
	f.SetDraft("new")
	require.True(t, f.Dirty())
	require.Empty(t, writes)

	require.NoError(t, f.Commit())
	require.Equal(t, []string{"new"}, writes)
	require.Equal(t, "new", f.Value())
	require.False(t, f.Active())
}

func TestFieldUnchangedCommitSkipsWrite(t *testing.T) {
	t.Parallel()

	called := false
	f := NewField("same", func(string) error { called = true; return nil })
	f.Begin()
	require.NoError(t, f.Commit())
	require.False(t, called)
	require.False(t, f.Active())
}

func TestFieldCommitErrorKeepsDraft(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := NewField("v", func(string) error { return boom })
	f.Begin()
	f.SetDraft("draft")

	require.ErrorIs(t, f.Commit(), boom)
	require.True(t, f.Active())
	require.Equal(t, "draft", f.Draft())
	require.Equal(t, "v", f.Value())
}

func TestFieldCancel(t *testing.T) {
	t.Parallel()

	f := NewField("v", nil)
	f.Begin()
	f.SetDraft("changed")
	f.Cancel()
	require.False(t, f.Dirty())
	require.Equal(t, "v", f.Draft())
}
