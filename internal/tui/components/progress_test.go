package components

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		total   int
		current int
		label   string
	}{
		{name: "empty deck", total: 0, current: 0, label: "0/0"},
		{name: "first slide", total: 12, current: 1, label: "1/12"},
		{name: "last slide", total: 12, current: 12, label: "12/12"},
		{name: "past the end", total: 3, current: 5, label: "5/3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			view := NewProgress(tc.total, "#22d3ee").View(tc.current)
			require.Contains(t, view, tc.label)
			require.Greater(t, len(view), len(tc.label))
		})
	}
}

func TestProgressWithoutAccent(t *testing.T) {
	t.Parallel()

	p := NewProgress(4, "")
	require.Equal(t, 4, p.total)
	require.Contains(t, p.View(2), "2/4")
}
