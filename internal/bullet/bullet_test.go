package bullet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLabeledRoundTrips(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		label, sep, detail string
	}{
		"Growth：Revenue up 30%": {"Growth", "：", "Revenue up 30%"},
		"Growth: Revenue up 30%": {"Growth", ": ", "Revenue up 30%"},
		"Growth:Revenue": {"Growth", ":", "Revenue"},
		"市场：份额第一": {"市场", "：", "份额第一"},
		"Risk:   three spaces": {"Risk", ":   ", "three spaces"},
		"Time: 10:30 am standup": {"Time", ": ", "10:30 am standup"},
		"A：first：second": {"A", "：", "first：second"},
	}

	for input, want := range cases {
		input, want := input, want
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			p := Split(input)
			require.True(t, p.Labeled)
			require.Equal(t, want.label, p.Label)
			require.Equal(t, want.sep, p.Sep)
			require.Equal(t, want.detail, p.Detail)
			require.Equal(t, input, p.Label+p.Sep+p.Detail)
			require.Equal(t, input, p.String())
		})
	}
}

func TestSplitFallsBackToUnlabeled(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "just text", ":", "：", ": detail", "label:", "label：", "   : x", "label:   "} {
		p := Split(input)
		require.False(t, p.Labeled, input)
		require.Equal(t, input, p.Label, input)
		require.Empty(t, p.Detail, input)
		require.Equal(t, input, p.String(), input)
	}
}

func TestWithLabelPreservesDetail(t *testing.T) {
	t.Parallel()

	p := Split("Growth：Revenue up 30%")
	require.Equal(t, "Scale：Revenue up 30%", p.WithLabel("Scale"))
	require.Equal(t, "Revenue up 30%", p.WithLabel(""))

	plain := Split("just text")
	require.Equal(t, "new text", plain.WithLabel("new text"))
}

func TestWithDetailPreservesLabel(t *testing.T) {
	t.Parallel()

	p := Split("Growth: Revenue up 30%")
	require.Equal(t, "Growth: Margin up 5%", p.WithDetail("Margin up 5%"))
	require.Equal(t, "Growth", p.WithDetail(""))

	plain := Split("Growth")
	require.Equal(t, "Growth：added", plain.WithDetail("added"))
	require.True(t, IsLabeled(plain.WithDetail("added")))
}

func TestCountLabeled(t *testing.T) {
	t.Parallel()

	require.Equal(t, 2, CountLabeled([]string{"A：x", "plain", "B: y"}))
	require.Zero(t, CountLabeled(nil))
}
