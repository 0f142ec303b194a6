package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmphasis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no markers", "plain answer", "plain answer"},
		{"single marker pair", "The total is **42**.", "The total is 42."},
		{"two marker pairs", "**West** leads with **120.50**.", "West leads with 120.50."},
		{"unclosed marker kept", "broken **marker", "broken **marker"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderEmphasis(tt.input, false))
		})
	}
}

func TestRenderEmphasisColorized(t *testing.T) {
	// Color output depends on TTY detection, but the inner text always
	// survives and the markers never do.
	got := RenderEmphasis("total **42** here", true)
	assert.Contains(t, got, "42")
	assert.NotContains(t, got, "**")
}

func TestResolveCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain name",
			input: "sales",
			want:  []string{"sales", "sales.csv"},
		},
		{
			name:  "name with extension",
			input: "sales.csv",
			want:  []string{"sales.csv", "sales.csv.csv"},
		},
		{
			name:  "spaces expand to underscore and hyphen",
			input: "monthly sales",
			want: []string{
				"monthly sales", "monthly sales.csv",
				"monthly_sales", "monthly_sales.csv",
				"monthly-sales", "monthly-sales.csv",
			},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  sales  ",
			want:  []string{"sales", "sales.csv"},
		},
		{
			name:  "empty name",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCandidates(tt.input))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.NoError(t, f.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
