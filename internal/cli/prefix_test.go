package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchChoice(t *testing.T) {
	choices := []string{"name", "recent"}

	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{"name", "name", ""},
		{"n", "name", ""},
		{"NAM", "name", ""},
		{"rec", "recent", ""},
		{"RECENT", "recent", ""},
		{"x", "", "invalid sort"},
		{"", "", "want name, recent"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := MatchChoice("sort", tt.input, choices)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchChoiceAmbiguous(t *testing.T) {
	_, err := MatchChoice("status", "d", []string{"deny", "default"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	got, err := MatchChoice("status", "deny", []string{"deny", "denyall"})
	require.NoError(t, err)
	assert.Equal(t, "deny", got)
}
