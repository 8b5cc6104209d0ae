package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		loading       bool
		want          Decision
	}{
		{"loading wins even when authenticated", true, true, DecisionShowLoading},
		{"loading and anonymous", false, true, DecisionShowLoading},
		{"anonymous redirects", false, false, DecisionRedirectLogin},
		{"authenticated renders", true, false, DecisionRender},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Guard(tc.authenticated, tc.loading))
		})
	}
}
