// internal/nodeid/parser_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr Address
	}{
		{
			name:         "simple",
			rawID:        "premium[3]",
			expectedAddr: New("premium", 3),
		},
		{
			name:         "zero period",
			rawID:        "survival_rate[0]",
			expectedAddr: New("survival_rate", 0),
		},
		{
			name:         "hyphenated name",
			rawID:        "net-premium[720]",
			expectedAddr: New("net-premium", 720),
		},
		{
			name:         "unicode name",
			rawID:        "prämie[1]",
			expectedAddr: New("prämie", 1),
		},
		{
			name:      "error - nested brackets",
			rawID:     "a[1][2]",
			expectErr: true,
		},
		{
			name:      "error - empty string",
			rawID:     "",
			expectErr: true,
		},
		{
			name:      "error - missing period",
			rawID:     "premium",
			expectErr: true,
		},
		{
			name:      "error - non-numeric period",
			rawID:     "premium[x]",
			expectErr: true,
		},
		{
			name:      "error - negative period",
			rawID:     "premium[-1]",
			expectErr: true,
		},
		{
			name:      "error - name starting with digit",
			rawID:     "1premium[1]",
			expectErr: true,
		},
		{
			name:      "error - overflowing period",
			rawID:     "premium[99999999999999999999]",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, raw := range []string{"a[0]", "benefit[12]", "x_y[7]", "überschuss[3]"} {
		addr, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, addr.String())
	}
}
