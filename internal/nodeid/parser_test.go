package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		raw        string
		expectErr  bool
		expectedID ID
	}{
		{name: "bare label", raw: "Read", expectedID: New("Read")},
		{name: "label with ordinal", raw: "Read(2)", expectedID: NewWithOrdinal("Read", 2)},
		{name: "label with spaces and dashes", raw: "Band-Maths op(12)", expectedID: NewWithOrdinal("Band-Maths op", 12)},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - ordinal one", raw: "Read(1)", expectErr: true},
		{name: "error - invalid character", raw: "Read/Write", expectErr: true},
		{name: "error - unbalanced suffix", raw: "Read(2", expectErr: true},
		{name: "error - just dot", raw: ".", expectErr: true},
		{name: "error - leading space", raw: " Read", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestID_RoundTrip(t *testing.T) {
	for _, raw := range []string{"Read", "Write(3)", "Subset_1.2(10)"} {
		t.Run(raw, func(t *testing.T) {
			id, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, id.String())
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Band-Maths", Sanitize("Band/Maths"))
	assert.Equal(t, "Read", Sanitize("  Read "))
	assert.Equal(t, "node", Sanitize("   "))
}
