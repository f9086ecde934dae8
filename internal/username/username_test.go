package username

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Neo_User_01", "neo_user_01"},
		{"neo user!", "neouser"},
		{"  ab ", "ab"},
		{"Żółw_1", "w_1"},
		{"a-b.c", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"Neo_User", "x!y@z", "___"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestCanonicalize(t *testing.T) {
	got, err := Canonicalize("NEO_user")
	require.NoError(t, err)
	assert.Equal(t, "neo_user", got)

	_, err = Canonicalize("!!")
	assert.EqualError(t, err, "username is required")

	_, err = Canonicalize("Ab")
	assert.EqualError(t, err, "username must be at least 3 characters")

	got, err = Canonicalize("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestFormatIdentity(t *testing.T) {
	assert.Equal(t, "ANON", FormatIdentity(""))
	assert.Equal(t, "ALIC", FormatIdentity("alice@example.com"))
	assert.Equal(t, "BO@X", FormatIdentity("bo@x"))
	assert.Equal(t, "AB", FormatIdentity("ab"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "neo", Display("neo", "neo@example.com"))
	assert.Equal(t, "NEO@", Display("", "neo@example.com"))
	assert.Equal(t, "ANON", Display("", ""))
}
