package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Quantity
	}{
		{
			name:  "gibibytes",
			input: "4G",
			want:  Quantity{Value: 4, Unit: UnitGiB},
		},
		{
			name:  "mebibytes",
			input: "512M",
			want:  Quantity{Value: 512, Unit: UnitMiB},
		},
		{
			name:  "decimal magnitude",
			input: "1.5G",
			want:  Quantity{Value: 1.5, Unit: UnitGiB},
		},
		{
			name:  "surrounding whitespace",
			input: " 2G ",
			want:  Quantity{Value: 2, Unit: UnitGiB},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{
			name:   "unknown suffix",
			input:  "4X",
			reason: `unknown unit suffix "X"`,
		},
		{
			name:   "lowercase suffix is not accepted",
			input:  "4g",
			reason: `unknown unit suffix "g"`,
		},
		{
			name:   "missing suffix",
			input:  "40",
			reason: "missing unit suffix",
		},
		{
			name:   "missing magnitude",
			input:  "G",
			reason: "missing magnitude",
		},
		{
			name:   "non-numeric magnitude",
			input:  "abcG",
			reason: "non-numeric magnitude",
		},
		{
			name:   "empty",
			input:  "",
			reason: "empty value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, IsInvalidQuantity(err))
			assert.Contains(t, err.Error(), tt.reason)
			// A parse failure must never look like a usable zero quantity.
			assert.Equal(t, Quantity{}, got)
		})
	}
}

func TestParse_UnitConversion(t *testing.T) {
	four, err := Parse("4G")
	require.NoError(t, err)
	assert.Equal(t, 4096.0, four.MiB())
	assert.Equal(t, 4.0, four.GiB())

	half, err := Parse("512M")
	require.NoError(t, err)
	assert.Equal(t, 512.0, half.MiB())
	assert.Equal(t, 0.5, half.GiB())
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("4")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	tests := []struct {
		name  string
		input string
	}{
		{name: "zero", input: "0"},
		{name: "negative", input: "-1"},
		{name: "fractional", input: "2.5"},
		{name: "suffixed", input: "4G"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCount(tt.input)
			require.Error(t, err)
			assert.True(t, IsInvalidQuantity(err))
		})
	}
}

func TestFromMiB_Rendering(t *testing.T) {
	tests := []struct {
		name string
		mib  float64
		want string
	}{
		{name: "whole gibibytes", mib: 4096, want: "4G"},
		{name: "whole mebibytes", mib: 512, want: "512M"},
		{name: "not gibibyte aligned", mib: 1536, want: "1536M"},
		{name: "fractional mebibytes", mib: 1536.5, want: "1536.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromMiB(tt.mib).String())
		})
	}
}

func TestSum(t *testing.T) {
	twoG, err := Parse("2G")
	require.NoError(t, err)
	halfG, err := Parse("512M")
	require.NoError(t, err)

	total := Sum(twoG, halfG, halfG)
	assert.Equal(t, Quantity{Value: 3, Unit: UnitGiB}, total)
	assert.Equal(t, "3G", total.String())

	// 2.5 GiB is not integral in gibibytes, so it stays in mebibytes.
	assert.Equal(t, "2560M", twoG.Add(halfG).String())
}

func TestString_RoundTrip(t *testing.T) {
	for _, input := range []string{"4G", "512M", "1.5G"} {
		q, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, input, q.String())
	}
}
