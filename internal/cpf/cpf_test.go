package cpf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid digits", input: "12345678909", want: "12345678909"},
		{name: "valid with mask", input: "529.982.247-25", want: "52998224725"},
		{name: "valid with spaces", input: " 987 654 321 00 ", want: "98765432100"},
		{name: "leading zeros", input: "00000000191", want: "00000000191"},
		{name: "repeated digits", input: "11111111111", wantErr: ErrInvalidChecksum},
		{name: "all zeros", input: "000.000.000-00", wantErr: ErrInvalidChecksum},
		{name: "wrong first check digit", input: "12345678919", wantErr: ErrInvalidChecksum},
		{name: "wrong second check digit", input: "12345678900", wantErr: ErrInvalidChecksum},
		{name: "too short", input: "1234567890", wantErr: ErrInvalidFormat},
		{name: "too long", input: "123456789012", wantErr: ErrInvalidFormat},
		{name: "letters only", input: "abcdefghijk", wantErr: ErrInvalidFormat},
		{name: "empty", input: "", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckDigits(t *testing.T) {
	for base, want := range map[string]string{
		"123456789": "12345678909",
		"987654321": "98765432100",
		"746971314": "74697131401",
		"168995350": "16899535009",
	} {
		got, err := CheckDigits(base)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.True(t, IsValid(got))
	}

	_, err := CheckDigits("12345")
	assert.Error(t, err)
	_, err = CheckDigits("12345678a")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	got, err := Format("12345678909")
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-09", got)

	_, err = Format("11111111111")
	assert.ErrorIs(t, err, ErrInvalidChecksum)
}

func FuzzValidate(f *testing.F) {
	for _, seed := range []string{"12345678909", "111.444.777-35", "11111111111", "", "abc", "9876543210000"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		got, err := Validate(raw)
		if err != nil {
			if len(Normalize(raw)) != Length {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.ErrorIs(t, err, ErrInvalidChecksum)
			}
			return
		}
		require.Len(t, got, Length)
		assert.Equal(t, strings.Trim(got, "0123456789"), "")
		again, err := Validate(got)
		require.NoError(t, err)
		assert.Equal(t, got, again)

		rebuilt, err := CheckDigits(got[:9])
		require.NoError(t, err)
		assert.Equal(t, got, rebuilt)
	})
}
