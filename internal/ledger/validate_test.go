package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{"iso passes through", "2024-03-05", "2024-03-05", nil},
		{"dotted", "05.03.2024", "2024-03-05", nil},
		{"slashed", "05/03/2024", "2024-03-05", nil},
		{"dashed day first", "05-03-2024", "2024-03-05", nil},
		{"surrounding spaces", " 2024-03-05 ", "2024-03-05", nil},
		{"not a date", "not-a-date", "", ErrBadDate},
		{"impossible day", "2024-13-40", "", ErrBadDate},
		{"empty", "", "", ErrBadDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	iso, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	again, err := ParseDate(iso)
	require.NoError(t, err)
	assert.Equal(t, iso, again)
}

func TestParsePaymentAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{"valid", "120.00", "120.00", nil},
		{"no fraction", "80", "80", nil},
		{"exactly zero rejected", "0", "", ErrAmountNotPositive},
		{"zero with fraction rejected", "0.00", "", ErrAmountNotPositive},
		{"negative rejected", "-5", "", ErrAmountNotPositive},
		{"not a number", "abc", "", ErrBadAmount},
		{"empty", "", "", ErrBadAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePaymentAmount(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestParseInitialDebt(t *testing.T) {
	// Zero opening debt is a valid account; negative is not.
	got, err := ParseInitialDebt("0")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseInitialDebt("500.00")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("500.00")))

	_, err = ParseInitialDebt("-1")
	assert.ErrorIs(t, err, ErrNegativeDebt)

	_, err = ParseInitialDebt("five hundred")
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear("2024"))
	assert.NoError(t, ValidateYear("1999"))
	assert.ErrorIs(t, ValidateYear("24"), ErrBadYear)
	assert.ErrorIs(t, ValidateYear("20244"), ErrBadYear)
	assert.ErrorIs(t, ValidateYear("20a4"), ErrBadYear)
	assert.ErrorIs(t, ValidateYear(""), ErrBadYear)
}
