package country_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/country"
)

func TestByCode(t *testing.T) {
	table, err := country.Load()
	require.NoError(t, err)

	dk, ok := table.ByCode("dk")
	require.True(t, ok)
	assert.Equal(t, "Denmark", dk.Name)
	assert.Equal(t, "45", dk.DialCode)

	_, ok = table.ByCode("XX")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	table, err := country.Load()
	require.NoError(t, err)

	cases := []struct {
		in   string
		code string
	}{
		{"Denmark", "DK"},
		{"danmark", "DK"},
		{"USA", "US"},
		{"uk", "GB"},
		{"Great Britain", "GB"},
		{"the netherlands", "NL"},
	}
	for _, c := range cases {
		got, ok := table.Suggest(c.in)
		require.True(t, ok, "no suggestion for %q", c.in)
		assert.Equal(t, c.code, got.Code, "input %q", c.in)
	}

	_, ok := table.Suggest("atlantis")
	assert.False(t, ok)
}

func TestNationalDigits(t *testing.T) {
	table, err := country.Load()
	require.NoError(t, err)
	dk, _ := table.ByCode("DK")
	us, _ := table.ByCode("US")

	cases := []struct {
		name    string
		country country.Country
		phone   string
		want    string
		ok      bool
	}{
		{"bare digits", dk, "12345678", "12345678", true},
		{"formatted", dk, "12 34 56 78", "12345678", true},
		{"own dial prefix", dk, "+45 12345678", "12345678", true},
		{"own 00 prefix", dk, "0045 12345678", "12345678", true},
		{"trunk zero", us, "0 555 123 4567", "5551234567", true},
		{"foreign dial prefix", dk, "+46 12345678", "", false},
		{"letters", dk, "CALL ME", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.country.NationalDigits(c.phone)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestValidNationalNumber(t *testing.T) {
	table, err := country.Load()
	require.NoError(t, err)
	dk, _ := table.ByCode("DK")

	assert.True(t, dk.ValidNationalNumber("12345678"))
	assert.False(t, dk.ValidNationalNumber("1234567"))
	assert.False(t, dk.ValidNationalNumber("123456789"))
}
