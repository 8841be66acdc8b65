package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchField(t *testing.T) {
	for _, f := range SearchFields {
		got, err := ParseSearchField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	for _, s := range []string{"", "ID", "firstName", "lastname", "type"} {
		_, err := ParseSearchField(s)
		assert.ErrorIs(t, err, ErrUnsupportedSearchField, "input %q", s)
	}
}

func TestSearchField_ValidateQuery(t *testing.T) {
	assert.NoError(t, SearchByID.ValidateQuery("12"))
	assert.Error(t, SearchByID.ValidateQuery("12345"))

	assert.NoError(t, SearchByLastName.ValidateQuery("Smith"))
	err := SearchByLastName.ValidateQuery("")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "lastName", ve.Field)

	assert.NoError(t, SearchByClientType.ValidateQuery("C"))
	assert.Error(t, SearchByClientType.ValidateQuery("Commercial"))

	assert.ErrorIs(t, SearchField(99).ValidateQuery("x"), ErrUnsupportedSearchField)
	assert.ErrorIs(t, SearchField(0).ValidateQuery("Smith"), ErrUnsupportedSearchField)
}

func TestSearchField_Valid(t *testing.T) {
	for _, f := range SearchFields {
		assert.True(t, f.Valid(), f.String())
	}
	assert.False(t, SearchField(0).Valid())
	assert.False(t, SearchField(len(SearchFields)+1).Valid())
}

func TestClientType_Label(t *testing.T) {
	assert.Equal(t, "Commercial", ClientTypeCommercial.Label())
	assert.Equal(t, "Residential", ClientTypeResidential.Label())
}

func TestClient_String(t *testing.T) {
	c := NewClient("Ada", "Lovelace", "12 St James Sq", "S1W 1A1", "020-555-0100", "C")
	c.ID = 7
	assert.Equal(t, "7 Ada Lovelace C", c.String())
}
