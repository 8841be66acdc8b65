package domain

import "fmt"

// SearchField selects the column a search query is matched against
type SearchField int

const (
	SearchByID SearchField = iota + 1
	SearchByLastName
	SearchByClientType
)

// SearchFields lists the supported selectors in display order
var SearchFields = []SearchField{SearchByID, SearchByLastName, SearchByClientType}

// String returns the column name for the selector
func (f SearchField) String() string {
	switch f {
	case SearchByID:
		return "id"
	case SearchByLastName:
		return "lastName"
	case SearchByClientType:
		return "clientType"
	default:
		return fmt.Sprintf("SearchField(%d)", int(f))
	}
}

// Label returns the selector name shown to users
func (f SearchField) Label() string {
	switch f {
	case SearchByID:
		return "Client ID"
	case SearchByLastName:
		return "Last Name"
	case SearchByClientType:
		return "Client Type"
	default:
		return f.String()
	}
}

// Valid reports whether f is one of the supported selectors
func (f SearchField) Valid() bool {
	return f == SearchByID || f == SearchByLastName || f == SearchByClientType
}

// ValidateQuery applies the selector's field rule to a raw query
func (f SearchField) ValidateQuery(query string) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedSearchField, f)
	}

	switch f {
	case SearchByID:
		return ValidateSearchID(query)
	case SearchByClientType:
		return ValidateClientType(query)
	default:
		return ValidateName("lastName", query)
	}
}

// ParseSearchField converts a selector name ("id", "lastName", "clientType")
// into a SearchField
func ParseSearchField(s string) (SearchField, error) {
	for _, f := range SearchFields {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedSearchField, s)
}
