package domain

import "fmt"

// ClientType distinguishes commercial from residential clients
type ClientType string

const (
	ClientTypeCommercial  ClientType = "C"
	ClientTypeResidential ClientType = "R"
)

// Label returns the human-readable name of the client type
func (t ClientType) Label() string {
	switch t {
	case ClientTypeCommercial:
		return "Commercial"
	case ClientTypeResidential:
		return "Residential"
	default:
		return string(t)
	}
}

// Client is a single customer record. Field order matches the validation
// order: the first failing field is the one reported.
type Client struct {
	ID          int64
	FirstName   string     `validate:"required,max=20"`
	LastName    string     `validate:"required,max=20"`
	Address     string     `validate:"required,max=50"`
	PostalCode  string     `validate:"required,max=7,postalcode"`
	PhoneNumber string     `validate:"max=13,phone"`
	Type        ClientType `validate:"oneof=C R"`
}

// NewClient creates a client from raw field strings. Values are kept exactly
// as supplied; call Validate before persisting.
func NewClient(firstName, lastName, address, postalCode, phoneNumber, clientType string) *Client {
	return &Client{
		FirstName:   firstName,
		LastName:    lastName,
		Address:     address,
		PostalCode:  postalCode,
		PhoneNumber: phoneNumber,
		Type:        ClientType(clientType),
	}
}

// Validate returns the first field rule the client violates, as a
// *ValidationError, or nil if every field is well-formed.
func (c *Client) Validate() error {
	return validateStruct(c)
}

// String renders the client the way result lists show it
func (c *Client) String() string {
	return fmt.Sprintf("%d %s %s %s", c.ID, c.FirstName, c.LastName, c.Type)
}
