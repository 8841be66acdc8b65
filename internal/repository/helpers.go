package repository

import (
	"github.com/andy/clientms/internal/domain"
)

// clientColumns is the column list every SELECT uses, in scan order
const clientColumns = "id, firstName, lastName, address, postalCode, phoneNumber, clientType"

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanClient reads one Client row in clientColumns order
func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var clientType string

	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Address,
		&client.PostalCode,
		&client.PhoneNumber,
		&clientType,
	)
	if err != nil {
		return nil, err
	}

	client.Type = domain.ClientType(clientType)
	return client, nil
}
