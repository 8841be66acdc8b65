package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/clientms/internal/db"
	"github.com/andy/clientms/internal/domain"
)

// ClientRepo is a SQL implementation of ClientRepository
type ClientRepo struct {
	db *db.DB
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB) *ClientRepo {
	return &ClientRepo{db: database}
}

// Create inserts a new client into the database
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) (int64, error) {
	if client.ID != 0 {
		return 0, fmt.Errorf("cannot create client %d: %w", client.ID, domain.ErrIDAssigned)
	}
	if err := client.Validate(); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO Client (firstName, lastName, address, postalCode, phoneNumber, clientType)
		VALUES (?, ?, ?, ?, ?, ?)`

	id, err := r.db.InsertID(ctx, query,
		client.FirstName,
		client.LastName,
		client.Address,
		client.PostalCode,
		client.PhoneNumber,
		string(client.Type),
	)
	if err != nil {
		return 0, domain.NewStorageError("create client", err)
	}

	client.ID = id
	return id, nil
}

// Find retrieves all clients whose selected column equals value
func (r *ClientRepo) Find(ctx context.Context, field domain.SearchField, value string) ([]*domain.Client, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSearchField, field)
	}

	var (
		where string
		arg   any
	)

	switch field {
	case domain.SearchByID:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			// No stored id can match a non-numeric value
			return []*domain.Client{}, nil
		}
		where, arg = "id = ?", id
	case domain.SearchByLastName:
		where, arg = "lastName = ?", value
	case domain.SearchByClientType:
		where, arg = "clientType = ?", value
	}

	query := "SELECT " + clientColumns + " FROM Client WHERE " + where + " ORDER BY id"
	return r.query(ctx, "search clients", query, arg)
}

// GetByID retrieves a client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := "SELECT " + clientColumns + " FROM Client WHERE id = ?"

	client, err := scanClient(r.db.QueryRowContext(ctx, r.db.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, domain.ErrClientNotFound)
		}
		return nil, domain.NewStorageError("get client", err)
	}

	return client, nil
}

// List retrieves every client in id order
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	query := "SELECT " + clientColumns + " FROM Client ORDER BY id"
	return r.query(ctx, "list clients", query)
}

// Count returns the number of stored clients
func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Client").Scan(&n); err != nil {
		return 0, domain.NewStorageError("count clients", err)
	}
	return n, nil
}

// Update overwrites all fields of an existing client except its id
func (r *ClientRepo) Update(ctx context.Context, id int64, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE Client
		SET firstName = ?, lastName = ?, address = ?, postalCode = ?, phoneNumber = ?, clientType = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		client.FirstName,
		client.LastName,
		client.Address,
		client.PostalCode,
		client.PhoneNumber,
		string(client.Type),
		id,
	)
	if err != nil {
		return domain.NewStorageError("update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("get rows affected", err)
	}
	if rows == 0 {
		return fmt.Errorf("client %d: %w", id, domain.ErrClientNotFound)
	}

	client.ID = id
	return nil
}

// Delete permanently removes a client
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM Client WHERE id = ?"), id)
	if err != nil {
		return domain.NewStorageError("delete client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("get rows affected", err)
	}
	if rows == 0 {
		return fmt.Errorf("client %d: %w", id, domain.ErrClientNotFound)
	}

	return nil
}

// DeleteAll removes every client and returns how many rows were deleted
func (r *ClientRepo) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM Client")
	if err != nil {
		return 0, domain.NewStorageError("clear clients", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError("get rows affected", err)
	}
	return rows, nil
}

func (r *ClientRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan client", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	return clients, nil
}
