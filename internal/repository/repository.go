package repository

import (
	"context"

	"github.com/andy/clientms/internal/domain"
)

// ClientRepository manages client persistence.
// Every write validates the record first; a record violating any field rule
// is never stored.
type ClientRepository interface {
	// Create inserts a new client, assigns its id and returns it
	Create(ctx context.Context, client *domain.Client) (int64, error)
	// Find returns every client whose field exactly matches value
	Find(ctx context.Context, field domain.SearchField, value string) ([]*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Count(ctx context.Context) (int, error)
	// Update overwrites every field except id
	Update(ctx context.Context, id int64, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
