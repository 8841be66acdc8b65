package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andy/clientms/internal/domain"
)

// mockClientRepo is an in-memory ClientRepository that records calls
type mockClientRepo struct {
	clients  []*domain.Client
	nextID   int64
	findCall int
	err      error // returned by every call when set
}

func (m *mockClientRepo) Create(ctx context.Context, client *domain.Client) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if err := client.Validate(); err != nil {
		return 0, err
	}
	m.nextID++
	client.ID = m.nextID
	copied := *client
	m.clients = append(m.clients, &copied)
	return client.ID, nil
}

func (m *mockClientRepo) Find(ctx context.Context, field domain.SearchField, value string) ([]*domain.Client, error) {
	m.findCall++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Client, 0)
	for _, c := range m.clients {
		var v string
		switch field {
		case domain.SearchByID:
			v = strconv.FormatInt(c.ID, 10)
		case domain.SearchByLastName:
			v = c.LastName
		case domain.SearchByClientType:
			v = string(c.Type)
		default:
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSearchField, field)
		}
		if v == value {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (m *mockClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	return m.clients, m.err
}

func (m *mockClientRepo) Count(ctx context.Context) (int, error) {
	return len(m.clients), m.err
}

func (m *mockClientRepo) Update(ctx context.Context, id int64, client *domain.Client) error {
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockClientRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.clients))
	m.clients = nil
	return n, nil
}
