package service

import (
	"context"

	"github.com/andy/clientms/internal/domain"
	"github.com/andy/clientms/internal/logging"
	"github.com/andy/clientms/internal/repository"
)

// SearchService routes a search selector and raw query to a store lookup
type SearchService interface {
	// Search validates query against the selector's field rule and, if it
	// passes, returns the matching clients. The query is used exactly as
	// supplied; no trimming or case folding is applied.
	Search(ctx context.Context, field domain.SearchField, query string) ([]*domain.Client, error)
}

type searchService struct {
	clientRepo repository.ClientRepository
}

// NewSearchService creates a new search service
func NewSearchService(clientRepo repository.ClientRepository) SearchService {
	return &searchService{clientRepo: clientRepo}
}

func (s *searchService) Search(ctx context.Context, field domain.SearchField, query string) ([]*domain.Client, error) {
	if err := field.ValidateQuery(query); err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.Find(ctx, field, query)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("search complete",
		"field", field.String(),
		"results", len(clients),
	)
	return clients, nil
}
