package tui

import "github.com/andy/clientms/internal/domain"

// RefreshDataMsg requests the current result list be reloaded
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenNewClientFormMsg tells the clients screen to open the new client form
type OpenNewClientFormMsg struct{}

// firstRunCheckMsg reports whether the database has any clients
type firstRunCheckMsg struct {
	hasClients bool
}

// searchRequest is one search panel submission; nil means list everything
type searchRequest struct {
	field domain.SearchField
	query string
}

type searchResultsMsg struct {
	req     *searchRequest
	clients []*domain.Client
	err     error
}

type clientSavedMsg struct {
	id      int64
	created bool
	err     error
}

type clientDeletedMsg struct {
	id  int64
	err error
}
