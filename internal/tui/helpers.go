package tui

import (
	"fmt"

	"github.com/andy/clientms/internal/domain"
)

// truncateStr truncates a string to maxLen runes with an ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// removeResult drops the client with id from the list, keeping order
func removeResult(clients []*domain.Client, id int64) []*domain.Client {
	out := clients[:0]
	for _, c := range clients {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// pluralClients formats a result count
func pluralClients(n int) string {
	if n == 1 {
		return "1 client"
	}
	return fmt.Sprintf("%d clients", n)
}

// nextSearchField cycles through the supported selectors
func nextSearchField(f domain.SearchField, step int) domain.SearchField {
	n := len(domain.SearchFields)
	for i, sf := range domain.SearchFields {
		if sf == f {
			return domain.SearchFields[((i+step)%n+n)%n]
		}
	}
	return domain.SearchFields[0]
}
