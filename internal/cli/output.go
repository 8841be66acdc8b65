package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/andy/clientms/internal/domain"
	"github.com/andy/clientms/internal/service"
)

const (
	idWidth   = 5
	nameWidth = 20
)

// writeClientTable prints clients as a fixed-width table followed by a total
func writeClientTable(w io.Writer, clients []*domain.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(w, "No clients found")
		return
	}

	fmt.Fprintf(w, "%-*s %-*s %-*s %s\n",
		idWidth, "ID",
		nameWidth, "First Name",
		nameWidth, "Last Name",
		"Type",
	)
	fmt.Fprintln(w, strings.Repeat("-", idWidth+2*nameWidth+3+len("Type")))

	for _, c := range clients {
		fmt.Fprintf(w, "%-*d %-*s %-*s %s\n",
			idWidth, c.ID,
			nameWidth, c.FirstName,
			nameWidth, c.LastName,
			c.Type,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d client(s)\n", len(clients))
}

// writeClientDetail prints every field of one client
func writeClientDetail(w io.Writer, c *domain.Client) {
	fmt.Fprintf(w, "  ID:          %d\n", c.ID)
	fmt.Fprintf(w, "  Name:        %s %s\n", c.FirstName, c.LastName)
	fmt.Fprintf(w, "  Address:     %s\n", c.Address)
	fmt.Fprintf(w, "  Postal Code: %s\n", c.PostalCode)
	fmt.Fprintf(w, "  Phone:       %s\n", c.PhoneNumber)
	fmt.Fprintf(w, "  Type:        %s\n", c.Type.Label())
}

func printImportResult(w io.Writer, r *service.ImportResult) {
	switch {
	case r.Skipped:
		fmt.Fprintln(w, "Client table is not empty, nothing imported")
	case r.Missing:
		fmt.Fprintf(w, "Seed file not found: %s\n", r.Path)
	default:
		fmt.Fprintf(w, "✓ Imported %d client(s) from %s (%d rejected)\n", r.Imported, r.Path, r.Rejected)
	}
}
