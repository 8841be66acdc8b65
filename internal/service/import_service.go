package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/andy/clientms/internal/domain"
	"github.com/andy/clientms/internal/logging"
	"github.com/andy/clientms/internal/repository"
)

// seedFieldCount is the number of ;-separated fields on each seed line:
// firstName;lastName;address;postalCode;phoneNumber;clientType
const seedFieldCount = 6

// utf8BOM is the byte order mark some editors write at the start of a file
const utf8BOM = "\ufeff"

// ImportResult summarises one bootstrap run
type ImportResult struct {
	RunID    string
	Path     string
	Skipped  bool // table already had rows, nothing was read
	Missing  bool // seed file does not exist
	Imported int
	Rejected int // malformed or invalid lines
}

// ImportService seeds an empty client table from a flat file
type ImportService interface {
	// Bootstrap imports every line of the seed file at path, but only when
	// the client table is empty. A missing file is reported in the result,
	// not as an error.
	Bootstrap(ctx context.Context, path string) (*ImportResult, error)
}

type importService struct {
	clientRepo repository.ClientRepository
}

// NewImportService creates a new import service
func NewImportService(clientRepo repository.ClientRepository) ImportService {
	return &importService{clientRepo: clientRepo}
}

func (s *importService) Bootstrap(ctx context.Context, path string) (*ImportResult, error) {
	result := &ImportResult{RunID: uuid.NewString(), Path: path}
	ctx = logging.WithOperation(ctx, result.RunID)
	log := logging.WithFields(ctx, "path", path)

	n, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		log.Debug("client table not empty, skipping import", "rows", n)
		result.Skipped = true
		return result, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("seed file not found, starting with an empty table")
			result.Missing = true
			return result, nil
		}
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	log.Info("import started")
	if err := s.importLines(ctx, f, result); err != nil {
		return result, err
	}
	log.Info("import finished", "imported", result.Imported, "rejected", result.Rejected)

	return result, nil
}

func (s *importService) importLines(ctx context.Context, r io.Reader, result *ImportResult) error {
	log := logging.FromContext(ctx)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		client, err := parseSeedLine(line)
		if err != nil {
			log.Warn("skipping seed line", "line", lineNo, "error", err)
			result.Rejected++
			continue
		}

		if _, err := s.clientRepo.Create(ctx, client); err != nil {
			if domain.IsValidationError(err) {
				log.Warn("skipping seed line", "line", lineNo, "error", err)
				result.Rejected++
				continue
			}
			return fmt.Errorf("failed to import line %d: %w", lineNo, err)
		}
		result.Imported++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	return nil
}

// parseSeedLine splits one seed line into a client. Fields are taken as-is.
func parseSeedLine(line string) (*domain.Client, error) {
	fields := strings.Split(line, ";")
	if len(fields) != seedFieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", seedFieldCount, len(fields))
	}

	return domain.NewClient(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]), nil
}
