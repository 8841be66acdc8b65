package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/andy/clientms/internal/config"
	"github.com/andy/clientms/internal/crypto"
	"github.com/andy/clientms/internal/db"
	"github.com/andy/clientms/internal/domain"
	"github.com/andy/clientms/internal/logging"
	"github.com/andy/clientms/internal/repository"
	"github.com/andy/clientms/internal/service"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB

	ClientRepo repository.ClientRepository

	SearchService service.SearchService
	ImportService service.ImportService

	// LastImport is the outcome of the startup bootstrap, nil if disabled
	LastImport *service.ImportResult

	logFile io.Closer
}

// New creates a new App from the config at path (the default path when
// empty). It handles:
// 1. Loading config and setting up logging
// 2. Getting the encryption key from the keyring (sqlcipher only)
// 3. Opening the database and creating the Client table
// 4. Creating the repository and services
// 5. Running the bootstrap import into an empty table
func New(ctx context.Context, path string) (*App, error) {
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return nil, err
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		closeQuietly(logFile)
		return nil, err
	}

	a := NewWithDB(cfg, database)
	a.logFile = logFile

	if err := a.bootstrap(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// NewWithDB wires repositories and services around an open database whose
// schema is already in place
func NewWithDB(cfg *config.Config, database *db.DB) *App {
	clientRepo := repository.NewClientRepo(database)

	return &App{
		Config:        cfg,
		DB:            database,
		ClientRepo:    clientRepo,
		SearchService: service.NewSearchService(clientRepo),
		ImportService: service.NewImportService(clientRepo),
	}
}

// bootstrap runs the one-time seed import. Only storage failures abort
// startup; anything else leaves a usable, possibly empty, store.
func (a *App) bootstrap(ctx context.Context) error {
	seed := a.Config.Import.SeedFile
	if seed == "" {
		return nil
	}

	result, err := a.ImportService.Bootstrap(ctx, seed)
	if err != nil {
		var se *domain.StorageError
		if errors.As(err, &se) {
			return fmt.Errorf("failed to import seed file: %w", err)
		}
		slog.Warn("seed import failed", "path", seed, "error", err)
	}

	a.LastImport = result
	return nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	closeQuietly(a.logFile)
	return err
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*db.DB, error) {
	var (
		database *db.DB
		err      error
	)

	switch cfg.Driver {
	case string(db.DriverPostgres):
		database, err = db.OpenPostgres(ctx, cfg.DSN)
	default:
		password, kerr := encryptionKey()
		if kerr != nil {
			return nil, kerr
		}
		database, err = db.Open(cfg.Path, password)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// encryptionKey returns the stored database key, prompting for a new one on
// first run
func encryptionKey() (string, error) {
	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}

	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}

	return password, nil
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Client records will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// setupLogging points the default logger at the configured file, or stderr
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	if cfg.File == "" {
		logging.Setup(cfg.Level, cfg.Format, os.Stderr)
		return nil, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logging.Setup(cfg.Level, cfg.Format, f)
	return f, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}
