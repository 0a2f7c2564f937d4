package config

import (
	"fmt"
	"os"

	"paper2plan/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
		QueryTimeout: config.GetQueryTimeout(),
		WriteTimeout: config.GetWriteTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}

// RepositoryFactory picks the repository for the configured environment:
// testing runs in memory, development and production use the database file.
type RepositoryFactory struct {
	config *Config
}

// NewRepositoryFactory creates a factory bound to a configuration
func NewRepositoryFactory(config *Config) *RepositoryFactory {
	return &RepositoryFactory{config: config}
}

// Create opens the repository for the configured environment
func (f *RepositoryFactory) Create() (sqlite.Repository, error) {
	switch f.config.Application.Environment {
	case EnvironmentTesting:
		return CreateTestRepository()
	case EnvironmentDevelopment, EnvironmentProduction:
		return CreateRepository(f.config)
	default:
		return nil, &ConfigError{Field: "application.environment", Message: "unknown environment " + f.config.Application.Environment}
	}
}
