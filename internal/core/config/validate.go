package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
)

// ValidateDeep performs comprehensive validation of the configuration including
// database bounds and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateDatabase(),
	)
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder

	db := c.Database
	if db.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1, got %d", db.MaxOpenConns))
	}
	if db.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("must not be negative, got %d", db.MaxIdleConns))
	} else if db.MaxIdleConns > db.MaxOpenConns {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("must not exceed max_open_conns (%d)", db.MaxOpenConns))
	}
	if db.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("must not be negative, got %d", db.BusyTimeout))
	}

	return errs.ToError()
}
